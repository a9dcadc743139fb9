package display

import (
	"fmt"
	"strconv"
)

// Handle is an opaque, OS issued identifier for one display output. It is
// only valid until the display configuration changes.
type Handle uintptr

func (h Handle) String() string {
	return strconv.FormatUint(uint64(h), 10)
}

// ParseHandle parses the textual form produced by Handle.String.
func ParseHandle(s string) (Handle, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHandle, s)
	}
	return Handle(v), nil
}

// Rect is a bounding box in virtual-screen coordinates. Coordinates can be
// negative when a monitor sits left of or above the primary one.
type Rect struct {
	Left   int32 `json:"left"`
	Top    int32 `json:"top"`
	Right  int32 `json:"right"`
	Bottom int32 `json:"bottom"`
}

// Size returns the width and height of r. Inverted rectangles are rejected
// with ErrInvalidRect.
func (r Rect) Size() (Size, error) {
	if r.Right < r.Left || r.Bottom < r.Top {
		return Size{}, fmt.Errorf("%w: %+v", ErrInvalidRect, r)
	}
	return Size{
		Width:  uint32(int64(r.Right) - int64(r.Left)),
		Height: uint32(int64(r.Bottom) - int64(r.Top)),
	}, nil
}

type Size struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Info is what the OS reports for a single handle.
type Info struct {
	Bounds   Rect
	WorkArea Rect // excludes task bars
	Primary  bool
}

// Monitor describes one output at the time it was enumerated.
type Monitor struct {
	Handle   Handle
	Bounds   Rect
	WorkArea Rect
	Primary  bool
	Size     Size
}
