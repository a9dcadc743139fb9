package display

import (
	"errors"
	"hash/fnv"
	"image"

	"github.com/kbinani/screenshot"
)

var errDisplayGone = errors.New("display is gone or was reordered")

// Handles issued by screenBackend keep the display index + 1 in the low
// bits and a fingerprint of the display bounds above it, so that a handle
// whose index now points at another display is detected as stale. The
// layout fits a 32-bit uintptr.
const (
	indexBits       = 8
	indexMask       = 1<<indexBits - 1
	fingerprintMask = 1<<24 - 1
	maxDisplays     = indexMask
)

// screenSource is the subset of the screenshot package the backend reads.
type screenSource interface {
	NumActiveDisplays() int
	GetDisplayBounds(idx int) image.Rectangle
}

type screenshotSource struct{}

func (screenshotSource) NumActiveDisplays() int {
	return screenshot.NumActiveDisplays()
}

func (screenshotSource) GetDisplayBounds(idx int) image.Rectangle {
	return screenshot.GetDisplayBounds(idx)
}

// screenBackend maps handles onto screenshot's display indexes.
type screenBackend struct {
	src screenSource
}

func newScreenBackend(src screenSource) screenBackend {
	return screenBackend{src: src}
}

// Enumerate can not tell a failed X/Quartz connection apart from zero
// displays; screenshot reports both as zero active displays.
func (b screenBackend) Enumerate() ([]Handle, error) {
	n := b.src.NumActiveDisplays()
	if n > maxDisplays {
		n = maxDisplays
	}
	handles := make([]Handle, 0, n)
	for i := 0; i < n; i++ {
		bounds := rectFromRectangle(b.src.GetDisplayBounds(i))
		handles = append(handles, screenHandle(i, bounds))
	}
	return handles, nil
}

func (b screenBackend) MonitorInfo(h Handle) (Info, error) {
	idx := int(h&indexMask) - 1
	if idx < 0 || idx >= b.src.NumActiveDisplays() {
		return Info{}, &QueryError{Handle: h, Err: errDisplayGone}
	}

	bounds := rectFromRectangle(b.src.GetDisplayBounds(idx))
	if screenHandle(idx, bounds) != h {
		return Info{}, &QueryError{Handle: h, Err: errDisplayGone}
	}

	return Info{
		Bounds:   bounds,
		WorkArea: bounds,
		Primary:  idx == 0,
	}, nil
}

func screenHandle(idx int, bounds Rect) Handle {
	return Handle(fingerprint(bounds)<<indexBits | uint32(idx+1))
}

func fingerprint(r Rect) uint32 {
	h := fnv.New32a()
	for _, v := range []int32{r.Left, r.Top, r.Right, r.Bottom} {
		h.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
	}
	return h.Sum32() & fingerprintMask
}

func rectFromRectangle(r image.Rectangle) Rect {
	return Rect{
		Left:   int32(r.Min.X),
		Top:    int32(r.Min.Y),
		Right:  int32(r.Max.X),
		Bottom: int32(r.Max.Y),
	}
}
