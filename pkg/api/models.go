package api

import (
	"time"

	"github.com/unikiosk/displays/pkg/display"
)

const ContentTypeApplicationJSON = "application/json"

// Monitor represents one display output as served over the API.
type Monitor struct {
	ID       string       `json:"id"`
	Bounds   display.Rect `json:"bounds"`
	WorkArea display.Rect `json:"workArea"`
	Primary  bool         `json:"primary"`
	Width    uint32       `json:"width"`
	Height   uint32       `json:"height"`
}

func MonitorFromDisplay(in display.Monitor) Monitor {
	return Monitor{
		ID:       in.Handle.String(),
		Bounds:   in.Bounds,
		WorkArea: in.WorkArea,
		Primary:  in.Primary,
		Width:    in.Size.Width,
		Height:   in.Size.Height,
	}
}

func MonitorsFromDisplay(in []display.Monitor) []Monitor {
	out := make([]Monitor, 0, len(in))
	for _, m := range in {
		out = append(out, MonitorFromDisplay(m))
	}
	return out
}

// SizeResponse is returned by the size endpoint
type SizeResponse struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Snapshot is the display layout observed at a point in time.
type Snapshot struct {
	Taken    time.Time `json:"taken"`
	Monitors []Monitor `json:"monitors"`
}

// Equal reports whether both snapshots describe the same layout. Handles are
// compared too, since they are reissued on configuration changes.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s.Monitors) != len(other.Monitors) {
		return false
	}
	for i := range s.Monitors {
		if s.Monitors[i] != other.Monitors[i] {
			return false
		}
	}
	return true
}
