package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unikiosk/displays/pkg/display"
)

func TestMonitorFromDisplay(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	m := MonitorFromDisplay(display.Monitor{
		Handle:  65537,
		Bounds:  display.Rect{Right: 1920, Bottom: 1080},
		Primary: true,
		Size:    display.Size{Width: 1920, Height: 1080},
	})
	require.Equal("65537", m.ID)
	require.Equal(uint32(1920), m.Width)
	require.Equal(uint32(1080), m.Height)
	require.True(m.Primary)
}

func TestSnapshotEqual(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	a := Snapshot{
		Taken:    time.Now(),
		Monitors: []Monitor{{ID: "1", Width: 1920, Height: 1080}},
	}
	b := Snapshot{
		Taken:    a.Taken.Add(time.Minute),
		Monitors: []Monitor{{ID: "1", Width: 1920, Height: 1080}},
	}
	require.True(a.Equal(b))

	b.Monitors[0].Width = 2560
	require.False(a.Equal(b))

	require.False(a.Equal(Snapshot{}))
	require.True(Snapshot{}.Equal(Snapshot{Monitors: []Monitor{}}))
}
