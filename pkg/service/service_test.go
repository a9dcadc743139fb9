package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/phayes/freeport"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unikiosk/displays/pkg/api"
	"github.com/unikiosk/displays/pkg/config"
	"github.com/unikiosk/displays/pkg/display"
	"github.com/unikiosk/displays/pkg/store/disk"
	"github.com/unikiosk/displays/pkg/util/logger"
)

type fakeBackend struct{}

func (fakeBackend) Enumerate() ([]display.Handle, error) {
	return []display.Handle{1}, nil
}

func (fakeBackend) MonitorInfo(h display.Handle) (display.Info, error) {
	if h != 1 {
		return display.Info{}, &display.QueryError{Handle: h}
	}
	return display.Info{Bounds: display.Rect{Right: 2560, Bottom: 1440}, Primary: true}, nil
}

func TestServiceManager(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	port, err := freeport.GetFreePort()
	require.NoError(err)

	c := &config.Config{
		StateDir:      t.TempDir(),
		WebServerAddr: fmt.Sprintf("127.0.0.1:%d", port),
		WatchInterval: 20 * time.Millisecond,
	}
	log := logger.GetLoggerInstance("", zap.DebugLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := disk.New(log, c)
	require.NoError(err)
	svc, err := NewWithDisplays(ctx, log, c, display.NewWithBackend(log, fakeBackend{}), s)
	require.NoError(err)

	events := svc.Events().Subscribe(ctx)

	done := make(chan error, 1)
	go func() {
		done <- svc.Run(ctx)
	}()

	select {
	case ev := <-events:
		require.Equal(api.EventTypeLayoutChanged, ev.Type)
		require.Len(ev.Snapshot.Monitors, 1)
	case <-time.After(5 * time.Second):
		t.Fatal("no layout event")
	}

	url := fmt.Sprintf("http://%s/api/monitors/1/size", c.WebServerAddr)
	require.Eventually(func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		var size api.SizeResponse
		if resp.StatusCode != http.StatusOK || json.NewDecoder(resp.Body).Decode(&size) != nil {
			return false
		}
		return size.Width == 2560 && size.Height == 1440
	}, 5*time.Second, 50*time.Millisecond)

	snapshot, err := s.Get()
	require.NoError(err)
	require.Len(snapshot.Monitors, 1)

	cancel()
	select {
	case err := <-done:
		require.NoError(err)
	case <-time.After(10 * time.Second):
		t.Fatal("service did not stop")
	}
}
