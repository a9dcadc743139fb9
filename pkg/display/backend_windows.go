//go:build windows
// +build windows

package display

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procEnumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW     = user32.NewProc("GetMonitorInfoW")

	// callbacks are never released by the runtime, so a single one is shared
	// by every enumeration. dwData carries a key into enumStates.
	enumCallback = windows.NewCallback(enumProc)

	enumStates   = map[uintptr]*enumState{}
	enumStatesMu sync.Mutex
	enumNextKey  uintptr
)

type win32Backend struct{}

func newPlatformBackend() Backend {
	return win32Backend{}
}

type enumState struct {
	handles []Handle
}

func registerEnumState(state *enumState) uintptr {
	enumStatesMu.Lock()
	defer enumStatesMu.Unlock()

	enumNextKey++
	enumStates[enumNextKey] = state
	return enumNextKey
}

func releaseEnumState(key uintptr) {
	enumStatesMu.Lock()
	defer enumStatesMu.Unlock()

	delete(enumStates, key)
}

func lookupEnumState(key uintptr) *enumState {
	enumStatesMu.Lock()
	defer enumStatesMu.Unlock()

	return enumStates[key]
}

func enumProc(hMonitor win.HMONITOR, hdc win.HDC, rect *win.RECT, dwData uintptr) uintptr {
	state := lookupEnumState(dwData)
	if state == nil {
		return 0
	}
	state.handles = append(state.handles, Handle(hMonitor))
	return 1
}

func (win32Backend) Enumerate() ([]Handle, error) {
	// the callback runs on the calling thread
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	state := &enumState{handles: []Handle{}}
	key := registerEnumState(state)
	defer releaseEnumState(key)

	ret, _, err := procEnumDisplayMonitors.Call(0, 0, enumCallback, key)
	if ret == 0 {
		if errno := errnoOf(err); errno != nil {
			return nil, fmt.Errorf("%w: EnumDisplayMonitors: %s", ErrEnumerationFailed, errno)
		}
		return nil, ErrEnumerationFailed
	}
	return state.handles, nil
}

func (win32Backend) MonitorInfo(h Handle) (Info, error) {
	var mi win.MONITORINFO
	mi.CbSize = uint32(unsafe.Sizeof(mi))

	ret, _, err := procGetMonitorInfoW.Call(uintptr(h), uintptr(unsafe.Pointer(&mi)))
	if ret == 0 {
		return Info{}, &QueryError{Handle: h, Err: errnoOf(err)}
	}

	return Info{
		Bounds:   rectFromRECT(mi.RcMonitor),
		WorkArea: rectFromRECT(mi.RcWork),
		Primary:  mi.DwFlags&win.MONITORINFOF_PRIMARY != 0,
	}, nil
}

func rectFromRECT(r win.RECT) Rect {
	return Rect{
		Left:   r.Left,
		Top:    r.Top,
		Right:  r.Right,
		Bottom: r.Bottom,
	}
}

// errnoOf drops the "operation completed successfully" errno Call reports
// when the API did not set a last error.
func errnoOf(err error) error {
	if errno, ok := err.(windows.Errno); ok && errno == 0 {
		return nil
	}
	return err
}
