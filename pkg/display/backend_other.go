//go:build !windows
// +build !windows

package display

func newPlatformBackend() Backend {
	return newScreenBackend(screenshotSource{})
}
