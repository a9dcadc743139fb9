package display

import (
	"errors"

	"go.uber.org/zap"
)

// Backend is the narrow adapter over the OS display subsystem.
type Backend interface {
	// Enumerate returns one handle per active output in platform order.
	Enumerate() ([]Handle, error)
	// MonitorInfo describes a single handle. Failures must wrap ErrQueryFailed.
	MonitorInfo(h Handle) (Info, error)
}

type Client struct {
	log     *zap.Logger
	backend Backend
}

// New returns a Client backed by the platform display subsystem.
func New(log *zap.Logger) *Client {
	return NewWithBackend(log, newPlatformBackend())
}

func NewWithBackend(log *zap.Logger, backend Backend) *Client {
	return &Client{
		log:     log,
		backend: backend,
	}
}

// Enumerate returns the handles of all currently active outputs. No displays
// yields an empty slice and a nil error.
func (c *Client) Enumerate() ([]Handle, error) {
	handles, err := c.backend.Enumerate()
	if err != nil {
		c.log.Error("failed to enumerate displays", zap.Error(err))
		return nil, err
	}
	if handles == nil {
		handles = []Handle{}
	}
	c.log.Debug("enumerated displays", zap.Int("count", len(handles)))
	return handles, nil
}

// QuerySize returns the pixel dimensions of the output behind h.
func (c *Client) QuerySize(h Handle) (Size, error) {
	m, err := c.Describe(h)
	if err != nil {
		return Size{}, err
	}
	return m.Size, nil
}

// Info returns bounds, work area and primary flag for h.
func (c *Client) Info(h Handle) (Info, error) {
	info, err := c.backend.MonitorInfo(h)
	if err != nil {
		if !errors.Is(err, ErrQueryFailed) {
			err = &QueryError{Handle: h, Err: err}
		}
		c.log.Warn("failed to query display", zap.Stringer("handle", h), zap.Error(err))
		return Info{}, err
	}
	return info, nil
}

// Monitors re-enumerates and describes every output. Outputs which cannot be
// queried are skipped.
func (c *Client) Monitors() ([]Monitor, error) {
	handles, err := c.Enumerate()
	if err != nil {
		return nil, err
	}

	monitors := make([]Monitor, 0, len(handles))
	for _, h := range handles {
		m, err := c.Describe(h)
		if err != nil {
			continue
		}
		monitors = append(monitors, m)
	}
	return monitors, nil
}

// Describe queries h and computes its size.
func (c *Client) Describe(h Handle) (Monitor, error) {
	info, err := c.Info(h)
	if err != nil {
		return Monitor{}, err
	}
	size, err := info.Bounds.Size()
	if err != nil {
		c.log.Warn("display reported inverted bounds", zap.Stringer("handle", h), zap.Error(err))
		return Monitor{}, err
	}
	return Monitor{
		Handle:   h,
		Bounds:   info.Bounds,
		WorkArea: info.WorkArea,
		Primary:  info.Primary,
		Size:     size,
	}, nil
}
