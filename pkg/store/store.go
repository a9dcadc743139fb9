package store

import (
	"errors"

	"github.com/unikiosk/displays/pkg/api"
)

var (
	// ErrNotFound is returned by Get before anything was persisted.
	ErrNotFound = errors.New("snapshot not found")

	// ErrCorrupt is returned by Get when the persisted snapshot can not be decoded.
	ErrCorrupt = errors.New("snapshot is corrupt")
)

type Store interface {
	Get() (*api.Snapshot, error)
	Persist(in api.Snapshot) error
}
