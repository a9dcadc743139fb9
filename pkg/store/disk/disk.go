package disk

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/peterbourgon/diskv"
	"go.uber.org/zap"

	"github.com/unikiosk/displays/pkg/api"
	"github.com/unikiosk/displays/pkg/config"
	"github.com/unikiosk/displays/pkg/store"
)

var _ store.Store = &DiskStore{}

var snapshotKey = "snapshot"

type DiskStore struct {
	log    *zap.Logger
	config *config.Config

	store *diskv.Diskv
}

func New(log *zap.Logger, config *config.Config) (*DiskStore, error) {
	if config.StateDir == "" {
		return nil, fmt.Errorf("state directory is not set")
	}

	d := diskv.New(diskv.Options{
		BasePath:     config.StateDir,
		Transform:    func(s string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024,
		TempDir:      filepath.Join(config.StateDir, ".tmp"), // atomic writes via rename
	})

	return &DiskStore{
		log:    log,
		config: config,
		store:  d,
	}, nil
}

func (s *DiskStore) Get() (*api.Snapshot, error) {
	if !s.store.Has(snapshotKey) {
		return nil, store.ErrNotFound
	}
	data, err := s.store.Read(snapshotKey)
	if err != nil {
		return nil, err
	}
	var r api.Snapshot
	err = json.Unmarshal(data, &r)
	if err != nil {
		return nil, fmt.Errorf("%w in %s: %s", store.ErrCorrupt, s.config.StateDir, err)
	}
	return &r, nil
}

func (s *DiskStore) Persist(in api.Snapshot) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}

	s.log.Debug("persisting snapshot", zap.Int("monitors", len(in.Monitors)))
	return s.store.Write(snapshotKey, data)
}
