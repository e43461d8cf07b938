// File: internal/store/store.go
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"profolio_backend/internal/common"
	"profolio_backend/internal/shared"

	"go.uber.org/zap"
)

// Aggregate is the single durable document holding every user and profile.
// It is the unit of durability: each mutation rewrites it in full.
type Aggregate struct {
	Users    []shared.User             `json:"users"`
	Profiles map[string]shared.Profile `json:"profiles"`
}

func newAggregate() *Aggregate {
	return &Aggregate{
		Users:    []shared.User{},
		Profiles: map[string]shared.Profile{},
	}
}

// FindUserByEmail returns the user with the exact given email, or nil.
// Emails are compared as stored, case-sensitively.
func (a *Aggregate) FindUserByEmail(email string) *shared.User {
	for i := range a.Users {
		if a.Users[i].Email == email {
			return &a.Users[i]
		}
	}
	return nil
}

// Store persists the aggregate as a single JSON file. All load-mutate-save
// cycles go through Update, which holds a global writer lock so concurrent
// mutations never overwrite each other's changes. Read-only callers may use
// Load directly and tolerate an immediately-stale snapshot.
type Store struct {
	path        string
	lock        chan struct{}
	lockTimeout time.Duration
	logger      *zap.Logger
}

// New creates a Store backed by the file at path, creating the parent
// directory and an empty aggregate document if they do not exist yet.
func New(path string, lockTimeout time.Duration, logger *zap.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path cannot be empty")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error("Failed to create store directory", zap.String("dir", dir), zap.Error(err))
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}

	s := &Store{
		path:        path,
		lock:        make(chan struct{}, 1),
		lockTimeout: lockTimeout,
		logger:      logger,
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.save(newAggregate()); err != nil {
			return nil, err
		}
		logger.Info("Initialized empty store document", zap.String("path", path))
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat store file %s: %w", path, err)
	}

	logger.Info("Store opened", zap.String("path", path))
	return s, nil
}

// Load reads the durable document without taking the writer lock. A missing
// file yields a freshly persisted empty aggregate; a file that exists but
// fails to parse is a hard error, never a silent reset, because prior data
// might still be recoverable.
func (s *Store) Load() (*Aggregate, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			agg := newAggregate()
			if saveErr := s.save(agg); saveErr != nil {
				return nil, saveErr
			}
			return agg, nil
		}
		s.logger.Error("Failed to read store file", zap.String("path", s.path), zap.Error(err))
		return nil, common.ErrStore.WithDetails("Failed to read the data file.")
	}

	agg := newAggregate()
	if err := json.Unmarshal(data, agg); err != nil {
		s.logger.Error("Store file is corrupt, refusing to reset it",
			zap.String("path", s.path), zap.Error(err))
		return nil, common.ErrStore.WithDetails("The data file is corrupt.")
	}
	if agg.Users == nil {
		agg.Users = []shared.User{}
	}
	if agg.Profiles == nil {
		agg.Profiles = map[string]shared.Profile{}
	}
	return agg, nil
}

// Update runs one serialized load-mutate-save cycle. The writer lock is held
// for the full cycle; acquisition is bounded so a wedged write surfaces as an
// error instead of starving every later caller. An error from fn aborts the
// cycle without persisting anything.
func (s *Store) Update(fn func(agg *Aggregate) error) error {
	select {
	case s.lock <- struct{}{}:
	case <-time.After(s.lockTimeout):
		s.logger.Error("Timed out waiting for store writer lock",
			zap.String("path", s.path), zap.Duration("timeout", s.lockTimeout))
		return common.ErrStore.WithDetails("Timed out waiting for the store lock.")
	}
	defer func() { <-s.lock }()

	agg, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(agg); err != nil {
		return err
	}
	return s.save(agg)
}

// save writes the aggregate to a temporary file in the same directory and
// atomically renames it over the previous document, so a crash mid-write
// never leaves a half-written file behind.
func (s *Store) save(agg *Aggregate) error {
	data, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		s.logger.Error("Failed to marshal aggregate", zap.Error(err))
		return common.ErrStore.WithDetails("Failed to encode the data file.")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		s.logger.Error("Failed to create temporary store file", zap.String("dir", dir), zap.Error(err))
		return common.ErrStore.WithDetails("Failed to write the data file.")
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		s.logger.Error("Failed to write temporary store file", zap.String("path", tmpPath), zap.Error(err))
		return common.ErrStore.WithDetails("Failed to write the data file.")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		s.logger.Error("Failed to close temporary store file", zap.String("path", tmpPath), zap.Error(err))
		return common.ErrStore.WithDetails("Failed to write the data file.")
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return common.ErrStore.WithDetails("Failed to write the data file.")
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		s.logger.Error("Failed to replace store file", zap.String("path", s.path), zap.Error(err))
		return common.ErrStore.WithDetails("Failed to replace the data file.")
	}
	return nil
}
