// Package statefile persists the monitor state as a small JSON object.
// The file is not locked; one writer per path is assumed.
package statefile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tutu-network/batmon/internal/domain"
)

// DefaultPath matches the historical location of the state file.
const DefaultPath = "/tmp/battery.json"

// record is the on-disk shape. Interval holds the band threshold in minutes.
type record struct {
	SessionID *int    `json:"sid"`
	Interval  float64 `json:"interval"`
	Charging  bool    `json:"charging"`
}

// Store loads and saves state at a fixed path.
type Store struct {
	Path   string
	logger *slog.Logger
}

// New creates a store. Empty path means DefaultPath.
func New(path string, logger *slog.Logger) *Store {
	if path == "" {
		path = DefaultPath
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{Path: path, logger: logger}
}

// Read returns the stored state without any session check.
func (s *Store) Read() (domain.State, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return domain.DefaultState(), err
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.DefaultState(), fmt.Errorf("%w: %v", domain.ErrStateMalformed, err)
	}
	sev, ok := domain.SeverityFromThreshold(rec.Interval)
	if !ok {
		return domain.DefaultState(), fmt.Errorf("%w: interval %v is not a band threshold", domain.ErrStateMalformed, rec.Interval)
	}

	// null stays distinct from a real sid of 0
	st := domain.State{SessionID: domain.NoSession, Severity: sev, Charging: rec.Charging}
	if rec.SessionID != nil {
		st.SessionID = *rec.SessionID
	}
	return st, nil
}

// Load returns the stored state if it belongs to session, else the default.
// Every failure is recovered here and only logged.
func (s *Store) Load(session int) domain.State {
	st, err := s.Read()
	if err == nil && st.SessionID != session {
		err = fmt.Errorf("%w: stored %d, current %d", domain.ErrStateSessionMismatch, st.SessionID, session)
	}
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, domain.ErrStateSessionMismatch) {
			level = slog.LevelDebug
		}
		s.logger.Log(context.Background(), level, "discarding state", "path", s.Path, "err", err)
		return domain.DefaultState()
	}
	return st
}

// Save writes the state via a temp file and rename.
func (s *Store) Save(st domain.State) error {
	rec := record{Interval: st.Severity.Threshold(), Charging: st.Charging}
	if st.SessionID != domain.NoSession {
		id := st.SessionID
		rec.SessionID = &id
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".batmon-state-*")
	if err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
