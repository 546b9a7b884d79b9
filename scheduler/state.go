// Package scheduler tracks when the reminder pipeline last succeeded and
// decides whether a catch-up run is due.
package scheduler

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abhissng/expirywatch/blame"
)

// StateStore persists the timestamp of the last successful reminder run.
type StateStore interface {
	// LastSuccess returns the stored timestamp. ok is false when no run has
	// ever succeeded.
	LastSuccess() (ts time.Time, ok bool, b blame.Blame)
	// RecordSuccess stores ts as the new last-success timestamp.
	RecordSuccess(ts time.Time) blame.Blame
}

// FileStateStore keeps the last-success timestamp as RFC 3339 text in a
// single file, written atomically via a temp file and rename.
type FileStateStore struct {
	path string
}

// NewFileStateStore creates a file-backed state store.
func NewFileStateStore(path string) *FileStateStore {
	return &FileStateStore{path: path}
}

// LastSuccess reads the stored timestamp. A missing file means no run has
// succeeded yet; an unreadable or corrupt file is an error, because guessing
// would either spam reminders or silently skip them.
func (s *FileStateStore) LastSuccess() (time.Time, bool, blame.Blame) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, blame.NewBlame(blame.ErrStateUnavailable, "cannot read state file").
			WithComponent(blame.Configuration).
			WithField("path", s.path).
			WithCause(err)
	}

	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(string(raw)))
	if err != nil {
		return time.Time{}, false, blame.NewBlame(blame.ErrStateUnavailable, "state file is corrupt").
			WithComponent(blame.Configuration).
			WithField("path", s.path).
			WithCause(err)
	}
	return ts, true, nil
}

// RecordSuccess writes ts atomically so a crash mid-write never leaves a
// truncated timestamp behind.
func (s *FileStateStore) RecordSuccess(ts time.Time) blame.Blame {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return blame.NewBlame(blame.ErrStateUnavailable, "cannot create state directory").
				WithComponent(blame.Configuration).
				WithField("path", s.path).
				WithCause(err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".last_success-*")
	if err != nil {
		return blame.NewBlame(blame.ErrStateUnavailable, "cannot create temp state file").
			WithComponent(blame.Configuration).
			WithField("path", s.path).
			WithCause(err)
	}
	tmpName := tmp.Name()

	_, werr := tmp.WriteString(ts.Format(time.RFC3339) + "\n")
	cerr := tmp.Close()
	if werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Rename(tmpName, s.path)
	}
	if werr != nil {
		_ = os.Remove(tmpName)
		return blame.NewBlame(blame.ErrStateUnavailable, "cannot write state file").
			WithComponent(blame.Configuration).
			WithField("path", s.path).
			WithCause(werr)
	}
	return nil
}

// MemoryStateStore is an in-memory StateStore for tests.
type MemoryStateStore struct {
	ts  time.Time
	set bool
}

// NewMemoryStateStore creates an empty in-memory store.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{}
}

func (s *MemoryStateStore) LastSuccess() (time.Time, bool, blame.Blame) {
	return s.ts, s.set, nil
}

func (s *MemoryStateStore) RecordSuccess(ts time.Time) blame.Blame {
	s.ts, s.set = ts, true
	return nil
}
