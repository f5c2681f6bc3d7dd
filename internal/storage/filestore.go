// Package storage persists entities as one pretty-printed JSON file per
// record, grouped into a directory per entity kind.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Directory names, one per entity kind.
const (
	KindUsers       = "users"
	KindCourses     = "courses"
	KindEnrollments = "enrollments"
	KindAssignments = "assignments"
	KindGrades      = "grades"
)

// Kinds lists every entity-kind directory managed under the data root.
var Kinds = []string{KindUsers, KindCourses, KindEnrollments, KindAssignments, KindGrades}

// BackupDir is the subdirectory holding timestamped snapshots.
const BackupDir = "backups"

// ErrDegraded is returned by write operations when the data root could not be
// created at startup and the process is running memory-only.
var ErrDegraded = errors.New("storage degraded: data directory unavailable")

// ErrNotFound is returned by Load when no file exists for the id.
var ErrNotFound = errors.New("record file not found")

// FileStore is the persistence adapter. All paths live under a single root.
type FileStore struct {
	root     string
	degraded bool
	logger   zerolog.Logger
}

// New creates the data root and one directory per entity kind. If the root
// cannot be created the store comes up degraded: reads return nothing and
// writes fail with ErrDegraded, but the process stays alive.
func New(root string, logger zerolog.Logger) *FileStore {
	fs := &FileStore{root: root, logger: logger.With().Str("component", "storage").Logger()}

	for _, kind := range Kinds {
		if err := os.MkdirAll(filepath.Join(root, kind), 0o755); err != nil {
			fs.logger.Error().Err(err).Str("dir", kind).Msg("cannot create data directory, running memory-only")
			fs.degraded = true
			return fs
		}
	}
	if err := os.MkdirAll(filepath.Join(root, BackupDir), 0o755); err != nil {
		fs.logger.Error().Err(err).Msg("cannot create backup directory")
	}

	return fs
}

// Root returns the data directory the store was opened with.
func (f *FileStore) Root() string { return f.root }

// Degraded reports whether the store is running without durable persistence.
func (f *FileStore) Degraded() bool { return f.degraded }

// Save writes one record as <id>.json, overwriting any prior version.
func (f *FileStore) Save(kind, id string, v any) error {
	if f.degraded {
		return ErrDegraded
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", kind, id, err)
	}

	path := f.recordPath(kind, id)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		f.logger.Error().Err(err).Str("path", path).Msg("record write failed")
		return fmt.Errorf("write %s/%s: %w", kind, id, err)
	}

	return nil
}

// Delete removes the record file if present. A missing file is not an error.
func (f *FileStore) Delete(kind, id string) error {
	if f.degraded {
		return ErrDegraded
	}

	path := f.recordPath(kind, id)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		f.logger.Error().Err(err).Str("path", path).Msg("record delete failed")
		return fmt.Errorf("delete %s/%s: %w", kind, id, err)
	}

	return nil
}

func (f *FileStore) recordPath(kind, id string) string {
	return filepath.Join(f.root, kind, id+".json")
}

// Load reads and decodes a single record.
func Load[T any](f *FileStore, kind, id string) (T, error) {
	var v T
	if f.degraded {
		return v, ErrDegraded
	}

	data, err := os.ReadFile(f.recordPath(kind, id))
	if err != nil {
		if os.IsNotExist(err) {
			return v, ErrNotFound
		}
		return v, fmt.Errorf("read %s/%s: %w", kind, id, err)
	}

	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode %s/%s: %w", kind, id, err)
	}

	return v, nil
}

// LoadAll decodes every record in a kind directory. Corrupt or unreadable
// files are logged and skipped so one bad record cannot abort startup.
func LoadAll[T any](f *FileStore, kind string) (map[string]T, error) {
	records := make(map[string]T)
	if f.degraded {
		return records, nil
	}

	entries, err := os.ReadDir(filepath.Join(f.root, kind))
	if err != nil {
		return records, fmt.Errorf("list %s: %w", kind, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		path := filepath.Join(f.root, kind, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			f.logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable record")
			continue
		}

		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			f.logger.Warn().Err(err).Str("path", path).Msg("skipping corrupt record")
			continue
		}

		id := entry.Name()[:len(entry.Name())-len(".json")]
		records[id] = v
	}

	return records, nil
}
