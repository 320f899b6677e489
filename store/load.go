package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// SnapshotPatterns lists the filename patterns recognized as graph snapshots.
var SnapshotPatterns = []string{"*.ttl", "*.nt", "*.rdf", "*.owl", "*.jsonld"}

// LoadFile decodes one snapshot file, resolving the format from its extension.
func (s *Store) LoadFile(path string) error {
	format, ok := FormatForPath(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	if err := s.Decode(f, format); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadDir loads every recognized snapshot file from the data directory at
// startup. A file that fails to parse is logged and skipped; one bad file
// never aborts startup. A missing directory is a warning, not an error.
// Returns the number of files loaded.
func (s *Store) LoadDir(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Warn("data directory not readable, skipping bulk load",
			slog.String("dir", dir),
			slog.String("error", err.Error()))
		return 0
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !matchesSnapshot(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := s.LoadFile(path); err != nil {
			s.logger.Error("failed to load snapshot file, skipping",
				slog.String("file", entry.Name()),
				slog.String("error", err.Error()))
			snapshotLoads.WithLabelValues("error").Inc()
			continue
		}
		s.logger.Info("loaded snapshot file",
			slog.String("file", entry.Name()),
			slog.Int("statements", s.Len()))
		snapshotLoads.WithLabelValues("ok").Inc()
		loaded++
	}
	return loaded
}

func matchesSnapshot(name string) bool {
	for _, pattern := range SnapshotPatterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
