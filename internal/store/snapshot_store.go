package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"farewatch/backend/internal/logging"
	"farewatch/backend/internal/models"
)

const (
	// FilePrefix and FileSuffix identify flight-price snapshot files inside
	// the data directory. Anything else in there is ignored.
	FilePrefix = "flight_prices_"
	FileSuffix = ".json"

	// readConcurrency bounds parallel snapshot reads in ReadAll.
	readConcurrency = 8
)

// Snapshot pairs a snapshot filename with its parsed record. Record is nil
// when the file could not be read or parsed.
type Snapshot struct {
	Filename string
	Record   *models.RawSearchRecord
}

// SnapshotStore reads and appends flight-price snapshot files in a single
// directory. The query path only ever reads; the refresh job appends.
type SnapshotStore struct {
	dir string

	// mu serializes appends so two refresh runs cannot interleave a
	// read-modify-write on the same file.
	mu sync.Mutex
}

// NewSnapshotStore creates a store over the given directory. The directory
// is created lazily on the first append; reads against a missing directory
// report an error instead.
func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: dir}
}

// List returns the snapshot filenames in the data directory, sorted by name.
func (s *SnapshotStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing snapshot dir %s: %w", s.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, FilePrefix) && strings.HasSuffix(name, FileSuffix) {
			names = append(names, name)
		}
	}
	return names, nil
}

// Read parses one snapshot file into a RawSearchRecord.
func (s *SnapshotStore) Read(ctx context.Context, filename string) (*models.RawSearchRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", filename, err)
	}

	var record models.RawSearchRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", filename, err)
	}
	return &record, nil
}

// ReadAll reads every snapshot file concurrently and returns the results in
// listing order. Files that fail to read or parse are logged and returned
// with a nil Record so callers can skip them; only a failed listing is an
// error.
func (s *SnapshotStore) ReadAll(ctx context.Context) ([]Snapshot, error) {
	names, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	snapshots := make([]Snapshot, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency)

	for i, name := range names {
		snapshots[i].Filename = name
		g.Go(func() error {
			record, err := s.Read(ctx, name)
			if err != nil {
				logging.Warn("Skipping unreadable snapshot", "file", name, "error", err.Error())
				return nil
			}
			snapshots[i].Record = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

// AppendSearch appends one search snapshot to the file for the given route,
// creating the file with an empty history first if it does not exist. A
// corrupted existing file is replaced rather than surfaced as an error.
func (s *SnapshotStore) AppendSearch(ctx context.Context, from, to string, entry models.SearchSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot dir %s: %w", s.dir, err)
	}

	filename := fmt.Sprintf("%s%s_%s%s", FilePrefix, from, to, FileSuffix)
	path := filepath.Join(s.dir, filename)

	record := &models.RawSearchRecord{
		Route:    from + " to " + to,
		Searches: []models.SearchSnapshot{},
	}
	if data, err := os.ReadFile(path); err == nil {
		var existing models.RawSearchRecord
		if err := json.Unmarshal(data, &existing); err == nil {
			record = &existing
		} else {
			logging.Warn("Replacing corrupted snapshot file", "file", filename, "error", err.Error())
		}
	}

	record.Searches = append(record.Searches, entry)

	data, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding snapshot %s: %w", filename, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", filename, err)
	}

	logging.Info("Appended search snapshot",
		"file", filename,
		"flights", len(entry.Flights),
	)
	return nil
}

// Stats summarizes the snapshot directory: one route per file, flight counts
// taken from each file's most recent search.
func (s *SnapshotStore) Stats(ctx context.Context) models.StoreStats {
	stats := models.StoreStats{Routes: []string{}}

	snapshots, err := s.ReadAll(ctx)
	if err != nil {
		logging.Warn("Snapshot stats unavailable", "error", err.Error())
		return stats
	}

	for _, snap := range snapshots {
		if snap.Record == nil {
			continue
		}
		stats.TotalRoutes++
		stats.Routes = append(stats.Routes, snap.Record.Route)
		if n := len(snap.Record.Searches); n > 0 {
			stats.TotalFlights += len(snap.Record.Searches[n-1].Flights)
		}
	}
	return stats
}

// NewSearchSnapshot builds a snapshot entry stamped with the current time.
func NewSearchSnapshot(flights []models.RawFlight) models.SearchSnapshot {
	return models.SearchSnapshot{
		SearchTimestamp:   time.Now().Format(time.RFC3339),
		Flights:           flights,
		TotalFlightsFound: len(flights),
	}
}
