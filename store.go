package swiftdaddy

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite"
)

// ManifestStore records the checksum of every output file of the last
// build in a SQLite database, so a build can report what changed.
type ManifestStore struct {
	db *sql.DB
}

// ManifestEntry is one output file.
type ManifestEntry struct {
	Path     string
	Checksum string
	Size     int64
}

// ManifestDiff lists the output paths that differ from the previous build.
type ManifestDiff struct {
	Added     []string
	Changed   []string
	Removed   []string
	Unchanged int
}

// Empty reports whether nothing changed.
func (d ManifestDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Changed) == 0 && len(d.Removed) == 0
}

// NewManifestStore opens (or creates) the SQLite database at path, ensures
// its directory exists, and runs schema migrations.
func NewManifestStore(path string) (*ManifestStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL mode with a busy timeout; synchronous=NORMAL is safe with WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(1)
	s := &ManifestStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *ManifestStore) Close() error {
	return s.db.Close()
}

func (s *ManifestStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS files (
    path TEXT PRIMARY KEY,
    checksum TEXT NOT NULL,
    size INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS builds (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    finished_at TEXT NOT NULL,
    files INTEGER NOT NULL,
    added INTEGER NOT NULL,
    changed INTEGER NOT NULL,
    removed INTEGER NOT NULL
);
`)
	return err
}

// Entries returns the files recorded by the last build, ordered by path.
func (s *ManifestStore) Entries(ctx context.Context) ([]ManifestEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, checksum, size FROM files ORDER BY path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ManifestEntry
	for rows.Next() {
		var e ManifestEntry
		if err := rows.Scan(&e.Path, &e.Checksum, &e.Size); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Replace stores entries as the current manifest, returning how they
// differ from the previous one.
func (s *ManifestStore) Replace(ctx context.Context, entries []ManifestEntry, finished time.Time) (ManifestDiff, error) {
	previous, err := s.Entries(ctx)
	if err != nil {
		return ManifestDiff{}, err
	}
	diff := diffManifest(previous, entries)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ManifestDiff{}, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM files`); err != nil {
		return ManifestDiff{}, err
	}
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, `INSERT INTO files (path, checksum, size) VALUES (?, ?, ?)`, e.Path, e.Checksum, e.Size); err != nil {
			return ManifestDiff{}, err
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO builds (finished_at, files, added, changed, removed) VALUES (?, ?, ?, ?, ?)`,
		finished.UTC().Format(time.RFC3339), len(entries), len(diff.Added), len(diff.Changed), len(diff.Removed)); err != nil {
		return ManifestDiff{}, err
	}
	if err := tx.Commit(); err != nil {
		return ManifestDiff{}, err
	}
	return diff, nil
}

// BuildCount returns the number of builds recorded.
func (s *ManifestStore) BuildCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM builds`).Scan(&n)
	return n, err
}

func diffManifest(previous, current []ManifestEntry) ManifestDiff {
	old := make(map[string]string, len(previous))
	for _, e := range previous {
		old[e.Path] = e.Checksum
	}
	var diff ManifestDiff
	seen := make(map[string]bool, len(current))
	for _, e := range current {
		seen[e.Path] = true
		sum, ok := old[e.Path]
		switch {
		case !ok:
			diff.Added = append(diff.Added, e.Path)
		case sum != e.Checksum:
			diff.Changed = append(diff.Changed, e.Path)
		default:
			diff.Unchanged++
		}
	}
	for _, e := range previous {
		if !seen[e.Path] {
			diff.Removed = append(diff.Removed, e.Path)
		}
	}
	sort.Strings(diff.Added)
	sort.Strings(diff.Changed)
	sort.Strings(diff.Removed)
	return diff
}

// RecordManifest checksums every output file into .publish/manifest.db
// and logs what changed since the previous build.
func RecordManifest() Step {
	return Step{
		Name: "Record manifest",
		Kind: KindIO,
		Run: func(ctx context.Context, pc *Context) error {
			entries := make([]ManifestEntry, 0, len(pc.outputs))
			for _, rel := range pc.Outputs() {
				data, err := os.ReadFile(pc.OutputPath(rel))
				if err != nil {
					return err
				}
				sum := sha256.Sum256(data)
				entries = append(entries, ManifestEntry{Path: rel, Checksum: hex.EncodeToString(sum[:]), Size: int64(len(data))})
			}

			store, err := NewManifestStore(filepath.Join(pc.WorkDir, "manifest.db"))
			if err != nil {
				return fmt.Errorf("swiftdaddy: open manifest: %w", err)
			}
			defer store.Close()

			diff, err := store.Replace(ctx, entries, pc.now())
			if err != nil {
				return fmt.Errorf("swiftdaddy: record manifest: %w", err)
			}
			pc.manifest = &diff
			pc.Logger().Infof("manifest: %d added, %d changed, %d removed, %d unchanged",
				len(diff.Added), len(diff.Changed), len(diff.Removed), diff.Unchanged)
			return nil
		},
	}
}
