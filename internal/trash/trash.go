// Package trash implements safe deletion: files are moved into a trash
// directory and tracked in a SQLite manifest so they can be restored.
package trash

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

const (
	dirName      = ".trash"
	manifestName = "manifest.db"
	stampLayout  = "20060102_150405"
)

var ErrNotFound = errors.New("item not in trash")

// Item is one manifest entry.
type Item struct {
	TrashName    string
	OriginalName string
	OriginalPath string
	DeletedAt    time.Time
	Size         int64
	Exists       bool
}

// Bin is a trash directory with its manifest database.
type Bin struct {
	dir string
	db  *sql.DB
}

// Open creates (if needed) the trash directory under basePath and opens
// its manifest.
func Open(basePath string) (*Bin, error) {
	dir := filepath.Join(basePath, dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create trash directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, manifestName))
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Bin{dir: dir, db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS trash_items (
			trash_name TEXT PRIMARY KEY,
			original_name TEXT NOT NULL,
			original_path TEXT NOT NULL,
			deleted_at INTEGER NOT NULL,
			size INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_trash_deleted_at ON trash_items(deleted_at);
	`)
	return err
}

func (b *Bin) Close() error {
	return b.db.Close()
}

// Dir returns the trash directory path.
func (b *Bin) Dir() string { return b.dir }

// TrashFile moves path into the trash under a unique name and records it
// in the manifest. The returned name is the handle for Restore.
func (b *Bin) TrashFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat file: %w", err)
	}

	now := time.Now()
	base := now.Format(stampLayout) + "_" + filepath.Base(path)
	trashName := base
	for n := 1; ; n++ {
		if _, err := os.Stat(filepath.Join(b.dir, trashName)); errors.Is(err, os.ErrNotExist) {
			break
		}
		trashName = fmt.Sprintf("%d_%s", n, base)
	}

	if err := os.Rename(path, filepath.Join(b.dir, trashName)); err != nil {
		return "", fmt.Errorf("move to trash: %w", err)
	}

	_, err = b.db.Exec(`
		INSERT INTO trash_items (trash_name, original_name, original_path, deleted_at, size)
		VALUES (?, ?, ?, ?, ?)
	`, trashName, filepath.Base(path), path, now.Unix(), info.Size())
	if err != nil {
		return "", fmt.Errorf("record trash item: %w", err)
	}
	return trashName, nil
}

// Restore moves a trashed file back to its original location. When the
// original path is taken, a _restored_N suffix is added before the
// extension.
func (b *Bin) Restore(trashName string) (string, error) {
	row := b.db.QueryRow(`
		SELECT original_path FROM trash_items WHERE trash_name = ?
	`, trashName)

	var originalPath string
	err := row.Scan(&originalPath)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	trashPath := filepath.Join(b.dir, trashName)
	if _, err := os.Stat(trashPath); errors.Is(err, os.ErrNotExist) {
		// Purged outside the manifest; drop the stale row.
		_, _ = b.db.Exec(`DELETE FROM trash_items WHERE trash_name = ?`, trashName)
		return "", ErrNotFound
	}

	if err := os.MkdirAll(filepath.Dir(originalPath), 0o755); err != nil {
		return "", fmt.Errorf("recreate parent directory: %w", err)
	}

	target := originalPath
	ext := filepath.Ext(originalPath)
	stem := strings.TrimSuffix(originalPath, ext)
	for n := 1; ; n++ {
		if _, err := os.Stat(target); errors.Is(err, os.ErrNotExist) {
			break
		}
		target = fmt.Sprintf("%s_restored_%d%s", stem, n, ext)
	}

	if err := os.Rename(trashPath, target); err != nil {
		return "", fmt.Errorf("restore from trash: %w", err)
	}
	_, err = b.db.Exec(`DELETE FROM trash_items WHERE trash_name = ?`, trashName)
	if err != nil {
		return "", err
	}
	return target, nil
}

// RestoreLatest restores the most recently trashed item.
func (b *Bin) RestoreLatest() (string, error) {
	row := b.db.QueryRow(`
		SELECT trash_name FROM trash_items ORDER BY deleted_at DESC, trash_name DESC LIMIT 1
	`)

	var trashName string
	err := row.Scan(&trashName)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return b.Restore(trashName)
}

// List returns manifest entries, newest first.
func (b *Bin) List() ([]Item, error) {
	rows, err := b.db.Query(`
		SELECT trash_name, original_name, original_path, deleted_at, size
		FROM trash_items ORDER BY deleted_at DESC, trash_name DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		var deletedAt int64
		if err := rows.Scan(&it.TrashName, &it.OriginalName, &it.OriginalPath, &deletedAt, &it.Size); err != nil {
			return nil, err
		}
		it.DeletedAt = time.Unix(deletedAt, 0)
		_, statErr := os.Stat(filepath.Join(b.dir, it.TrashName))
		it.Exists = statErr == nil
		items = append(items, it)
	}
	return items, rows.Err()
}

// TotalSize sums the on-disk size of all trashed files still present.
func (b *Bin) TotalSize() (int64, error) {
	items, err := b.List()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, it := range items {
		if it.Exists {
			total += it.Size
		}
	}
	return total, nil
}

// CleanupOlderThan permanently deletes items trashed before the cutoff
// age and returns how many were removed.
func (b *Bin) CleanupOlderThan(age time.Duration) (int, error) {
	cutoff := time.Now().Add(-age).Unix()
	rows, err := b.db.Query(`
		SELECT trash_name FROM trash_items WHERE deleted_at < ?
	`, cutoff)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return 0, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, name := range names {
		if err := b.purge(name); err != nil {
			return 0, err
		}
	}
	return len(names), nil
}

// Empty permanently deletes everything in the trash.
func (b *Bin) Empty() error {
	items, err := b.List()
	if err != nil {
		return err
	}
	for _, it := range items {
		if err := b.purge(it.TrashName); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bin) purge(trashName string) error {
	if err := os.Remove(filepath.Join(b.dir, trashName)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete trashed file: %w", err)
	}
	_, err := b.db.Exec(`DELETE FROM trash_items WHERE trash_name = ?`, trashName)
	return err
}
