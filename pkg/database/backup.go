package database

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gorm.io/gorm/logger"
)

// ErrInvalidBackup is returned when a restore source is not a usable store file.
var ErrInvalidBackup = errors.New("file is not a valid store backup")

// SnapshotTo writes a consistent copy of the live SQLite store to dest.
// dest must not exist yet.
func (s *Store) SnapshotTo(dest string) error {
	if s.Path() == "" {
		return ErrNotFileBacked
	}
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("snapshot target %s already exists", dest)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db.Exec("VACUUM INTO ?", dest).Error
}

// ValidateBackup checks that src is a SQLite file holding every given table.
func ValidateBackup(src string, tables ...string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidBackup, src)
	}

	db, err := Open(Config{Driver: DriverSQLite, Path: src, LogLevel: logger.Silent})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	for _, table := range tables {
		var n int64
		err := db.Raw("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&n).Error
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
		}
		if n == 0 {
			return fmt.Errorf("%w: missing table %s", ErrInvalidBackup, table)
		}
	}
	return nil
}

// RestoreFrom replaces the store file with src and reopens it. The original
// file is set aside first and put back if anything fails, so the store is
// always left open on some queryable file.
func (s *Store) RestoreFrom(src string) (err error) {
	path := s.Path()
	if path == "" {
		return ErrNotFileBacked
	}
	if same, _ := sameFile(src, path); same {
		return fmt.Errorf("%w: cannot restore the live store onto itself", ErrInvalidBackup)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staged := path + ".restore"
	if err := copyFile(src, staged); err != nil {
		return err
	}
	defer os.Remove(staged)

	if err := s.closeLocked(); err != nil {
		return fmt.Errorf("close live store: %w", err)
	}

	rollback := path + ".rollback"
	if err := os.Rename(path, rollback); err != nil {
		if reopenErr := s.openLocked(); reopenErr != nil {
			return errors.Join(err, reopenErr)
		}
		return err
	}

	if err := os.Rename(staged, path); err != nil {
		return s.rollbackLocked(rollback, path, err)
	}
	if err := s.openLocked(); err != nil {
		return s.rollbackLocked(rollback, path, err)
	}
	os.Remove(rollback)
	return nil
}

func (s *Store) rollbackLocked(rollback, path string, cause error) error {
	os.Remove(path)
	if err := os.Rename(rollback, path); err != nil {
		return errors.Join(cause, err)
	}
	if err := s.openLocked(); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func sameFile(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	return os.SameFile(ai, bi), nil
}
