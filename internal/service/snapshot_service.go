package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go-pos-backend/internal/logger"
	"go-pos-backend/internal/metrics"
	"go-pos-backend/internal/ws"

	"go.uber.org/zap"
)

// BackupStore is the file-level surface of the live store.
type BackupStore interface {
	Path() string
	SnapshotTo(dest string) error
	RestoreFrom(src string) error
}

// CartResetter empties every in-memory cart.
type CartResetter interface {
	ResetCarts()
}

type BackupInfo struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

type SnapshotService interface {
	// Snapshot returns the path of the new backup, or "" on failure.
	Snapshot(actor string) string
	// Restore reports whether the store now holds the backup content.
	Restore(path, actor string) bool
	List() ([]BackupInfo, error)
	Dir() string
}

type snapshotService struct {
	store    BackupStore
	dir      string
	validate func(path string) error
	sessions CartResetter
	hub      Publisher
	now      func() time.Time
}

// NewSnapshotService stores backups under dir. validate is run on a backup
// before it replaces the live store.
func NewSnapshotService(store BackupStore, dir string, validate func(path string) error, sessions CartResetter, hub Publisher) SnapshotService {
	return &snapshotService{
		store:    store,
		dir:      dir,
		validate: validate,
		sessions: sessions,
		hub:      hub,
		now:      time.Now,
	}
}

func (s *snapshotService) Dir() string {
	return s.dir
}

func (s *snapshotService) extension() string {
	ext := filepath.Ext(s.store.Path())
	if ext == "" {
		return ".db"
	}
	return ext
}

func (s *snapshotService) Snapshot(actor string) string {
	log := logger.Get()
	if s.store.Path() == "" {
		log.Error("snapshot unavailable: store is not file-backed")
		metrics.BackupOperationsTotal.WithLabelValues("snapshot", "failure").Inc()
		return ""
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		log.Error("cannot create backup directory", zap.String("dir", s.dir), zap.Error(err))
		metrics.BackupOperationsTotal.WithLabelValues("snapshot", "failure").Inc()
		return ""
	}

	name := fmt.Sprintf("backup_%s%s", s.now().Format("20060102_150405"), s.extension())
	dest := filepath.Join(s.dir, name)
	if err := s.store.SnapshotTo(dest); err != nil {
		log.Error("snapshot failed", zap.String("dest", dest), zap.Error(err))
		metrics.BackupOperationsTotal.WithLabelValues("snapshot", "failure").Inc()
		return ""
	}

	metrics.BackupOperationsTotal.WithLabelValues("snapshot", "success").Inc()
	log.Info("snapshot written", zap.String("path", dest), zap.String("by", actor))
	publish(s.hub, ws.Event{
		Type:    "backup_update",
		Action:  "snapshot_created",
		Data:    map[string]interface{}{"name": name},
		User:    actor,
		Message: fmt.Sprintf("%s created backup %s", actor, name),
	})
	return dest
}

func (s *snapshotService) Restore(path, actor string) bool {
	log := logger.Get().With(zap.String("source", path), zap.String("by", actor))
	if s.validate != nil {
		if err := s.validate(path); err != nil {
			log.Error("restore rejected", zap.Error(err))
			metrics.BackupOperationsTotal.WithLabelValues("restore", "failure").Inc()
			return false
		}
	}
	if err := s.store.RestoreFrom(path); err != nil {
		log.Error("restore failed, original store kept", zap.Error(err))
		metrics.BackupOperationsTotal.WithLabelValues("restore", "failure").Inc()
		return false
	}

	if s.sessions != nil {
		s.sessions.ResetCarts()
	}
	metrics.BackupOperationsTotal.WithLabelValues("restore", "success").Inc()
	log.Info("store restored")
	publish(s.hub, ws.Event{
		Type:    "backup_update",
		Action:  "store_restored",
		Data:    map[string]interface{}{"source": filepath.Base(path)},
		User:    actor,
		Message: fmt.Sprintf("%s restored the store from %s", actor, filepath.Base(path)),
	})
	return true
}

// List returns the backups in the backup directory, newest first. A missing
// directory yields an empty list.
func (s *snapshotService) List() ([]BackupInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, err
	}
	out := []BackupInfo{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "backup_") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, BackupInfo{
			Name:    e.Name(),
			Path:    filepath.Join(s.dir, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}
