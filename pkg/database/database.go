package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrNotFileBacked is returned by file operations on a server-backed store.
var ErrNotFileBacked = errors.New("store is not file-backed")

type Config struct {
	Driver   string
	Path     string // SQLite file
	DSN      string // Postgres connection string
	LogLevel logger.LogLevel
}

// Conn hands out the live handle. Repositories keep a Conn, never a *gorm.DB,
// so they survive a restore that swaps the handle underneath them.
type Conn interface {
	DB() *gorm.DB
}

// Store owns the single live connection to the relational store.
type Store struct {
	mu     sync.RWMutex
	cfg    Config
	db     *gorm.DB
	onOpen func(*gorm.DB) error
}

// NewStore opens the store and runs onOpen (migrations) against it. onOpen is
// run again after every Reopen.
func NewStore(cfg Config, onOpen func(*gorm.DB) error) (*Store, error) {
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	s := &Store{cfg: cfg, onOpen: onOpen}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) DB() *gorm.DB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

func (s *Store) Driver() string {
	return s.cfg.Driver
}

// Path returns the SQLite file path, or "" for server-backed stores.
func (s *Store) Path() string {
	if s.cfg.Driver != DriverSQLite {
		return ""
	}
	return s.cfg.Path
}

// Close releases the live handle. DB() keeps returning the closed handle
// until Reopen succeeds.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

// Reopen closes any live handle and opens a fresh one from the same config.
func (s *Store) Reopen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.closeLocked()
	return s.openLocked()
}

// Ping checks that the live handle is queryable.
func (s *Store) Ping() error {
	sqlDB, err := s.DB().DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *Store) open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openLocked()
}

func (s *Store) openLocked() error {
	db, err := Open(s.cfg)
	if err != nil {
		return err
	}
	if s.onOpen != nil {
		if err := s.onOpen(db); err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				sqlDB.Close()
			}
			return fmt.Errorf("failed to prepare database: %w", err)
		}
	}
	s.db = db
	return nil
}

func (s *Store) closeLocked() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Open connects to the configured driver without any migration.
func Open(cfg Config) (*gorm.DB, error) {
	level := cfg.LogLevel
	if level == 0 {
		level = logger.Warn
	}
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite, "":
		dialector = sqlite.Open(cfg.Path)
	case DriverPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == DriverPostgres {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		// One writer at a time; also keeps in-transaction reads on the same connection.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
