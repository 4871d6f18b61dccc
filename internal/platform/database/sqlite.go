package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"hookprobe/internal/platform/config"
)

// Open connects to the sqlite history file, creating its directory when
// needed. ":memory:" is passed through untouched.
func Open(cfg config.HistoryConfig) (*sql.DB, error) {
	path := strings.TrimPrefix(cfg.Path, "file:")
	if path == "" {
		return nil, fmt.Errorf("history path is empty")
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	// Without a file: prefix the driver only reads its own _ options from the
	// query string; sqlite creates the file on first open.
	dsn := fmt.Sprintf("%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	maxConns := cfg.MaxConnections
	if maxConns <= 0 {
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
