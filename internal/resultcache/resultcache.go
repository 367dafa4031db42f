// Package resultcache implements rdump's optional persistent evaluation
// cache (spec.md §4.8, Design Notes): a (path, size, mtime, query-hash)
// key mapping to a prior match verdict and matched ranges, so re-running
// the same query over an unchanged tree skips evaluation entirely.
//
// Connect's dual dialector selection -- a local file DSN vs. a remote
// libsql:// / https:// URL -- is modeled directly on morfx's
// db/sqlite.go Connect(dsn, debug), including its isURL sniff and its
// pattern of wrapping a libsql connector in gorm's sqlite dialector via
// an explicit *sql.DB. Unlike the teacher, the local path uses
// glebarez/sqlite (a cgo-free, pure-Go sqlite driver) rather than
// gorm.io/driver/sqlite's mattn/go-sqlite3 binding, since rdump is a
// single static CLI binary and should not require cgo for the common
// local-cache case; the remote path still needs gorm.io/driver/sqlite
// because that is what accepts a pre-built *sql.DB/libsql connector.
package resultcache

import (
	"crypto/sha256"
	"database/sql"
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	libsql "github.com/tursodatabase/libsql-client-go/libsql"
	glebarez "github.com/glebarez/sqlite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/termfx/rdump/internal/filectx"
)

// Cache wraps a gorm connection scoped to the Entry table.
type Cache struct {
	db *gorm.DB
}

// Connect opens (and migrates) a cache database at dsn, which may be a
// local file path or a libsql/Turso URL (spec.md Design Notes: "a remote
// cache backend is a plausible extension, selected by DSN scheme").
func Connect(dsn string, debug bool) (*Cache, error) {
	if !isRemoteDSN(dsn) {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("resultcache: create cache directory: %w", err)
			}
		}
	}

	cfg := &gorm.Config{}
	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var (
		dialector gorm.Dialector
		conn      *sql.DB
	)
	if isRemoteDSN(dsn) {
		var (
			connector driver.Connector
			err       error
		)
		if token := os.Getenv("RDUMP_LIBSQL_AUTH_TOKEN"); token != "" {
			connector, err = libsql.NewConnector(dsn, libsql.WithAuthToken(token))
		} else {
			connector, err = libsql.NewConnector(dsn)
		}
		if err != nil {
			return nil, fmt.Errorf("resultcache: create libsql connector: %w", err)
		}
		conn = sql.OpenDB(connector)
		dialector = sqlite.New(sqlite.Config{DriverName: "libsql", Conn: conn, DSN: dsn})
	} else {
		dialector = glebarez.Open(dsn)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		if conn != nil {
			conn.Close()
		}
		return nil, fmt.Errorf("resultcache: connect: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("resultcache: migrate: %w", err)
	}
	return &Cache{db: db}, nil
}

func isRemoteDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "http://") || strings.HasPrefix(dsn, "https://") || strings.HasPrefix(dsn, "libsql://")
}

// QueryHash derives the cache key component for a query's canonical
// re-serialized text, so two textually different but equivalent queries
// (spec.md §8's round-trip property) collide on the same cache entries.
func QueryHash(canonicalQuery string) string {
	sum := sha256.Sum256([]byte(canonicalQuery))
	return hex.EncodeToString(sum[:])
}

func entryID(path string, size, modTimeNano int64, queryHash string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d|%s", path, size, modTimeNano, queryHash)))
	return hex.EncodeToString(sum[:])
}

// Lookup returns a cached verdict for path under queryHash, if one exists
// and the file's size/mtime still match what was cached (a changed file
// is a cache miss, never a stale hit).
func (c *Cache) Lookup(path string, size, modTimeNano int64, queryHash string) (matched bool, ranges []filectx.MatchRange, ok bool) {
	var e Entry
	id := entryID(path, size, modTimeNano, queryHash)
	if err := c.db.First(&e, "id = ?", id).Error; err != nil {
		return false, nil, false
	}
	if len(e.Ranges) > 0 {
		_ = json.Unmarshal(e.Ranges, &ranges)
	}
	return e.Matched, ranges, true
}

// Store records a fresh verdict, overwriting any stale entry for the same
// key.
func (c *Cache) Store(path string, size, modTimeNano int64, queryHash string, matched bool, ranges []filectx.MatchRange) error {
	rangesJSON, err := json.Marshal(ranges)
	if err != nil {
		return err
	}
	e := Entry{
		ID:        entryID(path, size, modTimeNano, queryHash),
		Path:      path,
		QueryHash: queryHash,
		Size:      size,
		ModTime:   modTimeNano,
		Matched:   matched,
		Ranges:    rangesJSON,
	}
	return c.db.Save(&e).Error
}

// Close releases the underlying database connection.
func (c *Cache) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
