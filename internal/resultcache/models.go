package resultcache

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Entry caches one (file, query) evaluation result, keyed so a later run
// over an unchanged file and query skips re-evaluation entirely (spec.md
// §4.8, Design Notes "optional persistent cache"). Modeled on morfx's
// models.Stage: varchar primary/index columns, a JSON column for
// structured payload, explicit timestamps.
type Entry struct {
	ID string `gorm:"primaryKey;type:varchar(64)"` // sha256(path|size|mtimeUnixNano|queryHash)

	Path      string `gorm:"type:text;index"`
	QueryHash string `gorm:"type:varchar(64);index"`
	Size      int64  `gorm:"not null"`
	ModTime   int64  `gorm:"not null"` // UnixNano, part of the freshness key

	Matched bool           `gorm:"not null"`
	Ranges  datatypes.JSON `gorm:"type:jsonb"` // []filectx.MatchRange, when the query used content/semantic predicates

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName pins the table name so it does not drift with the struct's
// Go-side name.
func (Entry) TableName() string { return "rdump_cache_entries" }

// Migrate runs the cache schema migration.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Entry{})
}
