// Package sqlite implements the SQLite storage backend for idea-vault.
package sqlite

// schemaVersion is the PRAGMA user_version this backend reads and writes.
// A database with a greater version was written by a newer release and is
// refused on Attach.
const schemaVersion = 1

// Schema DDL for all tables. Statements use IF NOT EXISTS so Attach can run
// them against both fresh and existing databases.
const (
	createIdeas = `CREATE TABLE IF NOT EXISTS ideas (
    idea_id TEXT PRIMARY KEY,
    bucket TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    links TEXT NOT NULL DEFAULT '[]',
    tags TEXT NOT NULL DEFAULT '[]',
    priority TEXT NOT NULL,
    status TEXT NOT NULL,
    next_action TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createImages = `CREATE TABLE IF NOT EXISTS images (
    image_id TEXT PRIMARY KEY,
    idea_id TEXT NOT NULL,
    filename TEXT NOT NULL,
    mime_type TEXT NOT NULL,
    data BLOB NOT NULL,
    created_at TEXT NOT NULL,
    FOREIGN KEY (idea_id) REFERENCES ideas(idea_id)
);`

	createSettings = `CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// Index DDL for the secondary indexes: ideas by bucket, by updated_at, by
// created_at; images by owning idea.
const (
	idxIdeasBucket    = `CREATE INDEX IF NOT EXISTS idx_ideas_bucket ON ideas(bucket);`
	idxIdeasUpdatedAt = `CREATE INDEX IF NOT EXISTS idx_ideas_updated_at ON ideas(updated_at);`
	idxIdeasCreatedAt = `CREATE INDEX IF NOT EXISTS idx_ideas_created_at ON ideas(created_at);`
	idxImagesIdea     = `CREATE INDEX IF NOT EXISTS idx_images_idea ON images(idea_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createIdeas,
	createImages,
	createSettings,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxIdeasBucket,
	idxIdeasUpdatedAt,
	idxIdeasCreatedAt,
	idxImagesIdea,
}
