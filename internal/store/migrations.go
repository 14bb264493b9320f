package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
//
// The todos_fts shadow table is an external-content FTS5 index over
// todos.description, kept in sync exclusively by the three triggers below.
// The application never writes to it directly. The update trigger removes
// the old entry before inserting the new one; external-content FTS5 indexes
// corrupt silently if the old tokens are not deleted first.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS todos (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	description  TEXT NOT NULL CHECK(description <> ''),
	priority     INTEGER NOT NULL DEFAULT 0 CHECK(priority BETWEEN 0 AND 2),
	completed_at DATETIME,
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE VIRTUAL TABLE IF NOT EXISTS todos_fts USING fts5(
	description,
	content='todos',
	content_rowid='id'
);

CREATE TRIGGER IF NOT EXISTS todos_ai AFTER INSERT ON todos BEGIN
	INSERT INTO todos_fts(rowid, description) VALUES (new.id, new.description);
END;

CREATE TRIGGER IF NOT EXISTS todos_ad AFTER DELETE ON todos BEGIN
	INSERT INTO todos_fts(todos_fts, rowid, description)
		VALUES ('delete', old.id, old.description);
END;

CREATE TRIGGER IF NOT EXISTS todos_au AFTER UPDATE ON todos BEGIN
	INSERT INTO todos_fts(todos_fts, rowid, description)
		VALUES ('delete', old.id, old.description);
	INSERT INTO todos_fts(rowid, description) VALUES (new.id, new.description);
END;

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS imports (
	id         TEXT PRIMARY KEY,
	count      INTEGER NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos(created_at);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
