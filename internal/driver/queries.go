package driver

const createKVTable = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at INTEGER NOT NULL
);`

const upsertKV = `
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// Cypher for the Memgraph backend. Values are stored as strings on :Snapshot nodes.
const (
	SnapshotIndexQuery = `CREATE INDEX ON :Snapshot(key);`

	GetSnapshotQuery = `
MATCH (s:Snapshot {key: $key})
RETURN s.value AS value`

	PutSnapshotQuery = `
MERGE (s:Snapshot {key: $key})
SET s.value = $value, s.updated_at = $updated_at`

	DeleteSnapshotQuery = `
MATCH (s:Snapshot {key: $key})
DELETE s`
)
