// SPDX-License-Identifier: MIT

package store

// Client-side SQLite schema. Entries and deltas are stored as JSON payloads:
// the client never queries inside them, and a single opaque column lets a
// corrupt row be detected and dropped without losing the rest of the table.
const clientSchema = `
	CREATE TABLE IF NOT EXISTS local_entries (
		entry_id TEXT PRIMARY KEY,
		payload  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS vault_meta (
		id             INTEGER PRIMARY KEY CHECK (id = 1),
		vault_version  INTEGER NOT NULL DEFAULT 0,
		server_version INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS outbox_events (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id   TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		delta      TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS device (
		id        INTEGER PRIMARY KEY CHECK (id = 1),
		device_id TEXT NOT NULL
	);`

const (
	selectLocalEntries = `SELECT payload FROM local_entries ORDER BY entry_id;`

	upsertLocalEntry = `INSERT INTO local_entries (entry_id, payload)
		VALUES ($1, $2)
		ON CONFLICT (entry_id) DO UPDATE SET payload = EXCLUDED.payload;`

	deleteAllLocalEntries = `DELETE FROM local_entries;`

	selectVaultMeta = `SELECT vault_version, server_version FROM vault_meta WHERE id = 1;`

	upsertVaultMeta = `INSERT INTO vault_meta (id, vault_version, server_version)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET
			vault_version = EXCLUDED.vault_version,
			server_version = EXCLUDED.server_version;`

	deleteVaultMeta = `DELETE FROM vault_meta;`

	insertOutboxEvent = `INSERT INTO outbox_events (event_id, created_at, delta)
		VALUES ($1, $2, $3);`

	selectOutboxHead = `SELECT seq, event_id, created_at, delta
		FROM outbox_events
		ORDER BY seq ASC
		LIMIT 1;`

	selectOutboxTail = `SELECT seq, event_id, created_at, delta
		FROM outbox_events
		ORDER BY seq DESC
		LIMIT 1;`

	// go-sqlite3 indexes $N parameters by first occurrence, not by the
	// number, so placeholders must appear in argument order.
	updateOutboxEvent = `UPDATE outbox_events
		SET event_id = $1, created_at = $2, delta = $3
		WHERE seq = $4;`

	deleteOutboxBySeq = `DELETE FROM outbox_events WHERE seq = $1;`

	deleteOutboxByEventID = `DELETE FROM outbox_events WHERE event_id = $1;`

	deleteAllOutboxEvents = `DELETE FROM outbox_events;`

	countOutboxEvents = `SELECT COUNT(*) FROM outbox_events;`

	selectDeviceID = `SELECT device_id FROM device WHERE id = 1;`

	insertDeviceID = `INSERT INTO device (id, device_id) VALUES (1, $1);`
)
