/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

const (
	schema = `
	-- Offline cache documents, one JSON value per key
	CREATE TABLE IF NOT EXISTS cache_entries (
		namespace TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (namespace, key)
	);

	CREATE INDEX IF NOT EXISTS idx_cache_entries_updated_at ON cache_entries(updated_at);
	`

	queryGetEntry = `
		SELECT value
		FROM cache_entries
		WHERE namespace = ? AND key = ?`

	queryUpsertEntry = `
		INSERT INTO cache_entries (namespace, key, value)
		VALUES (?, ?, ?)
		ON CONFLICT(namespace, key) DO UPDATE
		SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

	queryDeleteEntry = `
		DELETE FROM cache_entries
		WHERE namespace = ? AND key = ?`

	queryListKeys = `
		SELECT key
		FROM cache_entries
		WHERE namespace = ?
		ORDER BY key`
)
