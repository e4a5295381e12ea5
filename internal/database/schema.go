package database

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the venues, artists and shows tables if they do not
// exist. Statements are idempotent so the server can run it on every start.
// Shows carry foreign keys to both venues and artists; neither cascades, so
// a venue delete must remove its shows explicitly in the same transaction.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS venues (
			id                  BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name                VARCHAR(255) NOT NULL,
			city                VARCHAR(120) NOT NULL,
			state               VARCHAR(120) NOT NULL,
			address             VARCHAR(120) NOT NULL,
			phone               VARCHAR(120) NOT NULL DEFAULT '',
			genres              TEXT NOT NULL,
			image_link          VARCHAR(500) NOT NULL DEFAULT '',
			facebook_link       VARCHAR(255) NOT NULL DEFAULT '',
			website             VARCHAR(255) NOT NULL DEFAULT '',
			seeking_talent      BOOLEAN NOT NULL DEFAULT TRUE,
			seeking_description VARCHAR(500) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS artists (
			id                  BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name                VARCHAR(255) NOT NULL,
			city                VARCHAR(120) NOT NULL,
			state               VARCHAR(120) NOT NULL,
			phone               VARCHAR(120) NOT NULL DEFAULT '',
			genres              TEXT NOT NULL,
			image_link          VARCHAR(500) NOT NULL DEFAULT '',
			facebook_link       VARCHAR(255) NOT NULL DEFAULT '',
			website             VARCHAR(255) NOT NULL DEFAULT '',
			seeking_venue       BOOLEAN NOT NULL DEFAULT FALSE,
			seeking_description VARCHAR(500) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS shows (
			id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			venue_id   BIGINT UNSIGNED NOT NULL,
			artist_id  BIGINT UNSIGNED NOT NULL,
			start_time DATETIME NOT NULL,
			CONSTRAINT fk_shows_venue  FOREIGN KEY (venue_id)  REFERENCES venues (id),
			CONSTRAINT fk_shows_artist FOREIGN KEY (artist_id) REFERENCES artists (id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
