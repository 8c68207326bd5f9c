package database

import (
	"context"
	"database/sql"
)

// migrations lists the schema statements executed at startup.  Natural keys
// carry UNIQUE constraints so that concurrent get-or-create calls cannot
// produce duplicate rows; the resolver re-reads on a duplicate-key error.
// Foreign keys on shows and the genre link tables cascade so that deleting a
// venue or artist can never leave orphaned rows behind.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS states (
		id   BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(120) NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_states_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS cities (
		id       BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name     VARCHAR(120) NOT NULL,
		state_id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_cities_name_state (name, state_id),
		CONSTRAINT fk_cities_state FOREIGN KEY (state_id) REFERENCES states (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS genres (
		id   BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(120) NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_genres_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS venues (
		id                  BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name                VARCHAR(255) NOT NULL,
		address             VARCHAR(255) NOT NULL DEFAULT '',
		phone               VARCHAR(120) NOT NULL DEFAULT '',
		image_link          VARCHAR(500) NOT NULL DEFAULT '',
		facebook_link       VARCHAR(255) NOT NULL DEFAULT '',
		website             VARCHAR(255) NOT NULL DEFAULT '',
		seeking_talent      TINYINT(1) NOT NULL DEFAULT 0,
		seeking_description VARCHAR(500) NOT NULL DEFAULT '',
		city_id             BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (id),
		KEY idx_venues_name (name),
		CONSTRAINT fk_venues_city FOREIGN KEY (city_id) REFERENCES cities (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS artists (
		id                  BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name                VARCHAR(255) NOT NULL,
		phone               VARCHAR(120) NOT NULL DEFAULT '',
		image_link          VARCHAR(500) NOT NULL DEFAULT '',
		facebook_link       VARCHAR(255) NOT NULL DEFAULT '',
		website             VARCHAR(255) NOT NULL DEFAULT '',
		seeking_venue       TINYINT(1) NOT NULL DEFAULT 0,
		seeking_description VARCHAR(500) NOT NULL DEFAULT '',
		city_id             BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (id),
		KEY idx_artists_name (name),
		CONSTRAINT fk_artists_city FOREIGN KEY (city_id) REFERENCES cities (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS shows (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		start_time DATETIME NOT NULL,
		artist_id  BIGINT UNSIGNED NOT NULL,
		venue_id   BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (id),
		KEY idx_shows_start (start_time),
		CONSTRAINT fk_shows_artist FOREIGN KEY (artist_id) REFERENCES artists (id) ON DELETE CASCADE,
		CONSTRAINT fk_shows_venue  FOREIGN KEY (venue_id)  REFERENCES venues (id)  ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS venue_genres (
		venue_id BIGINT UNSIGNED NOT NULL,
		genre_id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (venue_id, genre_id),
		CONSTRAINT fk_vg_venue FOREIGN KEY (venue_id) REFERENCES venues (id) ON DELETE CASCADE,
		CONSTRAINT fk_vg_genre FOREIGN KEY (genre_id) REFERENCES genres (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS artist_genres (
		artist_id BIGINT UNSIGNED NOT NULL,
		genre_id  BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (artist_id, genre_id),
		CONSTRAINT fk_ag_artist FOREIGN KEY (artist_id) REFERENCES artists (id) ON DELETE CASCADE,
		CONSTRAINT fk_ag_genre  FOREIGN KEY (genre_id)  REFERENCES genres (id)  ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the schema when it does not exist yet.  Statements are
// idempotent so the function is safe to run on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
