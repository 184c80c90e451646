package repository

import (
	"context"
	"database/sql"
)

// schemaStatements creates the tables used by the MySQL store.  The
// statements are idempotent so they can run on every startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS auditoriums (
		id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (id)
	)`,
	`CREATE TABLE IF NOT EXISTS auditorium_seats (
		auditorium_id BIGINT UNSIGNED NOT NULL,
		row_no INT UNSIGNED NOT NULL,
		seat_no INT UNSIGNED NOT NULL,
		PRIMARY KEY (auditorium_id, row_no, seat_no),
		FOREIGN KEY (auditorium_id) REFERENCES auditoriums(id)
	)`,
	`CREATE TABLE IF NOT EXISTS showtimes (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		auditorium_id BIGINT UNSIGNED NOT NULL,
		movie_title VARCHAR(255) NOT NULL,
		session_date DATETIME NOT NULL,
		PRIMARY KEY (id),
		FOREIGN KEY (auditorium_id) REFERENCES auditoriums(id)
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id CHAR(36) NOT NULL,
		showtime_id BIGINT UNSIGNED NOT NULL,
		created_at DATETIME NOT NULL,
		paid TINYINT(1) NOT NULL DEFAULT 0,
		PRIMARY KEY (id),
		KEY idx_tickets_showtime (showtime_id),
		FOREIGN KEY (showtime_id) REFERENCES showtimes(id)
	)`,
	`CREATE TABLE IF NOT EXISTS ticket_seats (
		ticket_id CHAR(36) NOT NULL,
		auditorium_id BIGINT UNSIGNED NOT NULL,
		row_no INT UNSIGNED NOT NULL,
		seat_no INT UNSIGNED NOT NULL,
		PRIMARY KEY (ticket_id, row_no, seat_no),
		KEY idx_ticket_seats_auditorium (auditorium_id),
		FOREIGN KEY (ticket_id) REFERENCES tickets(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id CHAR(36) NOT NULL,
		ticket_id CHAR(36) NOT NULL,
		no_of_seats INT UNSIGNED NOT NULL,
		auditorium_id BIGINT UNSIGNED NOT NULL,
		movie_title VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_reservations_ticket (ticket_id),
		FOREIGN KEY (ticket_id) REFERENCES tickets(id)
	)`,
}

// EnsureSchema creates any missing tables.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
