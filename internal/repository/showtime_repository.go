package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eldarv/cinema-reservation/internal/booking"
	"github.com/eldarv/cinema-reservation/internal/model"
)

// ShowtimeRepo provides data access to the showtimes table.
type ShowtimeRepo struct {
	db *sql.DB
}

// NewShowtimeRepo returns a ShowtimeRepo bound to the database.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo { return &ShowtimeRepo{db: db} }

// GetShowtime returns booking.ErrShowtimeNotFound when the id is unknown.
func (r *ShowtimeRepo) GetShowtime(ctx context.Context, id uint64) (model.Showtime, error) {
	var st model.Showtime
	err := r.db.QueryRowContext(ctx,
		`SELECT id, auditorium_id, movie_title, session_date FROM showtimes WHERE id = ?`,
		id,
	).Scan(&st.ID, &st.AuditoriumID, &st.MovieTitle, &st.SessionDate)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Showtime{}, booking.ErrShowtimeNotFound
	}
	if err != nil {
		return model.Showtime{}, err
	}
	return st, nil
}

// CreateShowtime inserts a showtime and returns it with the
// generated identifier.  The auditorium must already exist; a
// foreign key violation is surfaced as ErrAuditoriumNotFound by the
// handler performing the existence check beforehand.
func (r *ShowtimeRepo) CreateShowtime(ctx context.Context, st model.Showtime) (model.Showtime, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO showtimes (auditorium_id, movie_title, session_date) VALUES (?, ?, ?)`,
		st.AuditoriumID, st.MovieTitle, st.SessionDate.UTC(),
	)
	if err != nil {
		return model.Showtime{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Showtime{}, err
	}
	st.ID = uint64(id)
	return st, nil
}

// ListShowtimes returns every showtime ordered by session date.
func (r *ShowtimeRepo) ListShowtimes(ctx context.Context) ([]model.Showtime, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, auditorium_id, movie_title, session_date FROM showtimes ORDER BY session_date`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Showtime
	for rows.Next() {
		var st model.Showtime
		if err := rows.Scan(&st.ID, &st.AuditoriumID, &st.MovieTitle, &st.SessionDate); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
