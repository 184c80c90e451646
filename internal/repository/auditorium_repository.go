package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eldarv/cinema-reservation/internal/booking"
	"github.com/eldarv/cinema-reservation/internal/model"
)

// AuditoriumRepo provides read access to the auditoriums and
// auditorium_seats tables.  Seat maps are written once when an
// auditorium is defined and only queried afterwards.
type AuditoriumRepo struct {
	db *sql.DB
}

// NewAuditoriumRepo returns an AuditoriumRepo bound to the database.
func NewAuditoriumRepo(db *sql.DB) *AuditoriumRepo { return &AuditoriumRepo{db: db} }

// GetAuditorium loads an auditorium together with its full seat map.
// It returns booking.ErrAuditoriumNotFound when no such auditorium
// exists.
func (r *AuditoriumRepo) GetAuditorium(ctx context.Context, id uint64) (model.Auditorium, error) {
	var exists uint64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM auditoriums WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Auditorium{}, booking.ErrAuditoriumNotFound
	}
	if err != nil {
		return model.Auditorium{}, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT auditorium_id, row_no, seat_no FROM auditorium_seats WHERE auditorium_id = ? ORDER BY row_no, seat_no`,
		id,
	)
	if err != nil {
		return model.Auditorium{}, err
	}
	defer rows.Close()
	a := model.Auditorium{ID: id}
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.AuditoriumID, &s.Row, &s.SeatNumber); err != nil {
			return model.Auditorium{}, err
		}
		a.Seats = append(a.Seats, s)
	}
	if err := rows.Err(); err != nil {
		return model.Auditorium{}, err
	}
	return a, nil
}

// FindSeats returns one entry per requested seat number that exists
// in the given row, preserving request order (and duplicates, which
// the contiguity check rejects downstream).  Callers detect missing
// seats by comparing the result count to the requested count.
func (r *AuditoriumRepo) FindSeats(ctx context.Context, auditoriumID uint64, row uint32, seatNumbers []uint32) ([]model.Seat, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT seat_no FROM auditorium_seats WHERE auditorium_id = ? AND row_no = ?`,
		auditoriumID, row,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	inRow := make(map[uint32]struct{})
	for rows.Next() {
		var n uint32
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		inRow[n] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	found := make([]model.Seat, 0, len(seatNumbers))
	for _, n := range seatNumbers {
		if _, ok := inRow[n]; ok {
			found = append(found, model.Seat{AuditoriumID: auditoriumID, Row: row, SeatNumber: n})
		}
	}
	return found, nil
}

// CreateAuditorium inserts an auditorium and its seat map.  Used by
// seeding and operational tooling, not by the reservation flow.
func (r *AuditoriumRepo) CreateAuditorium(ctx context.Context, a model.Auditorium) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `INSERT IGNORE INTO auditoriums (id) VALUES (?)`, a.ID); err != nil {
		return err
	}
	for _, s := range a.Seats {
		if _, err := tx.ExecContext(ctx,
			`INSERT IGNORE INTO auditorium_seats (auditorium_id, row_no, seat_no) VALUES (?, ?, ?)`,
			a.ID, s.Row, s.SeatNumber,
		); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
