package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eldarv/cinema-reservation/internal/booking"
	"github.com/eldarv/cinema-reservation/internal/model"
)

// ReservationRepo provides data access to the reservations table and
// owns the transactional creation of a ticket with its reservation.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Create inserts the ticket, its seats and the reservation in a
// single transaction.  Either all rows become visible or none do;
// a reservation without a ticket, or a ticket with zero seats, is
// never observable.  Cancellation is checked before the transaction
// starts; once begun, the insert runs to completion or rolls back.
func (r *ReservationRepo) Create(ctx context.Context, ticket model.Ticket, res model.Reservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
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
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO tickets (id, showtime_id, created_at, paid) VALUES (?, ?, ?, 0)`,
		ticket.ID, ticket.ShowtimeID, ticket.CreatedAt.UTC(),
	); err != nil {
		return err
	}
	if len(ticket.Seats) > 0 {
		query := `INSERT INTO ticket_seats (ticket_id, auditorium_id, row_no, seat_no) VALUES `
		args := make([]interface{}, 0, len(ticket.Seats)*4)
		for i, s := range ticket.Seats {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?)"
			args = append(args, ticket.ID, s.AuditoriumID, s.Row, s.SeatNumber)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO reservations (id, ticket_id, no_of_seats, auditorium_id, movie_title, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		res.ID, res.TicketID, res.NoOfSeats, res.AuditoriumID, res.MovieTitle, res.CreatedAt.UTC(),
	); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetReservation returns booking.ErrReservationNotFound when the id
// is unknown.  Expired reservations are returned like any other;
// expiry is derived by the engine at read time.
func (r *ReservationRepo) GetReservation(ctx context.Context, id string) (model.Reservation, error) {
	var res model.Reservation
	err := r.db.QueryRowContext(ctx,
		`SELECT id, ticket_id, no_of_seats, auditorium_id, movie_title, created_at
		 FROM reservations WHERE id = ?`, id,
	).Scan(&res.ID, &res.TicketID, &res.NoOfSeats, &res.AuditoriumID, &res.MovieTitle, &res.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reservation{}, booking.ErrReservationNotFound
	}
	if err != nil {
		return model.Reservation{}, err
	}
	return res, nil
}
