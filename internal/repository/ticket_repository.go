package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eldarv/cinema-reservation/internal/booking"
	"github.com/eldarv/cinema-reservation/internal/model"
)

// TicketRepo provides data access to the tickets and ticket_seats
// tables.  All timestamps are stored and compared in UTC.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a TicketRepo bound to the database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// TicketsForShowtime returns every ticket ever created for the
// showtime together with its seats.  Callers filter by the expiry
// policy; the ledger itself never deletes expired holds.
func (r *TicketRepo) TicketsForShowtime(ctx context.Context, showtimeID uint64) ([]model.Ticket, error) {
	const q = `SELECT t.id, t.showtime_id, t.created_at, t.paid,
	                  s.auditorium_id, s.row_no, s.seat_no
	           FROM tickets t
	           JOIN ticket_seats s ON s.ticket_id = t.id
	           WHERE t.showtime_id = ?
	           ORDER BY t.id, s.row_no, s.seat_no`
	return r.scanTickets(ctx, q, showtimeID)
}

// PaidTicketsForAuditorium returns only paid tickets whose seats lie
// in the given auditorium, across every showtime sharing the room.
func (r *TicketRepo) PaidTicketsForAuditorium(ctx context.Context, auditoriumID uint64) ([]model.Ticket, error) {
	const q = `SELECT t.id, t.showtime_id, t.created_at, t.paid,
	                  s.auditorium_id, s.row_no, s.seat_no
	           FROM tickets t
	           JOIN ticket_seats s ON s.ticket_id = t.id
	           WHERE t.paid = 1 AND s.auditorium_id = ?
	           ORDER BY t.id, s.row_no, s.seat_no`
	return r.scanTickets(ctx, q, auditoriumID)
}

// GetTicket returns booking.ErrTicketNotFound when the id is unknown.
func (r *TicketRepo) GetTicket(ctx context.Context, id string) (model.Ticket, error) {
	var t model.Ticket
	err := r.db.QueryRowContext(ctx,
		`SELECT id, showtime_id, created_at, paid FROM tickets WHERE id = ?`, id,
	).Scan(&t.ID, &t.ShowtimeID, &t.CreatedAt, &t.Paid)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Ticket{}, booking.ErrTicketNotFound
	}
	if err != nil {
		return model.Ticket{}, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT auditorium_id, row_no, seat_no FROM ticket_seats WHERE ticket_id = ? ORDER BY row_no, seat_no`, id,
	)
	if err != nil {
		return model.Ticket{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.AuditoriumID, &s.Row, &s.SeatNumber); err != nil {
			return model.Ticket{}, err
		}
		t.Seats = append(t.Seats, s)
	}
	if err := rows.Err(); err != nil {
		return model.Ticket{}, err
	}
	return t, nil
}

// MarkPaid flips a ticket to paid.  The update touches only the paid
// column, so repeating it is harmless; the existence check makes the
// not-found case explicit because MySQL reports zero affected rows
// both for unknown ids and for values left unchanged.
func (r *TicketRepo) MarkPaid(ctx context.Context, id string) error {
	var exists string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM tickets WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return booking.ErrTicketNotFound
	}
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `UPDATE tickets SET paid = 1 WHERE id = ?`, id)
	return err
}

func (r *TicketRepo) scanTickets(ctx context.Context, query string, arg interface{}) ([]model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Ticket
	var cur *model.Ticket
	for rows.Next() {
		var (
			t model.Ticket
			s model.Seat
		)
		if err := rows.Scan(&t.ID, &t.ShowtimeID, &t.CreatedAt, &t.Paid, &s.AuditoriumID, &s.Row, &s.SeatNumber); err != nil {
			return nil, err
		}
		if cur == nil || cur.ID != t.ID {
			out = append(out, t)
			cur = &out[len(out)-1]
		}
		cur.Seats = append(cur.Seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
