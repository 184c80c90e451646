package model

import "time"

// Ticket is a claim on one or more seats for a showtime.  A ticket
// starts out unpaid – a temporary hold – and may transition to paid
// exactly once.  Paid is monotonic: it is never reset, so a paid
// ticket blocks its seats forever while an unpaid ticket loses its
// claim once the reservation threshold has passed since CreatedAt.
//
// The seats on a ticket are always a subset of the seat map of the
// showtime's auditorium and form a contiguous run within one row;
// both properties are enforced before a ticket is created.
//
// Fields:
//  ID         – unique identifier (UUID).
//  ShowtimeID – showtime this ticket belongs to.
//  Seats      – non-empty list of seats claimed by this ticket.
//  CreatedAt  – creation timestamp; the expiry window counts from here.
//  Paid       – whether payment has been confirmed.
type Ticket struct {
	ID         string    `json:"id"`          // tickets.id
	ShowtimeID uint64    `json:"showtime_id"` // tickets.showtime_id
	Seats      []Seat    `json:"seats"`       // ticket_seats rows
	CreatedAt  time.Time `json:"created_at"`  // tickets.created_at
	Paid       bool      `json:"paid"`        // tickets.paid
}
