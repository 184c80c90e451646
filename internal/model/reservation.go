package model

import "time"

// Reservation is the externally addressable handle for a ticket.
// It is created atomically together with its ticket and never
// mutated afterwards; expiry is a derived read-time property based
// on the ticket's creation timestamp and paid flag, not a stored
// state.  The display fields are denormalized at creation time so
// a reservation can be rendered without further lookups.
//
// Fields:
//  ID           – unique identifier (UUID), returned to the caller.
//  TicketID     – the single ticket backing this reservation (1:1).
//  NoOfSeats    – number of seats on the ticket.
//  AuditoriumID – auditorium of the showtime.
//  MovieTitle   – title of the movie being screened.
//  CreatedAt    – creation timestamp, equal to the ticket's.
type Reservation struct {
	ID           string    `json:"id"`            // reservations.id
	TicketID     string    `json:"ticket_id"`     // reservations.ticket_id
	NoOfSeats    int       `json:"no_of_seats"`   // reservations.no_of_seats
	AuditoriumID uint64    `json:"auditorium_id"` // reservations.auditorium_id
	MovieTitle   string    `json:"movie_title"`   // reservations.movie_title
	CreatedAt    time.Time `json:"created_at"`    // reservations.created_at
}
