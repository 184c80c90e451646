// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

import (
	"fmt"
	"time"

	"github.com/eldarv/cinema-reservation/internal/booking"
)

// ReservationConfirmedEvent is published when a reservation is
// successfully confirmed.  It carries enough for downstream
// consumers to notify or run analytics without querying the service.
type ReservationConfirmedEvent struct {
	ReservationID string   `json:"reservation_id"`
	TicketID      string   `json:"ticket_id"`
	AuditoriumID  uint64   `json:"auditorium_id"`
	MovieTitle    string   `json:"movie_title"`
	SeatLabels    []string `json:"seats"`
	NoOfSeats     int      `json:"no_of_seats"`
	ConfirmedAt   string   `json:"confirmed_at"`
}

// NewReservationConfirmedEvent builds the event from a confirmed
// reservation view.  Seats are rendered as "row:number" labels.
func NewReservationConfirmedEvent(v booking.ReservationView) ReservationConfirmedEvent {
	labels := make([]string, 0, len(v.Seats))
	for _, s := range v.Seats {
		labels = append(labels, fmt.Sprintf("%d:%d", s.Row, s.SeatNumber))
	}
	return ReservationConfirmedEvent{
		ReservationID: v.ID,
		TicketID:      v.TicketID,
		AuditoriumID:  v.AuditoriumID,
		MovieTitle:    v.MovieTitle,
		SeatLabels:    labels,
		NoOfSeats:     v.NoOfSeats,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
}
