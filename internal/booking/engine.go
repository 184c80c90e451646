// Package booking implements the seat-reservation conflict engine:
// the rules and state transitions that move a seat from free to held
// to paid, and back to free when a hold expires, without a seat
// ever being assigned to two holders.  Storage, transport and movie
// metadata are external collaborators described by the interfaces
// below.
package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eldarv/cinema-reservation/internal/clock"
	"github.com/eldarv/cinema-reservation/internal/model"
)

// SeatCatalog exposes the static seat map of an auditorium.
type SeatCatalog interface {
	// GetAuditorium returns the auditorium or ErrAuditoriumNotFound.
	GetAuditorium(ctx context.Context, id uint64) (model.Auditorium, error)
	// FindSeats returns one entry per requested seat number that
	// exists in the given row, in request order.  A shortfall against
	// the requested count means some seats do not exist; the caller
	// must abort before touching the ledger.
	FindSeats(ctx context.Context, auditoriumID uint64, row uint32, seatNumbers []uint32) ([]model.Seat, error)
}

// ShowtimeCatalog resolves showtimes referenced by reservation requests.
type ShowtimeCatalog interface {
	// GetShowtime returns the showtime or ErrShowtimeNotFound.
	GetShowtime(ctx context.Context, id uint64) (model.Showtime, error)
}

// TicketLedger is the source of truth for which seats are taken.
// Reads return snapshots: callers filter by the expiry policy as
// needed and must not observe later mutations through a returned
// slice.
type TicketLedger interface {
	// TicketsForShowtime returns every ticket ever created for the
	// showtime, active or not.
	TicketsForShowtime(ctx context.Context, showtimeID uint64) ([]model.Ticket, error)
	// PaidTicketsForAuditorium returns only paid tickets, across all
	// showtimes sharing the auditorium.
	PaidTicketsForAuditorium(ctx context.Context, auditoriumID uint64) ([]model.Ticket, error)
	// GetTicket returns the ticket or ErrTicketNotFound.
	GetTicket(ctx context.Context, id string) (model.Ticket, error)
	// MarkPaid flips the ticket to paid.  It is idempotent and
	// returns ErrTicketNotFound when the ticket does not exist.
	MarkPaid(ctx context.Context, id string) error
}

// ReservationRegistry stores reservations.  Create persists the
// reservation together with its ticket in one atomic step: either
// both become visible or neither does.
type ReservationRegistry interface {
	Create(ctx context.Context, ticket model.Ticket, res model.Reservation) error
	// GetReservation returns the reservation or ErrReservationNotFound.
	// Lookup never deletes an expired reservation; expiry is computed
	// by the caller from the ticket's creation time.
	GetReservation(ctx context.Context, id string) (model.Reservation, error)
}

// Reservation view statuses derived at read time.
const (
	StatusActive  = "ACTIVE"
	StatusPaid    = "PAID"
	StatusExpired = "EXPIRED"
)

// ReserveInput describes a hold request: a run of seats in one row
// of the auditorium hosting the showtime.
type ReserveInput struct {
	ShowtimeID  uint64
	Row         uint32
	SeatNumbers []uint32
}

// ReservationView is the engine's read model for a reservation.
// Status and ExpiresAt are derived from the backing ticket at the
// time of the call; nothing here is stored.
type ReservationView struct {
	ID           string       `json:"id"`
	TicketID     string       `json:"ticket_id"`
	NoOfSeats    int          `json:"no_of_seats"`
	AuditoriumID uint64       `json:"auditorium_id"`
	MovieTitle   string       `json:"movie_title"`
	Seats        []model.Seat `json:"seats"`
	Status       string       `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	ExpiresAt    time.Time    `json:"expires_at,omitempty"`
}

// Engine carries the reservation rules over pluggable collaborators.
// It serializes every read-decide-write sequence per auditorium, so
// two concurrent requests for the same seat can never both observe
// it free.  The expiry threshold is fixed at construction.
type Engine struct {
	seats        SeatCatalog
	showtimes    ShowtimeCatalog
	tickets      TicketLedger
	reservations ReservationRegistry
	clk          clock.Clock
	threshold    time.Duration
	locks        *keyedMutex
}

// NewEngine constructs an Engine.  thresholdMinutes is how long an
// unpaid hold stays active; values below one minute fall back to the
// default of ten (the config layer applies the same rule, this is a
// second line of defence for direct construction).
func NewEngine(seats SeatCatalog, showtimes ShowtimeCatalog, tickets TicketLedger, reservations ReservationRegistry, clk clock.Clock, thresholdMinutes int) *Engine {
	if seats == nil || showtimes == nil || tickets == nil || reservations == nil || clk == nil {
		panic("nil collaborator passed to NewEngine")
	}
	if thresholdMinutes < 1 {
		thresholdMinutes = 10
	}
	return &Engine{
		seats:        seats,
		showtimes:    showtimes,
		tickets:      tickets,
		reservations: reservations,
		clk:          clk,
		threshold:    time.Duration(thresholdMinutes) * time.Minute,
		locks:        newKeyedMutex(),
	}
}

// Reserve validates the request against the seat map, checks the
// ledger for conflicts and, when admitted, creates the ticket and
// its reservation atomically.  The conflict check and the write run
// under the auditorium lock; cancellation is honored only before the
// write begins.
func (e *Engine) Reserve(ctx context.Context, in ReserveInput) (ReservationView, error) {
	if len(in.SeatNumbers) == 0 {
		return ReservationView{}, ErrNoSeatsRequested
	}
	st, err := e.showtimes.GetShowtime(ctx, in.ShowtimeID)
	if err != nil {
		return ReservationView{}, err
	}
	if _, err := e.seats.GetAuditorium(ctx, st.AuditoriumID); err != nil {
		return ReservationView{}, err
	}
	seats, err := e.seats.FindSeats(ctx, st.AuditoriumID, in.Row, in.SeatNumbers)
	if err != nil {
		return ReservationView{}, err
	}
	if len(seats) != len(in.SeatNumbers) {
		return ReservationView{}, ErrSeatsNotFound
	}
	if !IsContiguous(seats) {
		return ReservationView{}, ErrSeatsNotContiguous
	}

	mu := e.locks.get(st.AuditoriumID)
	mu.Lock()
	defer mu.Unlock()

	existing, err := e.tickets.TicketsForShowtime(ctx, st.ID)
	if err != nil {
		return ReservationView{}, err
	}
	now := e.clk.Now()
	if !CanHold(seats, existing, e.threshold, now) {
		return ReservationView{}, ErrSeatsConflict
	}
	// Last chance to abort: once the write starts it must complete.
	if err := ctx.Err(); err != nil {
		return ReservationView{}, err
	}

	ticket := model.Ticket{
		ID:         uuid.NewString(),
		ShowtimeID: st.ID,
		Seats:      seats,
		CreatedAt:  now,
	}
	res := model.Reservation{
		ID:           uuid.NewString(),
		TicketID:     ticket.ID,
		NoOfSeats:    len(seats),
		AuditoriumID: st.AuditoriumID,
		MovieTitle:   st.MovieTitle,
		CreatedAt:    now,
	}
	if err := e.reservations.Create(ctx, ticket, res); err != nil {
		return ReservationView{}, err
	}
	return e.view(res, ticket, now), nil
}

// Confirm finalizes payment for a reservation.  The reservation must
// still be inside its own hold window, and none of its seats may
// appear on a paid ticket for the auditorium; competing unpaid
// holds are irrelevant at this point.  Confirming an already-paid
// reservation is a no-op that reports success again.
func (e *Engine) Confirm(ctx context.Context, reservationID string) (ReservationView, error) {
	res, err := e.reservations.GetReservation(ctx, reservationID)
	if err != nil {
		return ReservationView{}, err
	}
	ticket, err := e.tickets.GetTicket(ctx, res.TicketID)
	if err != nil {
		return ReservationView{}, err
	}

	mu := e.locks.get(res.AuditoriumID)
	mu.Lock()
	defer mu.Unlock()

	now := e.clk.Now()
	if !ticket.Paid && IsExpired(ticket.CreatedAt, now, e.threshold) {
		return ReservationView{}, ErrReservationExpired
	}
	paid, err := e.tickets.PaidTicketsForAuditorium(ctx, res.AuditoriumID)
	if err != nil {
		return ReservationView{}, err
	}
	if !CanConfirm(ticket, paid) {
		return ReservationView{}, ErrSeatsAlreadyPaid
	}
	if err := ctx.Err(); err != nil {
		return ReservationView{}, err
	}
	if err := e.tickets.MarkPaid(ctx, ticket.ID); err != nil {
		return ReservationView{}, err
	}
	ticket.Paid = true
	return e.view(res, ticket, now), nil
}

// Get returns the current view of a reservation.  An expired, unpaid
// reservation is still returned for inspection but accompanied by
// ErrReservationExpired so callers can report the lapsed window.
func (e *Engine) Get(ctx context.Context, reservationID string) (ReservationView, error) {
	res, err := e.reservations.GetReservation(ctx, reservationID)
	if err != nil {
		return ReservationView{}, err
	}
	ticket, err := e.tickets.GetTicket(ctx, res.TicketID)
	if err != nil {
		return ReservationView{}, err
	}
	v := e.view(res, ticket, e.clk.Now())
	if v.Status == StatusExpired {
		return v, ErrReservationExpired
	}
	return v, nil
}

// Threshold exposes the configured hold window.
func (e *Engine) Threshold() time.Duration {
	return e.threshold
}

func (e *Engine) view(res model.Reservation, ticket model.Ticket, now time.Time) ReservationView {
	v := ReservationView{
		ID:           res.ID,
		TicketID:     ticket.ID,
		NoOfSeats:    res.NoOfSeats,
		AuditoriumID: res.AuditoriumID,
		MovieTitle:   res.MovieTitle,
		Seats:        ticket.Seats,
		CreatedAt:    res.CreatedAt,
	}
	switch {
	case ticket.Paid:
		v.Status = StatusPaid
	case IsExpired(ticket.CreatedAt, now, e.threshold):
		v.Status = StatusExpired
	default:
		v.Status = StatusActive
		v.ExpiresAt = ticket.CreatedAt.Add(e.threshold)
	}
	return v
}
