// Package repository provides the storage implementations behind
// the booking engine: an in-memory store mirroring the original
// deployment, and a MySQL-backed store for durable installs.  Both
// satisfy the catalog, ledger and registry interfaces declared in
// the booking package and return its sentinel errors.
package repository

import (
	"context"
	"sync"

	"github.com/eldarv/cinema-reservation/internal/booking"
	"github.com/eldarv/cinema-reservation/internal/model"
)

// MemoryStore keeps all state behind a single RWMutex.  Every method
// is individually atomic and reads hand out copies, so a snapshot
// taken for a conflict check never observes later writes.  The
// engine's per-auditorium lock serializes the read-decide-write
// sequence on top of this.
type MemoryStore struct {
	mu           sync.RWMutex
	auditoriums  map[uint64]model.Auditorium
	showtimes    map[uint64]model.Showtime
	tickets      map[string]model.Ticket
	reservations map[string]model.Reservation
	nextShowtime uint64
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		auditoriums:  make(map[uint64]model.Auditorium),
		showtimes:    make(map[uint64]model.Showtime),
		tickets:      make(map[string]model.Ticket),
		reservations: make(map[string]model.Reservation),
	}
}

// AddAuditorium registers a seat map.  Intended for seeding; the
// reservation flow never mutates auditoriums.
func (s *MemoryStore) AddAuditorium(a model.Auditorium) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.Seats = copySeats(a.Seats)
	s.auditoriums[a.ID] = a
}

// GetAuditorium implements booking.SeatCatalog.
func (s *MemoryStore) GetAuditorium(ctx context.Context, id uint64) (model.Auditorium, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.auditoriums[id]
	if !ok {
		return model.Auditorium{}, booking.ErrAuditoriumNotFound
	}
	a.Seats = copySeats(a.Seats)
	return a, nil
}

// FindSeats implements booking.SeatCatalog.  It returns one entry
// per requested seat number that exists in the row, in request
// order.  Numbers requested twice are returned twice; the contiguity
// check downstream rejects the duplicate run, and the caller detects
// missing seats by comparing counts.
func (s *MemoryStore) FindSeats(ctx context.Context, auditoriumID uint64, row uint32, seatNumbers []uint32) ([]model.Seat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.auditoriums[auditoriumID]
	if !ok {
		return nil, booking.ErrAuditoriumNotFound
	}
	inRow := make(map[uint32]model.Seat)
	for _, seat := range a.Seats {
		if seat.Row == row {
			inRow[seat.SeatNumber] = seat
		}
	}
	found := make([]model.Seat, 0, len(seatNumbers))
	for _, n := range seatNumbers {
		if seat, ok := inRow[n]; ok {
			found = append(found, seat)
		}
	}
	return found, nil
}

// CreateShowtime assigns the next free identifier and stores the
// showtime.  Used by the showtime management endpoints and seeding.
func (s *MemoryStore) CreateShowtime(ctx context.Context, st model.Showtime) (model.Showtime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.auditoriums[st.AuditoriumID]; !ok {
		return model.Showtime{}, booking.ErrAuditoriumNotFound
	}
	s.nextShowtime++
	st.ID = s.nextShowtime
	s.showtimes[st.ID] = st
	return st, nil
}

// GetShowtime implements booking.ShowtimeCatalog.
func (s *MemoryStore) GetShowtime(ctx context.Context, id uint64) (model.Showtime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.showtimes[id]
	if !ok {
		return model.Showtime{}, booking.ErrShowtimeNotFound
	}
	return st, nil
}

// ListShowtimes returns every stored showtime.
func (s *MemoryStore) ListShowtimes(ctx context.Context) ([]model.Showtime, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Showtime, 0, len(s.showtimes))
	for _, st := range s.showtimes {
		out = append(out, st)
	}
	return out, nil
}

// TicketsForShowtime implements booking.TicketLedger.
func (s *MemoryStore) TicketsForShowtime(ctx context.Context, showtimeID uint64) ([]model.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Ticket
	for _, t := range s.tickets {
		if t.ShowtimeID == showtimeID {
			t.Seats = copySeats(t.Seats)
			out = append(out, t)
		}
	}
	return out, nil
}

// PaidTicketsForAuditorium implements booking.TicketLedger.  The
// auditorium of a ticket is carried by its seats, so physical-room
// scoping works even across showtimes.
func (s *MemoryStore) PaidTicketsForAuditorium(ctx context.Context, auditoriumID uint64) ([]model.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Ticket
	for _, t := range s.tickets {
		if !t.Paid || len(t.Seats) == 0 || t.Seats[0].AuditoriumID != auditoriumID {
			continue
		}
		t.Seats = copySeats(t.Seats)
		out = append(out, t)
	}
	return out, nil
}

// GetTicket implements booking.TicketLedger.
func (s *MemoryStore) GetTicket(ctx context.Context, id string) (model.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tickets[id]
	if !ok {
		return model.Ticket{}, booking.ErrTicketNotFound
	}
	t.Seats = copySeats(t.Seats)
	return t, nil
}

// MarkPaid implements booking.TicketLedger.  Marking an already-paid
// ticket succeeds again; the flag only ever moves from false to true.
func (s *MemoryStore) MarkPaid(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return booking.ErrTicketNotFound
	}
	t.Paid = true
	s.tickets[id] = t
	return nil
}

// Create implements booking.ReservationRegistry.  Ticket and
// reservation become visible together under one lock acquisition;
// a cancelled context aborts before either is written.
func (s *MemoryStore) Create(ctx context.Context, ticket model.Ticket, res model.Reservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket.Seats = copySeats(ticket.Seats)
	s.tickets[ticket.ID] = ticket
	s.reservations[res.ID] = res
	return nil
}

// GetReservation implements booking.ReservationRegistry.
func (s *MemoryStore) GetReservation(ctx context.Context, id string) (model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reservations[id]
	if !ok {
		return model.Reservation{}, booking.ErrReservationNotFound
	}
	return r, nil
}

func copySeats(seats []model.Seat) []model.Seat {
	if seats == nil {
		return nil
	}
	out := make([]model.Seat, len(seats))
	copy(out, seats)
	return out
}
