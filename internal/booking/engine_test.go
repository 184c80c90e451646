package booking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldarv/cinema-reservation/internal/booking"
	"github.com/eldarv/cinema-reservation/internal/model"
	"github.com/eldarv/cinema-reservation/internal/repository"
)

// steppingClock lets tests move time forward to lapse hold windows.
type steppingClock struct {
	mu  sync.Mutex
	now time.Time
}

func newSteppingClock(start time.Time) *steppingClock {
	return &steppingClock{now: start.UTC()}
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *steppingClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// newTestEngine builds an engine over a memory store holding one
// auditorium (rows 1 and 2, seats 1-5) and two showtimes sharing it.
func newTestEngine(t *testing.T, clk *steppingClock) (*booking.Engine, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	aud := model.Auditorium{ID: 1}
	for row := uint32(1); row <= 2; row++ {
		for n := uint32(1); n <= 5; n++ {
			aud.Seats = append(aud.Seats, model.Seat{AuditoriumID: 1, Row: row, SeatNumber: n})
		}
	}
	store.AddAuditorium(aud)
	ctx := context.Background()
	_, err := store.CreateShowtime(ctx, model.Showtime{AuditoriumID: 1, MovieTitle: "Metropolis", SessionDate: clk.Now().Add(time.Hour)})
	require.NoError(t, err)
	_, err = store.CreateShowtime(ctx, model.Showtime{AuditoriumID: 1, MovieTitle: "Metropolis", SessionDate: clk.Now().Add(4 * time.Hour)})
	require.NoError(t, err)
	return booking.NewEngine(store, store, store, store, clk, 10), store
}

func reserve(showtimeID uint64, seats ...uint32) booking.ReserveInput {
	return booking.ReserveInput{ShowtimeID: showtimeID, Row: 1, SeatNumbers: seats}
}

func TestReserveAndGetRoundTrip(t *testing.T) {
	clk := newSteppingClock(time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC))
	eng, _ := newTestEngine(t, clk)
	ctx := context.Background()

	created, err := eng.Reserve(ctx, reserve(1, 1, 2, 3))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, booking.StatusActive, created.Status)
	assert.Equal(t, clk.Now().Add(10*time.Minute), created.ExpiresAt)

	got, err := eng.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.NoOfSeats, got.NoOfSeats)
	assert.Equal(t, created.AuditoriumID, got.AuditoriumID)
	assert.Equal(t, created.MovieTitle, got.MovieTitle)
	assert.Equal(t, created.Seats, got.Seats)
}

func TestReserveValidation(t *testing.T) {
	clk := newSteppingClock(time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC))
	eng, _ := newTestEngine(t, clk)
	ctx := context.Background()

	t.Run("empty seat list", func(t *testing.T) {
		_, err := eng.Reserve(ctx, reserve(1))
		assert.ErrorIs(t, err, booking.ErrNoSeatsRequested)
	})
	t.Run("unknown showtime", func(t *testing.T) {
		_, err := eng.Reserve(ctx, reserve(99, 1))
		assert.ErrorIs(t, err, booking.ErrShowtimeNotFound)
	})
	t.Run("seat outside the row", func(t *testing.T) {
		_, err := eng.Reserve(ctx, reserve(1, 5, 6))
		assert.ErrorIs(t, err, booking.ErrSeatsNotFound)
	})
	t.Run("gap between seats", func(t *testing.T) {
		_, err := eng.Reserve(ctx, reserve(1, 1, 3))
		assert.ErrorIs(t, err, booking.ErrSeatsNotContiguous)
	})
	t.Run("duplicate seat numbers", func(t *testing.T) {
		_, err := eng.Reserve(ctx, reserve(1, 2, 2))
		assert.ErrorIs(t, err, booking.ErrSeatsNotContiguous)
	})
	t.Run("cancelled before write", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := eng.Reserve(cancelled, reserve(1, 4, 5))
		assert.ErrorIs(t, err, context.Canceled)
		// The admitted-but-aborted request must leave no trace.
		_, err = eng.Reserve(ctx, reserve(1, 4, 5))
		assert.NoError(t, err)
	})
}

func TestReserveConfirmLifecycle(t *testing.T) {
	clk := newSteppingClock(time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC))
	eng, _ := newTestEngine(t, clk)
	ctx := context.Background()

	first, err := eng.Reserve(ctx, reserve(1, 1, 2, 3))
	require.NoError(t, err)

	// Overlapping hold loses while the first one is active.
	_, err = eng.Reserve(ctx, reserve(1, 3, 4))
	assert.ErrorIs(t, err, booking.ErrSeatsConflict)

	confirmed, err := eng.Confirm(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusPaid, confirmed.Status)

	// Paid seats stay blocked even after the hold window passes.
	clk.Advance(30 * time.Minute)
	_, err = eng.Reserve(ctx, reserve(1, 3, 4))
	assert.ErrorIs(t, err, booking.ErrSeatsConflict)

	// Disjoint seats in the same row are still available.
	_, err = eng.Reserve(ctx, reserve(1, 4, 5))
	assert.NoError(t, err)

	// Confirming again reports success without changing anything.
	again, err := eng.Confirm(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusPaid, again.Status)
}

func TestExpiredHoldLosesItsClaim(t *testing.T) {
	clk := newSteppingClock(time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC))
	eng, _ := newTestEngine(t, clk)
	ctx := context.Background()

	first, err := eng.Reserve(ctx, reserve(1, 1, 2))
	require.NoError(t, err)

	clk.Advance(11 * time.Minute)

	// The seats are free again for a new hold.
	_, err = eng.Reserve(ctx, reserve(1, 1, 2))
	require.NoError(t, err)

	// The lapsed reservation can no longer be confirmed.
	_, err = eng.Confirm(ctx, first.ID)
	assert.ErrorIs(t, err, booking.ErrReservationExpired)

	// It stays readable for inspection, flagged as expired.
	view, err := eng.Get(ctx, first.ID)
	assert.ErrorIs(t, err, booking.ErrReservationExpired)
	assert.Equal(t, booking.StatusExpired, view.Status)
	assert.Equal(t, 2, view.NoOfSeats)
}

func TestConfirmRejectsSeatsPaidInAnotherShowtime(t *testing.T) {
	clk := newSteppingClock(time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC))
	eng, _ := newTestEngine(t, clk)
	ctx := context.Background()

	// Pay for seat 1 in showtime 1.
	first, err := eng.Reserve(ctx, reserve(1, 1))
	require.NoError(t, err)
	_, err = eng.Confirm(ctx, first.ID)
	require.NoError(t, err)

	// Showtime 2 shares the auditorium: the hold check is scoped per
	// showtime and admits the hold, but the paid-seat check is scoped
	// per auditorium and blocks the confirmation.
	second, err := eng.Reserve(ctx, reserve(2, 1))
	require.NoError(t, err)
	_, err = eng.Confirm(ctx, second.ID)
	assert.ErrorIs(t, err, booking.ErrSeatsAlreadyPaid)
}

func TestGetUnknownReservation(t *testing.T) {
	clk := newSteppingClock(time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC))
	eng, _ := newTestEngine(t, clk)

	_, err := eng.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, booking.ErrReservationNotFound)
}

func TestConcurrentReservationsSingleWinner(t *testing.T) {
	clk := newSteppingClock(time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC))
	eng, _ := newTestEngine(t, clk)
	ctx := context.Background()

	const attempts = 32
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := eng.Reserve(ctx, reserve(1, 3))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	successes, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, booking.ErrSeatsConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, successes, "exactly one attempt may win the seat")
	assert.Equal(t, attempts-1, conflicts)
}
