package repository

import (
	"context"
	"time"

	"github.com/eldarv/cinema-reservation/internal/model"
)

// SeedSampleData populates the memory store with three auditoriums
// and a pair of showtimes so the service is usable out of the box,
// matching the sample data the original deployment initialized on
// startup.  Auditorium 1 has 15 rows of 20 seats, auditorium 2 has
// 10 rows of 18, auditorium 3 has 8 rows of 12.
func SeedSampleData(store *MemoryStore) {
	layouts := []struct {
		id    uint64
		rows  uint32
		seats uint32
	}{
		{id: 1, rows: 15, seats: 20},
		{id: 2, rows: 10, seats: 18},
		{id: 3, rows: 8, seats: 12},
	}
	for _, l := range layouts {
		a := model.Auditorium{ID: l.id}
		for row := uint32(1); row <= l.rows; row++ {
			for n := uint32(1); n <= l.seats; n++ {
				a.Seats = append(a.Seats, model.Seat{AuditoriumID: l.id, Row: row, SeatNumber: n})
			}
		}
		store.AddAuditorium(a)
	}

	ctx := context.Background()
	tonight := time.Now().UTC().Truncate(time.Hour).Add(4 * time.Hour)
	_, _ = store.CreateShowtime(ctx, model.Showtime{
		AuditoriumID: 1,
		MovieTitle:   "The Shawshank Redemption",
		SessionDate:  tonight,
	})
	_, _ = store.CreateShowtime(ctx, model.Showtime{
		AuditoriumID: 2,
		MovieTitle:   "Inception",
		SessionDate:  tonight.Add(30 * time.Minute),
	})
}
