package booking

import (
	"time"

	"github.com/eldarv/cinema-reservation/internal/model"
)

// IsExpired reports whether a hold created at createdAt has lapsed
// given the configured threshold.  A hold expires strictly after the
// threshold; a hold exactly at the threshold is still active.  Every
// component that reasons about hold validity must go through this
// function rather than comparing timestamps itself.
func IsExpired(createdAt, now time.Time, threshold time.Duration) bool {
	return now.Sub(createdAt) > threshold
}

// IsActive reports whether a ticket still blocks its seats.  Paid
// tickets never lapse; unpaid tickets stay active until the expiry
// threshold has passed since their creation.
func IsActive(t model.Ticket, now time.Time, threshold time.Duration) bool {
	return t.Paid || !IsExpired(t.CreatedAt, now, threshold)
}
