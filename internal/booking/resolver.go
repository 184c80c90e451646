package booking

import (
	"sort"
	"time"

	"github.com/eldarv/cinema-reservation/internal/model"
)

// This file holds the pure decision functions of the reservation
// engine.  They operate on snapshots of ledger state handed in by
// the caller and perform no I/O; serializing a decision with the
// write that follows it is the engine's job, not theirs.

// IsContiguous reports whether seats form an unbroken run of
// consecutive seat numbers within a single row.  An empty list is
// not contiguous, and neither is a list spanning more than one row.
// Duplicate seat numbers produce a zero step between sorted
// neighbours and are rejected by the same rule as gaps: every step
// must be exactly +1.
func IsContiguous(seats []model.Seat) bool {
	if len(seats) == 0 {
		return false
	}
	row := seats[0].Row
	for _, s := range seats[1:] {
		if s.Row != row {
			return false
		}
	}
	nums := make([]uint32, len(seats))
	for i, s := range seats {
		nums[i] = s.SeatNumber
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })
	for i := 1; i < len(nums); i++ {
		if nums[i] != nums[i-1]+1 {
			return false
		}
	}
	return true
}

// CanHold decides whether the requested seats may be held given
// every ticket ever created for the showtime.  Tickets that are paid
// or still within the expiry threshold block their seats; expired
// unpaid tickets have already lost their claim.  The request is
// admitted only when it is disjoint from the blocked set.
func CanHold(requested []model.Seat, existing []model.Ticket, threshold time.Duration, now time.Time) bool {
	taken := make(map[model.Seat]struct{})
	for _, t := range existing {
		if !IsActive(t, now, threshold) {
			continue
		}
		for _, s := range t.Seats {
			taken[s] = struct{}{}
		}
	}
	for _, s := range requested {
		if _, ok := taken[s]; ok {
			return false
		}
	}
	return true
}

// CanConfirm decides whether a ticket may be flipped to paid given
// the paid tickets already recorded for its auditorium.  Unpaid
// holds are ignored entirely: only seats that were actually bought
// block a confirmation.  The ticket's own entry is skipped so that
// confirming an already-paid ticket stays idempotent.
func CanConfirm(ticket model.Ticket, paidTickets []model.Ticket) bool {
	own := make(map[model.Seat]struct{}, len(ticket.Seats))
	for _, s := range ticket.Seats {
		own[s] = struct{}{}
	}
	for _, t := range paidTickets {
		if t.ID == ticket.ID {
			continue
		}
		for _, s := range t.Seats {
			if _, ok := own[s]; ok {
				return false
			}
		}
	}
	return true
}
