package booking

import "errors"

// Sentinel errors returned by the engine and the storage layer.
// Handlers compare against these with errors.Is to choose an HTTP
// status; none of them is transient, so nothing in the core retries.
var (
	// Not-found family: the referenced entity does not exist.
	ErrShowtimeNotFound    = errors.New("showtime not found")
	ErrAuditoriumNotFound  = errors.New("auditorium not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrTicketNotFound      = errors.New("ticket not found")

	// Invalid-request family: the request shape can never succeed.
	ErrNoSeatsRequested   = errors.New("no seats requested")
	ErrSeatsNotFound      = errors.New("some seats are not found")
	ErrSeatsNotContiguous = errors.New("seats are not contiguous")

	// Conflict family: the request lost to a competing claim.
	ErrSeatsConflict    = errors.New("some seats are already reserved")
	ErrSeatsAlreadyPaid = errors.New("some seats are already bought")

	// ErrReservationExpired marks a reservation whose hold window has
	// lapsed without payment.  On confirm it is a conflict; on read it
	// accompanies the stored record, which remains inspectable.
	ErrReservationExpired = errors.New("reservation has expired")
)
