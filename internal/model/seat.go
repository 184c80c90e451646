package model

// Seat describes a physical seat in an auditorium.  Seats are
// uniquely identified by their auditorium, row and seat number and
// are immutable once the auditorium is defined.  No ticket owns a
// seat directly; the association always goes through a ticket's
// seat list.
//
// Fields:
//  AuditoriumID – auditorium to which this seat belongs.
//  Row          – row number within the auditorium.
//  SeatNumber   – number of the seat within the row.
type Seat struct {
	AuditoriumID uint64 `json:"auditorium_id"` // seats.auditorium_id
	Row          uint32 `json:"row"`           // seats.row_no
	SeatNumber   uint32 `json:"seat_number"`   // seats.seat_no
}
