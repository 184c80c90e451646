package model

// Auditorium is the static seat map for one screening room.  The
// seat list is defined once and only ever queried afterwards; the
// reservation flow never mutates it.
type Auditorium struct {
	ID    uint64 `json:"id"`
	Seats []Seat `json:"seats"`
}
