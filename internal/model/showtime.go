package model

import "time"

// Showtime represents a scheduled screening of a movie in a
// particular auditorium.  Tickets and reservations reference a
// showtime by ID; the movie title is carried here so reservation
// views can be built without an external lookup.
//
// Fields:
//  ID           – primary key identifier.
//  AuditoriumID – auditorium where the screening takes place.
//  MovieTitle   – title of the movie being screened.
//  SessionDate  – when the screening starts.
type Showtime struct {
	ID           uint64    `json:"id"`            // showtimes.id
	AuditoriumID uint64    `json:"auditorium_id"` // showtimes.auditorium_id
	MovieTitle   string    `json:"movie_title"`   // showtimes.movie_title
	SessionDate  time.Time `json:"session_date"`  // showtimes.session_date
}
