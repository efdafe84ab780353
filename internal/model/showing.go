package model

// Showing represents a scheduled screening of a movie at a theatre,
// stored in the `movies_showings` table. The available-seat counter is
// a running total maintained by the booking engine; the authoritative
// per-seat occupancy is the union of seat labels across bookings.
//
// Fields:
//  ID             – primary key identifier, monotonically increasing.
//  Title          – movie title.
//  Genre          – movie genre.
//  DurationMin    – running time in minutes.
//  TheatreID      – owning theatre identifier.
//  Showtime       – free-form showtime string (e.g. "18:00"), kept
//                   opaque for compatibility with existing files.
//  AvailableSeats – seats not yet claimed by any booking.
//  PriceCents     – ticket price per seat in cents.
type Showing struct {
	ID             uint64 // movies_showings.id
	Title          string // movies_showings.title
	Genre          string // movies_showings.genre
	DurationMin    uint32 // movies_showings.duration
	TheatreID      uint64 // movies_showings.theatre_id
	Showtime       string // movies_showings.showtime
	AvailableSeats uint32 // movies_showings.available_seats
	PriceCents     uint32 // movies_showings.price (decimal text in CSV)
}
