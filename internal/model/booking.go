package model

import "strings"

// Booking represents a user's reservation of specific seats for one
// showing, stored in the `bookings` table. SeatsBooked is derived from
// SeatNumbers but persisted alongside it, matching the file layout.
// TotalPriceCents is frozen at booking time and never recomputed.
//
// Fields:
//  ID              – primary key identifier, assigned max(existing)+1.
//  UserID          – owning user identifier.
//  ShowingID       – showing being booked.
//  SeatsBooked     – number of seats (= len(SeatNumbers)).
//  SeatNumbers     – ordered seat labels such as "A1"; unique within
//                    the booking and across the showing's bookings.
//  TotalPriceCents – SeatsBooked × showing price at booking time.
//  BookingDate     – creation instant, RFC 3339 UTC.
type Booking struct {
	ID              uint64   // bookings.booking_id
	UserID          uint64   // bookings.user_id
	ShowingID       uint64   // bookings.showing_id
	SeatsBooked     uint32   // bookings.seats_booked
	SeatNumbers     []string // bookings.seat_numbers (comma-joined)
	TotalPriceCents uint32   // bookings.total_price (decimal text in CSV)
	BookingDate     string   // bookings.booking_date
}

// JoinSeats serializes seat labels for the seat_numbers column.
func JoinSeats(seats []string) string { return strings.Join(seats, ",") }

// SplitSeats parses the seat_numbers column back into labels. An empty
// column yields no labels rather than a single empty one.
func SplitSeats(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
