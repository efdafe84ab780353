package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pvc-cinemas/pvc/internal/model"
	"github.com/pvc-cinemas/pvc/internal/store"
)

// BookingRepo manages persistence for bookings. The seat_numbers
// column is the authoritative per-seat occupancy ledger; the booking
// engine derives seat availability from the union of these sets.
type BookingRepo struct {
	table *store.Table
}

// NewBookingRepo returns a BookingRepo bound to the bookings table.
func NewBookingRepo(s *store.Store) *BookingRepo { return &BookingRepo{table: s.Bookings} }

func decodeBooking(row []string) (model.Booking, error) {
	id, err := strconv.ParseUint(row[0], 10, 64)
	if err != nil {
		return model.Booking{}, fmt.Errorf("bookings: bad booking_id %q: %w", row[0], store.ErrPersistence)
	}
	userID, err := strconv.ParseUint(row[1], 10, 64)
	if err != nil {
		return model.Booking{}, fmt.Errorf("bookings: bad user_id %q: %w", row[1], store.ErrPersistence)
	}
	showingID, err := strconv.ParseUint(row[2], 10, 64)
	if err != nil {
		return model.Booking{}, fmt.Errorf("bookings: bad showing_id %q: %w", row[2], store.ErrPersistence)
	}
	seats, err := strconv.ParseUint(row[3], 10, 32)
	if err != nil {
		return model.Booking{}, fmt.Errorf("bookings: bad seats_booked %q: %w", row[3], store.ErrPersistence)
	}
	total, err := model.ParsePrice(row[5])
	if err != nil {
		return model.Booking{}, fmt.Errorf("bookings: %v: %w", err, store.ErrPersistence)
	}
	return model.Booking{
		ID:              id,
		UserID:          userID,
		ShowingID:       showingID,
		SeatsBooked:     uint32(seats),
		SeatNumbers:     model.SplitSeats(row[4]),
		TotalPriceCents: total,
		BookingDate:     row[6],
	}, nil
}

func encodeBooking(b model.Booking) []string {
	return []string{
		strconv.FormatUint(b.ID, 10),
		strconv.FormatUint(b.UserID, 10),
		strconv.FormatUint(b.ShowingID, 10),
		strconv.FormatUint(uint64(b.SeatsBooked), 10),
		model.JoinSeats(b.SeatNumbers),
		model.FormatPrice(b.TotalPriceCents),
		b.BookingDate,
	}
}

// List returns all bookings in file order.
func (r *BookingRepo) List(ctx context.Context) ([]model.Booking, error) {
	rows, err := r.table.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	bookings := make([]model.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := decodeBooking(row)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// ListByUser returns the bookings owned by the given user.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	bookings, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	mine := bookings[:0:0]
	for _, b := range bookings {
		if b.UserID == userID {
			mine = append(mine, b)
		}
	}
	return mine, nil
}

// ListByShowing returns the bookings referencing the given showing.
func (r *BookingRepo) ListByShowing(ctx context.Context, showingID uint64) ([]model.Booking, error) {
	bookings, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := bookings[:0:0]
	for _, b := range bookings {
		if b.ShowingID == showingID {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// GetByID returns the booking with the given identifier, or
// ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	bookings, err := r.List(ctx)
	if err != nil {
		return model.Booking{}, err
	}
	for _, b := range bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Booking{}, ErrBookingNotFound
}

// Create assigns the next identifier (max existing + 1, so ids stay
// unique across cancellations) and appends the booking.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	bookings, err := r.List(ctx)
	if err != nil {
		return err
	}
	var maxID uint64
	rows := make([][]string, 0, len(bookings)+1)
	for _, existing := range bookings {
		if existing.ID > maxID {
			maxID = existing.ID
		}
		rows = append(rows, encodeBooking(existing))
	}
	b.ID = maxID + 1
	rows = append(rows, encodeBooking(*b))
	return r.table.WriteAll(ctx, rows)
}

// Delete hard-removes the booking with the given identifier, or
// returns ErrBookingNotFound.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	bookings, err := r.List(ctx)
	if err != nil {
		return err
	}
	found := false
	rows := make([][]string, 0, len(bookings))
	for _, existing := range bookings {
		if existing.ID == id {
			found = true
			continue
		}
		rows = append(rows, encodeBooking(existing))
	}
	if !found {
		return ErrBookingNotFound
	}
	return r.table.WriteAll(ctx, rows)
}

// DeleteByUser removes every booking owned by the user and returns the
// removed records so the caller can restore seat counts.
func (r *BookingRepo) DeleteByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	bookings, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var removed []model.Booking
	rows := make([][]string, 0, len(bookings))
	for _, existing := range bookings {
		if existing.UserID == userID {
			removed = append(removed, existing)
			continue
		}
		rows = append(rows, encodeBooking(existing))
	}
	if len(removed) == 0 {
		return nil, nil
	}
	return removed, r.table.WriteAll(ctx, rows)
}
