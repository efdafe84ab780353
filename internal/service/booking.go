package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pvc-cinemas/pvc/internal/config"
	"github.com/pvc-cinemas/pvc/internal/model"
	"github.com/pvc-cinemas/pvc/internal/repository"
	"github.com/pvc-cinemas/pvc/internal/store"
)

// ErrSeatConflict is returned when a requested seat label is already
// held by an active booking for the showing.
var ErrSeatConflict = errors.New("seat already booked")

// ErrInsufficientSeats is returned when more seats are requested than
// the showing has available.
var ErrInsufficientSeats = errors.New("not enough seats available")

// ErrNoSeats is returned when a booking request contains no usable
// seat labels.
var ErrNoSeats = errors.New("no seats requested")

// BookingService is the booking engine: seat availability, conflict
// detection, booking and cancellation, and theatre-scoped reporting.
// Per-showing seat state is derived from two sources that every
// mutation keeps in lockstep inside one lock scope: the showing's
// available-seat counter and the union of seat labels across its
// bookings (the authoritative ledger).
type BookingService struct {
	cfg      config.Config
	store    *store.Store
	users    *repository.UserRepo
	showings *repository.ShowingRepo
	bookings *repository.BookingRepo
}

// NewBookingService constructs a BookingService. The user repository
// is used only to resolve usernames for reporting.
func NewBookingService(cfg config.Config, st *store.Store, users *repository.UserRepo, showings *repository.ShowingRepo, bookings *repository.BookingRepo) *BookingService {
	return &BookingService{cfg: cfg, store: st, users: users, showings: showings, bookings: bookings}
}

// ListShowings returns all showings in file order.
func (s *BookingService) ListShowings(ctx context.Context) ([]model.Showing, error) {
	return s.showings.List(ctx)
}

// GetShowing returns one showing by identifier.
func (s *BookingService) GetShowing(ctx context.Context, id uint64) (model.Showing, error) {
	return s.showings.GetByID(ctx, id)
}

// AddShowing creates a showing for a theatre. The available-seat
// counter starts at the configured capacity with an empty ledger.
func (s *BookingService) AddShowing(ctx context.Context, showing *model.Showing) error {
	if showing.Title == "" || showing.TheatreID == 0 {
		return ErrEmptyValue
	}
	return s.store.WithLock(func() error {
		return s.showings.Create(ctx, showing)
	})
}

// BookTickets reserves the given seat labels on a showing for a user
// and returns the new booking's identifier. Duplicate labels in the
// request are dropped, order preserved. The whole check-then-commit
// sequence runs under the store lock so concurrent callers cannot
// both pass the availability check against stale data.
func (s *BookingService) BookTickets(ctx context.Context, userID, showingID uint64, seatLabels []string) (uint64, error) {
	seats := dedupeSeats(seatLabels)
	if len(seats) == 0 {
		return 0, ErrNoSeats
	}
	var bookingID uint64
	err := s.store.WithLock(func() error {
		showing, err := s.showings.GetByID(ctx, showingID)
		if err != nil {
			return err
		}
		existing, err := s.bookings.ListByShowing(ctx, showingID)
		if err != nil {
			return err
		}
		booked := make(map[string]struct{})
		for _, b := range existing {
			for _, label := range b.SeatNumbers {
				booked[label] = struct{}{}
			}
		}
		for _, label := range seats {
			if _, taken := booked[label]; taken {
				return fmt.Errorf("seat %s: %w", label, ErrSeatConflict)
			}
		}
		if uint32(len(seats)) > showing.AvailableSeats {
			return ErrInsufficientSeats
		}
		b := model.Booking{
			UserID:          userID,
			ShowingID:       showingID,
			SeatsBooked:     uint32(len(seats)),
			SeatNumbers:     seats,
			TotalPriceCents: uint32(len(seats)) * showing.PriceCents,
			BookingDate:     time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.bookings.Create(ctx, &b); err != nil {
			return err
		}
		// The booking is committed; a failure past this point leaves
		// the counter stale until the next successful mutation, which
		// the caller sees as a persistence error.
		showing.AvailableSeats -= uint32(len(seats))
		if err := s.showings.Update(ctx, showing); err != nil {
			return err
		}
		bookingID = b.ID
		return nil
	})
	return bookingID, err
}

// CancelBooking removes a booking owned by the user and restores its
// seats to the showing. A booking belonging to another user reports
// ErrBookingNotFound; whether it exists is not revealed. If the
// showing no longer exists the restore is skipped but the booking is
// still removed.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, userID uint64) error {
	return s.store.WithLock(func() error {
		b, err := s.bookings.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.UserID != userID {
			return repository.ErrBookingNotFound
		}
		showing, err := s.showings.GetByID(ctx, b.ShowingID)
		switch {
		case err == nil:
			showing.AvailableSeats += b.SeatsBooked
			if err := s.showings.Update(ctx, showing); err != nil {
				return err
			}
		case errors.Is(err, repository.ErrShowingNotFound):
			// orphaned booking; still cancellable
		default:
			return err
		}
		return s.bookings.Delete(ctx, bookingID)
	})
}

// GetUserBookings returns the bookings owned by a user.
func (s *BookingService) GetUserBookings(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// GetAllBookings returns every booking in the system.
func (s *BookingService) GetAllBookings(ctx context.Context) ([]model.Booking, error) {
	return s.bookings.List(ctx)
}

// TheatreBooking pairs a booking with the username that owns it, for
// theatre reporting.
type TheatreBooking struct {
	model.Booking
	Username string
}

// GetTheatreBookings returns the bookings whose showing belongs to the
// theatre, along with the theatre's total revenue in cents. Bookings
// for other theatres' showings are never included.
func (s *BookingService) GetTheatreBookings(ctx context.Context, theatreID uint64) ([]TheatreBooking, uint64, error) {
	showings, err := s.showings.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	owned := make(map[uint64]struct{})
	for _, sh := range showings {
		if sh.TheatreID == theatreID {
			owned[sh.ID] = struct{}{}
		}
	}
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	names := make(map[uint64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}
	var result []TheatreBooking
	var revenue uint64
	for _, b := range bookings {
		if _, ok := owned[b.ShowingID]; !ok {
			continue
		}
		name, ok := names[b.UserID]
		if !ok {
			name = "Unknown"
		}
		result = append(result, TheatreBooking{Booking: b, Username: name})
		revenue += uint64(b.TotalPriceCents)
	}
	return result, revenue, nil
}

// SeatLayout is the derived view of a showing's seat pool used by the
// seat picker: total capacity is reconstructed from the counter plus
// the ledger, never stored.
type SeatLayout struct {
	TotalSeats     int
	AvailableSeats int
	SeatsPerRow    int
	Booked         map[string]bool
}

// GetSeatLayout derives the seat layout for a showing.
func (s *BookingService) GetSeatLayout(ctx context.Context, showingID uint64) (SeatLayout, error) {
	showing, err := s.showings.GetByID(ctx, showingID)
	if err != nil {
		return SeatLayout{}, err
	}
	bookings, err := s.bookings.ListByShowing(ctx, showingID)
	if err != nil {
		return SeatLayout{}, err
	}
	layout := SeatLayout{
		AvailableSeats: int(showing.AvailableSeats),
		SeatsPerRow:    s.cfg.SeatsPerRow,
		Booked:         make(map[string]bool),
	}
	bookedCount := 0
	for _, b := range bookings {
		for _, label := range b.SeatNumbers {
			layout.Booked[label] = true
		}
		bookedCount += len(b.SeatNumbers)
	}
	layout.TotalSeats = layout.AvailableSeats + bookedCount
	return layout, nil
}

// SeatGrid lays out seat labels row by row: rows lettered from 'A',
// columns numbered from 1, so the first seats are A1..A10. The last
// row is padded with empty placeholders to keep the grid rectangular.
func SeatGrid(totalSeats, seatsPerRow int) [][]string {
	if totalSeats <= 0 || seatsPerRow <= 0 {
		return nil
	}
	rows := (totalSeats + seatsPerRow - 1) / seatsPerRow
	grid := make([][]string, rows)
	for r := 0; r < rows; r++ {
		row := make([]string, seatsPerRow)
		for c := 0; c < seatsPerRow; c++ {
			n := r*seatsPerRow + c
			if n < totalSeats {
				row[c] = fmt.Sprintf("%c%d", 'A'+r, c+1)
			}
		}
		grid[r] = row
	}
	return grid
}

// Stats summarizes the whole system for the system admin.
type Stats struct {
	Users        int
	Showings     int
	Bookings     int
	TicketsSold  uint64
	RevenueCents uint64
}

// GetStats computes system totals. Revenue is the sum of frozen
// booking prices, not a recomputation from current showing prices.
func (s *BookingService) GetStats(ctx context.Context) (Stats, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	showings, err := s.showings.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Users: len(users), Showings: len(showings), Bookings: len(bookings)}
	for _, b := range bookings {
		st.TicketsSold += uint64(b.SeatsBooked)
		st.RevenueCents += uint64(b.TotalPriceCents)
	}
	return st, nil
}

// dedupeSeats trims labels and drops empties and duplicates while
// preserving the order of first occurrence.
func dedupeSeats(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out
}
