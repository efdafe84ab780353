package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvc-cinemas/pvc/internal/model"
	"github.com/pvc-cinemas/pvc/internal/repository"
)

func TestBookTickets(t *testing.T) {
	e := newTestEnv(t)
	user := e.registerUser(t, "alice")
	showing := e.addShowing(t, 1, 40, 1050)

	bookingID, err := e.booking.BookTickets(e.ctx, user, showing, []string{"A1", "A2"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), bookingID)

	b, err := e.bookings.GetByID(e.ctx, bookingID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, b.SeatNumbers)
	assert.Equal(t, uint32(2100), b.TotalPriceCents)
	assert.NotEmpty(t, b.BookingDate)

	sh, err := e.booking.GetShowing(e.ctx, showing)
	require.NoError(t, err)
	assert.Equal(t, uint32(38), sh.AvailableSeats)
}

func TestBookTicketsSeatConflict(t *testing.T) {
	e := newTestEnv(t)
	alice := e.registerUser(t, "alice")
	bob := e.registerUser(t, "bob")
	showing := e.addShowing(t, 1, 40, 1000)

	_, err := e.booking.BookTickets(e.ctx, alice, showing, []string{"A1", "A2"})
	require.NoError(t, err)

	_, err = e.booking.BookTickets(e.ctx, bob, showing, []string{"A2", "A3"})
	assert.ErrorIs(t, err, ErrSeatConflict)

	// The failed attempt must not have touched counter or ledger.
	sh, err := e.booking.GetShowing(e.ctx, showing)
	require.NoError(t, err)
	assert.Equal(t, uint32(38), sh.AvailableSeats)
	all, err := e.booking.GetAllBookings(e.ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBookTicketsInsufficientSeats(t *testing.T) {
	e := newTestEnv(t)
	user := e.registerUser(t, "alice")
	showing := e.addShowing(t, 1, 2, 1000)

	_, err := e.booking.BookTickets(e.ctx, user, showing, []string{"A1", "A2", "A3"})
	assert.ErrorIs(t, err, ErrInsufficientSeats)
}

func TestBookTicketsDedupesLabels(t *testing.T) {
	e := newTestEnv(t)
	user := e.registerUser(t, "alice")
	showing := e.addShowing(t, 1, 40, 1000)

	id, err := e.booking.BookTickets(e.ctx, user, showing, []string{"A1", "A1", " A2 ", ""})
	require.NoError(t, err)
	b, err := e.bookings.GetByID(e.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, b.SeatNumbers)
	assert.Equal(t, uint32(2), b.SeatsBooked)
}

func TestBookTicketsNoSeats(t *testing.T) {
	e := newTestEnv(t)
	user := e.registerUser(t, "alice")
	showing := e.addShowing(t, 1, 40, 1000)

	_, err := e.booking.BookTickets(e.ctx, user, showing, []string{" ", ""})
	assert.ErrorIs(t, err, ErrNoSeats)
}

func TestBookTicketsUnknownShowing(t *testing.T) {
	e := newTestEnv(t)
	user := e.registerUser(t, "alice")

	_, err := e.booking.BookTickets(e.ctx, user, 99, []string{"A1"})
	assert.ErrorIs(t, err, repository.ErrShowingNotFound)
}

func TestCancelBookingThenRebook(t *testing.T) {
	e := newTestEnv(t)
	user := e.registerUser(t, "alice")
	showing := e.addShowing(t, 1, 10, 1000)

	id, err := e.booking.BookTickets(e.ctx, user, showing, []string{"A5", "A6"})
	require.NoError(t, err)
	require.NoError(t, e.booking.CancelBooking(e.ctx, id, user))

	sh, err := e.booking.GetShowing(e.ctx, showing)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), sh.AvailableSeats)

	// The released seats are bookable again.
	_, err = e.booking.BookTickets(e.ctx, user, showing, []string{"A5", "A6"})
	assert.NoError(t, err)
}

func TestCancelBookingOwnership(t *testing.T) {
	e := newTestEnv(t)
	alice := e.registerUser(t, "alice")
	bob := e.registerUser(t, "bob")
	showing := e.addShowing(t, 1, 10, 1000)

	id, err := e.booking.BookTickets(e.ctx, alice, showing, []string{"A1"})
	require.NoError(t, err)

	err = e.booking.CancelBooking(e.ctx, id, bob)
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)

	// Still there for its owner.
	mine, err := e.booking.GetUserBookings(e.ctx, alice)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestCancelBookingUnknown(t *testing.T) {
	e := newTestEnv(t)
	user := e.registerUser(t, "alice")
	err := e.booking.CancelBooking(e.ctx, 42, user)
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}

func TestSeatCounterMatchesLedger(t *testing.T) {
	e := newTestEnv(t)
	alice := e.registerUser(t, "alice")
	bob := e.registerUser(t, "bob")
	showing := e.addShowing(t, 1, 20, 1000)

	id1, err := e.booking.BookTickets(e.ctx, alice, showing, []string{"A1", "A2", "A3"})
	require.NoError(t, err)
	_, err = e.booking.BookTickets(e.ctx, bob, showing, []string{"B1", "B2"})
	require.NoError(t, err)
	require.NoError(t, e.booking.CancelBooking(e.ctx, id1, alice))

	layout, err := e.booking.GetSeatLayout(e.ctx, showing)
	require.NoError(t, err)
	assert.Equal(t, 20, layout.TotalSeats)
	assert.Equal(t, layout.TotalSeats-len(layout.Booked), layout.AvailableSeats)
	assert.Equal(t, map[string]bool{"B1": true, "B2": true}, layout.Booked)
}

func TestGetTheatreBookingsScoped(t *testing.T) {
	e := newTestEnv(t)
	alice := e.registerUser(t, "alice")
	bob := e.registerUser(t, "bob")
	east := e.addShowing(t, 1, 40, 1000)
	west := e.addShowing(t, 2, 40, 2500)

	_, err := e.booking.BookTickets(e.ctx, alice, east, []string{"A1", "A2"})
	require.NoError(t, err)
	_, err = e.booking.BookTickets(e.ctx, bob, west, []string{"A1"})
	require.NoError(t, err)

	got, revenue, err := e.booking.GetTheatreBookings(e.ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].Username)
	assert.Equal(t, east, got[0].ShowingID)
	assert.Equal(t, uint64(2000), revenue)

	_, revenue, err = e.booking.GetTheatreBookings(e.ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(2500), revenue)
}

func TestSeatGrid(t *testing.T) {
	grid := SeatGrid(25, 10)
	require.Len(t, grid, 3)
	assert.Equal(t, "A1", grid[0][0])
	assert.Equal(t, "A10", grid[0][9])
	assert.Equal(t, "B1", grid[1][0])
	assert.Equal(t, "C5", grid[2][4])
	assert.Equal(t, "", grid[2][5])

	assert.Nil(t, SeatGrid(0, 10))
	assert.Nil(t, SeatGrid(10, 0))
}

func TestGetStats(t *testing.T) {
	e := newTestEnv(t)
	alice := e.registerUser(t, "alice")
	e.registerUser(t, "bob")
	showing := e.addShowing(t, 1, 40, 1000)

	_, err := e.booking.BookTickets(e.ctx, alice, showing, []string{"A1", "A2", "A3"})
	require.NoError(t, err)

	st, err := e.booking.GetStats(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Users)
	assert.Equal(t, 1, st.Showings)
	assert.Equal(t, 1, st.Bookings)
	assert.Equal(t, uint64(3), st.TicketsSold)
	assert.Equal(t, uint64(3000), st.RevenueCents)
}

func TestAddShowingValidation(t *testing.T) {
	e := newTestEnv(t)
	sh := model.Showing{TheatreID: 1}
	assert.ErrorIs(t, e.booking.AddShowing(e.ctx, &sh), ErrEmptyValue)
	sh = model.Showing{Title: "Alien"}
	assert.ErrorIs(t, e.booking.AddShowing(e.ctx, &sh), ErrEmptyValue)
}
