package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pvc-cinemas/pvc/internal/config"
	"github.com/pvc-cinemas/pvc/internal/model"
	"github.com/pvc-cinemas/pvc/internal/repository"
	"github.com/pvc-cinemas/pvc/internal/store"
)

// testEnv wires both services against a throwaway data directory with a
// low iteration count so hashing stays fast.
type testEnv struct {
	ctx      context.Context
	identity *IdentityService
	booking  *BookingService
	admins   *repository.AdminRepo
	showings *repository.ShowingRepo
	bookings *repository.BookingRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()
	st, err := store.Open(ctx, dir)
	require.NoError(t, err)
	cfg := config.Config{
		DataDir:        dir,
		HashIterations: 64,
		SeatsPerRow:    10,
		SessionSecret:  "test-secret",
		SessionTTLMin:  5,
	}
	users := repository.NewUserRepo(st)
	admins := repository.NewAdminRepo(st)
	showings := repository.NewShowingRepo(st)
	bookings := repository.NewBookingRepo(st)
	return &testEnv{
		ctx:      ctx,
		identity: NewIdentityService(cfg, st, users, admins, showings, bookings),
		booking:  NewBookingService(cfg, st, users, showings, bookings),
		admins:   admins,
		showings: showings,
		bookings: bookings,
	}
}

func (e *testEnv) registerUser(t *testing.T, username string) uint64 {
	t.Helper()
	id, err := e.identity.Register(e.ctx, username, "pw-"+username, username+"@example.com")
	require.NoError(t, err)
	return id
}

func (e *testEnv) addShowing(t *testing.T, theatreID uint64, seats, priceCents uint32) uint64 {
	t.Helper()
	sh := model.Showing{
		Title:          "Blade Runner",
		Genre:          "Sci-Fi",
		DurationMin:    117,
		TheatreID:      theatreID,
		Showtime:       "Fri 21:00",
		AvailableSeats: seats,
		PriceCents:     priceCents,
	}
	require.NoError(t, e.booking.AddShowing(e.ctx, &sh))
	return sh.ID
}
