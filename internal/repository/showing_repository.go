package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pvc-cinemas/pvc/internal/model"
	"github.com/pvc-cinemas/pvc/internal/store"
)

// ShowingRepo manages persistence for movie showings. Price text is
// parsed to cents on read and formatted back on write so arithmetic in
// the booking engine never touches floats.
type ShowingRepo struct {
	table *store.Table
}

// NewShowingRepo returns a ShowingRepo bound to the movies_showings
// table.
func NewShowingRepo(s *store.Store) *ShowingRepo { return &ShowingRepo{table: s.Showings} }

func decodeShowing(row []string) (model.Showing, error) {
	id, err := strconv.ParseUint(row[0], 10, 64)
	if err != nil {
		return model.Showing{}, fmt.Errorf("movies_showings: bad id %q: %w", row[0], store.ErrPersistence)
	}
	duration, err := strconv.ParseUint(row[3], 10, 32)
	if err != nil {
		return model.Showing{}, fmt.Errorf("movies_showings: bad duration %q: %w", row[3], store.ErrPersistence)
	}
	theatreID, err := strconv.ParseUint(row[4], 10, 64)
	if err != nil {
		return model.Showing{}, fmt.Errorf("movies_showings: bad theatre_id %q: %w", row[4], store.ErrPersistence)
	}
	seats, err := strconv.ParseUint(row[6], 10, 32)
	if err != nil {
		return model.Showing{}, fmt.Errorf("movies_showings: bad available_seats %q: %w", row[6], store.ErrPersistence)
	}
	price, err := model.ParsePrice(row[7])
	if err != nil {
		return model.Showing{}, fmt.Errorf("movies_showings: %v: %w", err, store.ErrPersistence)
	}
	return model.Showing{
		ID:             id,
		Title:          row[1],
		Genre:          row[2],
		DurationMin:    uint32(duration),
		TheatreID:      theatreID,
		Showtime:       row[5],
		AvailableSeats: uint32(seats),
		PriceCents:     price,
	}, nil
}

func encodeShowing(s model.Showing) []string {
	return []string{
		strconv.FormatUint(s.ID, 10),
		s.Title,
		s.Genre,
		strconv.FormatUint(uint64(s.DurationMin), 10),
		strconv.FormatUint(s.TheatreID, 10),
		s.Showtime,
		strconv.FormatUint(uint64(s.AvailableSeats), 10),
		model.FormatPrice(s.PriceCents),
	}
}

// List returns all showings in file order.
func (r *ShowingRepo) List(ctx context.Context) ([]model.Showing, error) {
	rows, err := r.table.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	showings := make([]model.Showing, 0, len(rows))
	for _, row := range rows {
		s, err := decodeShowing(row)
		if err != nil {
			return nil, err
		}
		showings = append(showings, s)
	}
	return showings, nil
}

// GetByID returns the showing with the given identifier, or
// ErrShowingNotFound.
func (r *ShowingRepo) GetByID(ctx context.Context, id uint64) (model.Showing, error) {
	showings, err := r.List(ctx)
	if err != nil {
		return model.Showing{}, err
	}
	for _, s := range showings {
		if s.ID == id {
			return s, nil
		}
	}
	return model.Showing{}, ErrShowingNotFound
}

// Create assigns the next identifier (max existing + 1) and appends
// the showing.
func (r *ShowingRepo) Create(ctx context.Context, s *model.Showing) error {
	showings, err := r.List(ctx)
	if err != nil {
		return err
	}
	var maxID uint64
	rows := make([][]string, 0, len(showings)+1)
	for _, existing := range showings {
		if existing.ID > maxID {
			maxID = existing.ID
		}
		rows = append(rows, encodeShowing(existing))
	}
	s.ID = maxID + 1
	rows = append(rows, encodeShowing(*s))
	return r.table.WriteAll(ctx, rows)
}

// Update rewrites the record with the same identifier, or returns
// ErrShowingNotFound.
func (r *ShowingRepo) Update(ctx context.Context, s model.Showing) error {
	showings, err := r.List(ctx)
	if err != nil {
		return err
	}
	found := false
	rows := make([][]string, 0, len(showings))
	for _, existing := range showings {
		if existing.ID == s.ID {
			existing = s
			found = true
		}
		rows = append(rows, encodeShowing(existing))
	}
	if !found {
		return ErrShowingNotFound
	}
	return r.table.WriteAll(ctx, rows)
}
