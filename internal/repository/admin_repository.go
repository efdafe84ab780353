package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pvc-cinemas/pvc/internal/model"
	"github.com/pvc-cinemas/pvc/internal/store"
)

// AdminRepo manages persistence for administrator accounts.
type AdminRepo struct {
	table *store.Table
}

// NewAdminRepo returns an AdminRepo bound to the store's admins table.
func NewAdminRepo(s *store.Store) *AdminRepo { return &AdminRepo{table: s.Admins} }

func decodeAdmin(row []string) (model.Admin, error) {
	id, err := strconv.ParseUint(row[0], 10, 64)
	if err != nil {
		return model.Admin{}, fmt.Errorf("admins: bad admin_id %q: %w", row[0], store.ErrPersistence)
	}
	var theatreID uint64
	if row[5] != "" {
		theatreID, err = strconv.ParseUint(row[5], 10, 64)
		if err != nil {
			return model.Admin{}, fmt.Errorf("admins: bad theatre_id %q: %w", row[5], store.ErrPersistence)
		}
	}
	return model.Admin{
		ID:           id,
		Username:     row[1],
		PasswordHash: row[2],
		Salt:         row[3],
		Type:         row[4],
		TheatreID:    theatreID,
	}, nil
}

func encodeAdmin(a model.Admin) []string {
	theatre := ""
	if a.Type == model.AdminTheatre {
		theatre = strconv.FormatUint(a.TheatreID, 10)
	}
	return []string{
		strconv.FormatUint(a.ID, 10),
		a.Username,
		a.PasswordHash,
		a.Salt,
		a.Type,
		theatre,
	}
}

// List returns all admins in file order.
func (r *AdminRepo) List(ctx context.Context) ([]model.Admin, error) {
	rows, err := r.table.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	admins := make([]model.Admin, 0, len(rows))
	for _, row := range rows {
		a, err := decodeAdmin(row)
		if err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, nil
}

// ListTheatreAdmins returns only theatre-type admins.
func (r *AdminRepo) ListTheatreAdmins(ctx context.Context) ([]model.Admin, error) {
	admins, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	theatre := admins[:0:0]
	for _, a := range admins {
		if a.Type == model.AdminTheatre {
			theatre = append(theatre, a)
		}
	}
	return theatre, nil
}

// GetByID returns the admin with the given identifier, or
// ErrAdminNotFound.
func (r *AdminRepo) GetByID(ctx context.Context, id uint64) (model.Admin, error) {
	admins, err := r.List(ctx)
	if err != nil {
		return model.Admin{}, err
	}
	for _, a := range admins {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Admin{}, ErrAdminNotFound
}

// GetByUsername returns the admin with the given username; the match
// is case-sensitive and exact.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (model.Admin, error) {
	admins, err := r.List(ctx)
	if err != nil {
		return model.Admin{}, err
	}
	for _, a := range admins {
		if a.Username == username {
			return a, nil
		}
	}
	return model.Admin{}, ErrAdminNotFound
}

// Create assigns the next identifier (max existing + 1) and appends
// the admin.
func (r *AdminRepo) Create(ctx context.Context, a *model.Admin) error {
	admins, err := r.List(ctx)
	if err != nil {
		return err
	}
	var maxID uint64
	rows := make([][]string, 0, len(admins)+1)
	for _, existing := range admins {
		if existing.ID > maxID {
			maxID = existing.ID
		}
		rows = append(rows, encodeAdmin(existing))
	}
	a.ID = maxID + 1
	rows = append(rows, encodeAdmin(*a))
	return r.table.WriteAll(ctx, rows)
}

// Update rewrites the record with the same identifier, or returns
// ErrAdminNotFound.
func (r *AdminRepo) Update(ctx context.Context, a model.Admin) error {
	admins, err := r.List(ctx)
	if err != nil {
		return err
	}
	found := false
	rows := make([][]string, 0, len(admins))
	for _, existing := range admins {
		if existing.ID == a.ID {
			existing = a
			found = true
		}
		rows = append(rows, encodeAdmin(existing))
	}
	if !found {
		return ErrAdminNotFound
	}
	return r.table.WriteAll(ctx, rows)
}

// Delete removes the record with the given identifier, or returns
// ErrAdminNotFound.
func (r *AdminRepo) Delete(ctx context.Context, id uint64) error {
	admins, err := r.List(ctx)
	if err != nil {
		return err
	}
	found := false
	rows := make([][]string, 0, len(admins))
	for _, existing := range admins {
		if existing.ID == id {
			found = true
			continue
		}
		rows = append(rows, encodeAdmin(existing))
	}
	if !found {
		return ErrAdminNotFound
	}
	return r.table.WriteAll(ctx, rows)
}
