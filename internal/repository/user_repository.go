package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pvc-cinemas/pvc/internal/model"
	"github.com/pvc-cinemas/pvc/internal/store"
)

// UserRepo manages persistence for user accounts.
type UserRepo struct {
	table *store.Table
}

// NewUserRepo returns a UserRepo bound to the store's users table.
func NewUserRepo(s *store.Store) *UserRepo { return &UserRepo{table: s.Users} }

func decodeUser(row []string) (model.User, error) {
	id, err := strconv.ParseUint(row[0], 10, 64)
	if err != nil {
		return model.User{}, fmt.Errorf("users: bad user_id %q: %w", row[0], store.ErrPersistence)
	}
	status := row[5]
	if status == "" {
		// Rows written before the status column carried a value are
		// treated as active, like the original did.
		status = model.StatusActive
	}
	return model.User{
		ID:           id,
		Username:     row[1],
		PasswordHash: row[2],
		Salt:         row[3],
		Email:        row[4],
		Status:       status,
	}, nil
}

func encodeUser(u model.User) []string {
	return []string{
		strconv.FormatUint(u.ID, 10),
		u.Username,
		u.PasswordHash,
		u.Salt,
		u.Email,
		u.Status,
	}
}

// List returns all users in file order.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.table.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		u, err := decodeUser(row)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// GetByID returns the user with the given identifier, or
// ErrUserNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

// GetByUsername returns the user with the given username. The match is
// case-sensitive and exact, like the original.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

// FindByEmail returns the user with the given email address, or
// ErrUserNotFound.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

// Create assigns the next identifier and appends the user. The id is
// max(existing)+1, not count+1, so it stays unique after deletions.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	var maxID uint64
	rows := make([][]string, 0, len(users)+1)
	for _, existing := range users {
		if existing.ID > maxID {
			maxID = existing.ID
		}
		rows = append(rows, encodeUser(existing))
	}
	u.ID = maxID + 1
	rows = append(rows, encodeUser(*u))
	return r.table.WriteAll(ctx, rows)
}

// Update rewrites the record with the same identifier. It returns
// ErrUserNotFound when no such record exists.
func (r *UserRepo) Update(ctx context.Context, u model.User) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	found := false
	rows := make([][]string, 0, len(users))
	for _, existing := range users {
		if existing.ID == u.ID {
			existing = u
			found = true
		}
		rows = append(rows, encodeUser(existing))
	}
	if !found {
		return ErrUserNotFound
	}
	return r.table.WriteAll(ctx, rows)
}

// Delete removes the record with the given identifier. It returns
// ErrUserNotFound when no such record exists.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	found := false
	rows := make([][]string, 0, len(users))
	for _, existing := range users {
		if existing.ID == id {
			found = true
			continue
		}
		rows = append(rows, encodeUser(existing))
	}
	if !found {
		return ErrUserNotFound
	}
	return r.table.WriteAll(ctx, rows)
}
