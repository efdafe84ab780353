// Package service implements the business rules on top of the
// repositories: identity and access on one side, the booking engine on
// the other. Services serialize read-modify-write sequences through
// the store lock so availability checks and commits cannot interleave.
package service

import (
	"context"
	"errors"
	"log"

	"github.com/pvc-cinemas/pvc/internal/config"
	"github.com/pvc-cinemas/pvc/internal/model"
	"github.com/pvc-cinemas/pvc/internal/repository"
	"github.com/pvc-cinemas/pvc/internal/store"
	"github.com/pvc-cinemas/pvc/internal/utils"
)

// ErrInvalidCredentials is returned for an unknown username or a
// password that does not verify. The CLI shows the same message for
// ErrBanned; the distinction exists for logging and tests only.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrBanned is returned when a matched user account is banned.
var ErrBanned = errors.New("account banned")

// ErrEmptyValue rejects modification requests that would set a
// username, password or email to the empty string. A nil pointer
// means "leave unchanged"; pointer-to-empty is never valid for these
// fields, which keeps "clear" and "skip" unambiguous.
var ErrEmptyValue = errors.New("value must not be empty")

// IdentityService handles registration, authentication, ban
// management and account administration for users and theatre admins.
type IdentityService struct {
	cfg      config.Config
	store    *store.Store
	users    *repository.UserRepo
	admins   *repository.AdminRepo
	showings *repository.ShowingRepo
	bookings *repository.BookingRepo
}

// NewIdentityService constructs an IdentityService. The showing and
// booking repositories are needed for the delete-user cascade.
func NewIdentityService(cfg config.Config, st *store.Store, users *repository.UserRepo, admins *repository.AdminRepo, showings *repository.ShowingRepo, bookings *repository.BookingRepo) *IdentityService {
	return &IdentityService{cfg: cfg, store: st, users: users, admins: admins, showings: showings, bookings: bookings}
}

// Register creates a new user account. It fails with
// repository.ErrUsernameExists or repository.ErrEmailExists when the
// username or email is already taken (case-sensitive exact match).
func (s *IdentityService) Register(ctx context.Context, username, password, email string) (uint64, error) {
	if username == "" || password == "" || email == "" {
		return 0, ErrEmptyValue
	}
	var id uint64
	err := s.store.WithLock(func() error {
		existing, err := s.users.List(ctx)
		if err != nil {
			return err
		}
		for _, u := range existing {
			if u.Username == username {
				return repository.ErrUsernameExists
			}
			if u.Email == email {
				return repository.ErrEmailExists
			}
		}
		hash, salt, err := utils.HashPassword(password, "", s.cfg.HashIterations)
		if err != nil {
			return err
		}
		u := model.User{
			Username:     username,
			PasswordHash: hash,
			Salt:         salt,
			Email:        email,
			Status:       model.StatusActive,
		}
		if err := s.users.Create(ctx, &u); err != nil {
			return err
		}
		id = u.ID
		return nil
	})
	return id, err
}

// Authenticate verifies credentials and returns the matching
// principal. Usernames are looked up among users first, then among
// admins when no user matched. A matched but banned user fails with
// ErrBanned, which callers present exactly like ErrInvalidCredentials.
func (s *IdentityService) Authenticate(ctx context.Context, username, password string) (model.Principal, error) {
	u, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if u.Banned() {
			log.Printf("auth: rejected banned user %q", username)
			return model.Principal{}, ErrBanned
		}
		ok, verr := utils.VerifyPassword(password, u.PasswordHash, u.Salt, s.cfg.HashIterations)
		if verr != nil {
			log.Printf("auth: user %q: %v", username, verr)
			return model.Principal{}, ErrInvalidCredentials
		}
		if !ok {
			return model.Principal{}, ErrInvalidCredentials
		}
		return model.Principal{ID: u.ID, Username: u.Username, Role: model.RoleUser}, nil
	case errors.Is(err, repository.ErrUserNotFound):
		// fall through to admins
	default:
		return model.Principal{}, err
	}

	a, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return model.Principal{}, ErrInvalidCredentials
		}
		return model.Principal{}, err
	}
	ok, verr := utils.VerifyPassword(password, a.PasswordHash, a.Salt, s.cfg.HashIterations)
	if verr != nil {
		log.Printf("auth: admin %q: %v", username, verr)
		return model.Principal{}, ErrInvalidCredentials
	}
	if !ok {
		return model.Principal{}, ErrInvalidCredentials
	}
	role := model.RoleSystem
	if a.Type == model.AdminTheatre {
		role = model.RoleTheatre
	}
	return model.Principal{ID: a.ID, Username: a.Username, Role: role, TheatreID: a.TheatreID}, nil
}

// SessionToken issues a signed token for the principal so front-ends
// can carry the session without process-global state.
func (s *IdentityService) SessionToken(p model.Principal) (utils.SessionToken, error) {
	return utils.NewSessionToken(s.cfg.SessionSecret, p, s.cfg.SessionTTLMin)
}

// ParseSession verifies a session token and returns its principal.
func (s *IdentityService) ParseSession(token string) (model.Principal, error) {
	return utils.ParseSessionToken(s.cfg.SessionSecret, token)
}

// ListUsers returns all user accounts.
func (s *IdentityService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// ListBannedUsers returns only banned accounts.
func (s *IdentityService) ListBannedUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	banned := users[:0:0]
	for _, u := range users {
		if u.Banned() {
			banned = append(banned, u)
		}
	}
	return banned, nil
}

// FindUserByEmail returns the user with the given email, or
// repository.ErrUserNotFound.
func (s *IdentityService) FindUserByEmail(ctx context.Context, email string) (model.User, error) {
	return s.users.FindByEmail(ctx, email)
}

// BanUserByEmail marks the account banned. Banning an already banned
// account is a no-op success.
func (s *IdentityService) BanUserByEmail(ctx context.Context, email string) error {
	return s.setStatusByEmail(ctx, email, model.StatusBanned)
}

// UnbanUserByEmail restores a banned account to active.
func (s *IdentityService) UnbanUserByEmail(ctx context.Context, email string) error {
	return s.setStatusByEmail(ctx, email, model.StatusActive)
}

func (s *IdentityService) setStatusByEmail(ctx context.Context, email, status string) error {
	return s.store.WithLock(func() error {
		u, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		u.Status = status
		return s.users.Update(ctx, u)
	})
}

// ModifyUser patches the given fields of a user account. Nil pointers
// leave fields unchanged. Username and email uniqueness is re-checked
// against all other records; the password is re-hashed with a fresh
// salt only when a new one is supplied.
func (s *IdentityService) ModifyUser(ctx context.Context, id uint64, username, password, email *string) error {
	return s.store.WithLock(func() error {
		users, err := s.users.List(ctx)
		if err != nil {
			return err
		}
		var target *model.User
		for i := range users {
			if users[i].ID == id {
				target = &users[i]
				break
			}
		}
		if target == nil {
			return repository.ErrUserNotFound
		}
		if username != nil {
			if *username == "" {
				return ErrEmptyValue
			}
			for _, other := range users {
				if other.ID != id && other.Username == *username {
					return repository.ErrUsernameExists
				}
			}
			target.Username = *username
		}
		if email != nil {
			if *email == "" {
				return ErrEmptyValue
			}
			for _, other := range users {
				if other.ID != id && other.Email == *email {
					return repository.ErrEmailExists
				}
			}
			target.Email = *email
		}
		if password != nil {
			if *password == "" {
				return ErrEmptyValue
			}
			hash, salt, err := utils.HashPassword(*password, "", s.cfg.HashIterations)
			if err != nil {
				return err
			}
			target.PasswordHash = hash
			target.Salt = salt
		}
		return s.users.Update(ctx, *target)
	})
}

// DeleteUser removes the account and cascades to its bookings: every
// booking is deleted and its seats restored to the owning showing
// (showings that no longer exist are skipped).
func (s *IdentityService) DeleteUser(ctx context.Context, id uint64) error {
	return s.store.WithLock(func() error {
		if _, err := s.users.GetByID(ctx, id); err != nil {
			return err
		}
		removed, err := s.bookings.DeleteByUser(ctx, id)
		if err != nil {
			return err
		}
		for _, b := range removed {
			showing, err := s.showings.GetByID(ctx, b.ShowingID)
			if errors.Is(err, repository.ErrShowingNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			showing.AvailableSeats += b.SeatsBooked
			if err := s.showings.Update(ctx, showing); err != nil {
				return err
			}
		}
		return s.users.Delete(ctx, id)
	})
}

// ListTheatreAdmins returns all theatre-type admin accounts.
func (s *IdentityService) ListTheatreAdmins(ctx context.Context) ([]model.Admin, error) {
	return s.admins.ListTheatreAdmins(ctx)
}

// CreateTheatreAdmin creates a theatre admin account. The username
// must be unique across all admins.
func (s *IdentityService) CreateTheatreAdmin(ctx context.Context, username, password string, theatreID uint64) (uint64, error) {
	if username == "" || password == "" {
		return 0, ErrEmptyValue
	}
	var id uint64
	err := s.store.WithLock(func() error {
		if _, err := s.admins.GetByUsername(ctx, username); err == nil {
			return repository.ErrUsernameExists
		} else if !errors.Is(err, repository.ErrAdminNotFound) {
			return err
		}
		hash, salt, err := utils.HashPassword(password, "", s.cfg.HashIterations)
		if err != nil {
			return err
		}
		a := model.Admin{
			Username:     username,
			PasswordHash: hash,
			Salt:         salt,
			Type:         model.AdminTheatre,
			TheatreID:    theatreID,
		}
		if err := s.admins.Create(ctx, &a); err != nil {
			return err
		}
		id = a.ID
		return nil
	})
	return id, err
}

// ModifyTheatreAdmin patches the given fields of a theatre admin.
// Same optional-field contract as ModifyUser. System admin accounts
// cannot be modified through this operation.
func (s *IdentityService) ModifyTheatreAdmin(ctx context.Context, id uint64, username, password *string, theatreID *uint64) error {
	return s.store.WithLock(func() error {
		admins, err := s.admins.List(ctx)
		if err != nil {
			return err
		}
		var target *model.Admin
		for i := range admins {
			if admins[i].ID == id && admins[i].Type == model.AdminTheatre {
				target = &admins[i]
				break
			}
		}
		if target == nil {
			return repository.ErrAdminNotFound
		}
		if username != nil {
			if *username == "" {
				return ErrEmptyValue
			}
			for _, other := range admins {
				if other.ID != id && other.Username == *username {
					return repository.ErrUsernameExists
				}
			}
			target.Username = *username
		}
		if password != nil {
			if *password == "" {
				return ErrEmptyValue
			}
			hash, salt, err := utils.HashPassword(*password, "", s.cfg.HashIterations)
			if err != nil {
				return err
			}
			target.PasswordHash = hash
			target.Salt = salt
		}
		if theatreID != nil {
			target.TheatreID = *theatreID
		}
		return s.admins.Update(ctx, *target)
	})
}

// DeleteTheatreAdmin removes a theatre admin account. System admins
// cannot be deleted through this operation.
func (s *IdentityService) DeleteTheatreAdmin(ctx context.Context, id uint64) error {
	return s.store.WithLock(func() error {
		a, err := s.admins.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if a.Type != model.AdminTheatre {
			return repository.ErrAdminNotFound
		}
		return s.admins.Delete(ctx, id)
	})
}
