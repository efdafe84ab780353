// Package repository provides typed access to the tabular store, one
// repository per collection. Sentinel errors defined here let the
// service layer and the CLI distinguish failure kinds with errors.Is
// while the store itself stays generic.
package repository

import "errors"

// ErrUserNotFound is returned when no user matches the given
// identifier, username or email.
var ErrUserNotFound = errors.New("user not found")

// ErrAdminNotFound is returned when no admin matches the given
// identifier or username.
var ErrAdminNotFound = errors.New("admin not found")

// ErrShowingNotFound is returned when a showing identifier does not
// exist in the movies_showings collection.
var ErrShowingNotFound = errors.New("showing not found")

// ErrBookingNotFound is returned when a booking identifier does not
// exist, or when it exists but belongs to a different user; ownership
// failures are deliberately indistinguishable from absence.
var ErrBookingNotFound = errors.New("booking not found")

// ErrUsernameExists signals a username collision on registration or
// account modification.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists signals an email collision on registration or
// account modification.
var ErrEmailExists = errors.New("email already exists")
