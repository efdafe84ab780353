package model

// User status values as stored in the `users` table. A banned user
// keeps their record and bookings but can no longer authenticate.
const (
	StatusActive = "active"
	StatusBanned = "banned"
)

// User represents an application user record as stored in the
// `users` table. Passwords are never stored in plain text; only the
// salted digest and the salt that produced it are persisted.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name (case-sensitive exact match).
//  PasswordHash – hex digest produced by the credential hasher.
//  Salt         – hex-encoded random salt used for the digest.
//  Email        – unique email address.
//  Status       – account status (active|banned).
type User struct {
	ID           uint64 // users.user_id
	Username     string // users.username
	PasswordHash string // users.password_hash
	Salt         string // users.salt
	Email        string // users.email
	Status       string // users.status
}

// Banned reports whether the account is currently banned.
func (u User) Banned() bool { return u.Status == StatusBanned }
