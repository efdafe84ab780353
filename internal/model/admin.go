package model

// Admin account types as stored in the `admins` table. A system admin
// manages accounts through the CLI; a theatre admin manages showings
// and bookings for a single theatre.
const (
	AdminSystem  = "system"
	AdminTheatre = "theatre"
)

// Admin represents an administrator record as stored in the `admins`
// table. Theatre admins carry the identifier of the theatre they
// administer; for system admins TheatreID is zero and the column is
// stored blank.
//
// Fields:
//  ID           – primary key identifier of the admin.
//  Username     – login name, unique across admins.
//  PasswordHash – hex digest produced by the credential hasher.
//  Salt         – hex-encoded random salt used for the digest.
//  Type         – admin type (system|theatre).
//  TheatreID    – theatre the admin manages (theatre admins only).
type Admin struct {
	ID           uint64 // admins.admin_id
	Username     string // admins.username
	PasswordHash string // admins.password_hash
	Salt         string // admins.salt
	Type         string // admins.type
	TheatreID    uint64 // admins.theatre_id (0 for system admins)
}
