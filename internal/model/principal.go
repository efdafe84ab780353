package model

// Principal roles returned by authentication.
const (
	RoleUser    = "user"
	RoleTheatre = "theatre"
	RoleSystem  = "system"
)

// Principal is an authenticated identity handed back to the UI layer.
// It replaces the original's process-global "current session" state:
// front-ends hold a Principal (or a session token encoding one) and
// pass identifiers into each operation explicitly.
//
// Fields:
//  ID        – user or admin identifier.
//  Username  – login name, for display.
//  Role      – user, theatre or system.
//  TheatreID – theatre scope (theatre admins only, else 0).
type Principal struct {
	ID        uint64
	Username  string
	Role      string
	TheatreID uint64
}
