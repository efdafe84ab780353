package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pvc-cinemas/pvc/internal/model"
)

// ErrInvalidSession indicates a session token that failed to parse or
// verify, including expiry.
var ErrInvalidSession = errors.New("invalid session token")

// SessionToken is a signed HS256 token carrying an authenticated
// principal. Front-ends hold one of these between operations instead
// of a process-global "current user" variable; the core never reads
// ambient session state.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewSessionToken signs a session token for the principal. Claims:
// subject (sub), username (name), role, theatre id (tid, theatre
// admins only), expiration (exp) and issued at (iat).
func NewSessionToken(secret string, p model.Principal, ttlMin int) (SessionToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  p.ID,
		"name": p.Username,
		"role": p.Role,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	if p.Role == model.RoleTheatre {
		claims["tid"] = p.TheatreID
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies the token signature and expiry and
// reconstructs the principal it carries.
func ParseSessionToken(secret, token string) (model.Principal, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidSession
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return model.Principal{}, ErrInvalidSession
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return model.Principal{}, ErrInvalidSession
	}
	p := model.Principal{}
	if sub, ok := claims["sub"].(float64); ok {
		p.ID = uint64(sub)
	}
	if name, ok := claims["name"].(string); ok {
		p.Username = name
	}
	if role, ok := claims["role"].(string); ok {
		p.Role = role
	}
	if tid, ok := claims["tid"].(float64); ok {
		p.TheatreID = uint64(tid)
	}
	if p.ID == 0 || p.Role == "" {
		return model.Principal{}, ErrInvalidSession
	}
	return p, nil
}
