package utils // package utils provides helpers for session token creation

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionToken represents a signed HS256 JWT tied to one gateway session
// along with its expiry.  The token is handed to the browser after login
// and carried in the Authorization header on every flow request.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs a JWT for a gateway session.  The
// claims carry the session id (sid), the upstream user id (sub), the
// expiration (exp) and issued-at (iat) timestamps.  The TTL should match
// the session store's idle TTL so tokens and sessions expire together.
func NewSessionToken(secret, sessionID, userID string, ttlMin int) (SessionToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sid": sessionID,
		"sub": userID,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}
