package utils // package utils provides helper functions for token issuing and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by ParseAccessToken for any token that
// cannot be accepted: bad signature, wrong algorithm, malformed
// payload or elapsed expiry. Callers do not need to distinguish the
// cases; re-login is the only renewal path.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken represents a signed HS256 bearer token along with its
// expiry. The Token field contains the serialized JWT string; Exp is
// the UTC expiration time. There is no refresh mechanism and no
// server-side revocation, so expiry is the only way a token dies
// short of rotating the signing secret.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// NewAccessToken builds and signs an HS256 JWT for a user. The claims
// are the standard subject (sub), expiration (exp) and issued-at
// (iat); ttlMin controls the absolute lifetime from issuance.
func NewAccessToken(secret string, userID uint64, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies signature and expiry of a serialized token
// and returns the subject user id. Verification is purely
// cryptographic: it does not check that the user still exists.
func ParseAccessToken(secret, raw string) (uint64, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	// Numeric JSON values decode as float64.
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, ErrInvalidToken
	}
	return uint64(sub), nil
}
