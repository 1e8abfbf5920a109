package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// Verification failures are collapsed into three sentinel errors so the auth
// gate can map each one to its own 401 message without inspecting library
// error strings.
var (
	ErrTokenExpired     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenMalformed   = errors.New("malformed token")
)

// Claims is the decoded payload of an access token: the identity the auth
// gate injects into the request context.  Tokens are ephemeral; nothing here
// is ever persisted.
type Claims struct {
	UserID uint64 // user_id claim
	Email  string // email claim
}

// IssueToken builds and signs an HS256 JWT for a user.  The claims mirror
// the wire format of the original service: iat, exp, user_id and email, with
// exp = iat + ttlSeconds.  Signing is CPU-bound and has no side effects.
func IssueToken(secret string, userID uint64, email string, ttlSeconds int) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(ttlSeconds) * time.Second).Unix(),
		"user_id": userID,
		"email":   email,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// VerifyToken parses a token string and checks its signature and expiry.
// It returns the embedded identity on success, or exactly one of
// ErrTokenExpired, ErrInvalidSignature or ErrTokenMalformed.  Tokens signed
// with a non-HMAC algorithm are rejected as having an invalid signature.
func VerifyToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSignature
		default:
			return Claims{}, ErrTokenMalformed
		}
	}
	if !tok.Valid {
		return Claims{}, ErrTokenMalformed
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenMalformed
	}
	var c Claims
	// JSON numbers decode as float64; tolerate both shapes for user_id.
	switch id := mc["user_id"].(type) {
	case float64:
		c.UserID = uint64(id)
	case uint64:
		c.UserID = id
	default:
		return Claims{}, ErrTokenMalformed
	}
	email, ok := mc["email"].(string)
	if !ok {
		return Claims{}, ErrTokenMalformed
	}
	c.Email = email
	return c, nil
}
