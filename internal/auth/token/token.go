// Package token provides bearer token issuance and verification.
// Tokens are stateless: the user identity claim lives entirely in the signed
// token and nothing is persisted server-side.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

const accessTokenType = "access"

// Issuer creates a signed bearer token carrying a user identity claim.
type Issuer interface {
	Issue(userID uuid.UUID) (string, error)
}

// Verifier validates a bearer token and extracts its user identity claim.
type Verifier interface {
	Verify(raw string) (uuid.UUID, error)
}

// JWT issues and verifies HS256-signed JSON web tokens.
type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWT creates a JWT issuer/verifier with the given signing secret and
// access token lifetime.
func NewJWT(secret string, ttl time.Duration) *JWT {
	return &JWT{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs an access token binding to the given user ID with an expiry.
func (j *JWT) Issue(userID uuid.UUID) (string, error) {
	now := j.now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"type": accessTokenType,
		"iat":  now.Unix(),
		"exp":  now.Add(j.ttl).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

// Verify parses and validates a raw token and returns the user ID it binds to.
func (j *JWT) Verify(raw string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return j.secret, nil
	}, jwt.WithTimeFunc(j.now))
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	if tokenType, _ := claims["type"].(string); tokenType != accessTokenType {
		return uuid.Nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}
