package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ModeSigned = "signed"
	ModeOpaque = "opaque"

	// AdminSubject is the only identity the gate knows about.
	AdminSubject = "admin"

	fallbackSecret = "fallback-secret"
)

// TokenIssuer creates session tokens and decides whether a presented token is acceptable.
type TokenIssuer interface {
	Issue() (string, error)
	Verify(token string) bool
}

// OpaqueTokens reproduces the legacy token format: base64("admin:<unix millis>:<secret>").
// Verify accepts any non-empty value; the token carries nothing that is checked.
type OpaqueTokens struct {
	secret string
	now    func() time.Time
}

func NewOpaqueTokens(secret string) *OpaqueTokens {
	if secret == "" {
		secret = fallbackSecret
	}
	return &OpaqueTokens{secret: secret, now: time.Now}
}

func (o *OpaqueTokens) Issue() (string, error) {
	raw := fmt.Sprintf("%s:%d:%s", AdminSubject, o.now().UnixMilli(), o.secret)
	return base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

func (o *OpaqueTokens) Verify(token string) bool {
	return token != ""
}

// SignedTokens issues HS256 JWTs for the admin subject.
type SignedTokens struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewSignedTokens uses secret as the HMAC key. With an empty secret a random key is generated,
// so tokens stop verifying when the process restarts.
func NewSignedTokens(secret string, ttl time.Duration) (*SignedTokens, error) {
	key := []byte(secret)
	if secret == "" {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate signing key: %w", err)
		}
		authLogger.Warn().Msg("JWT secret not set, using a random per-process key")
	}

	return &SignedTokens{key: key, ttl: ttl, now: time.Now}, nil
}

func (s *SignedTokens) Issue() (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   AdminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.NewString(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

func (s *SignedTokens) Verify(token string) bool {
	_, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(*jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(AdminSubject),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		authLogger.Debug().Err(err).Msg("Rejected session token")
		return false
	}
	return true
}
