// Package auth implements the single-admin gate: password check, session tokens in the
// blog_admin_token cookie and the middleware protecting write routes.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/debemdeboas/inkwell/internal/config"
	"github.com/debemdeboas/inkwell/internal/util"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var ErrUnauthorized = errors.New("unauthorized")

type Options struct {
	Password      string
	Secret        string
	Mode          string
	SecureCookies bool
	TTL           time.Duration
	// BcryptCost of zero means bcrypt.DefaultCost.
	BcryptCost int
}

type Gate struct {
	passwordHash  []byte
	tokens        TokenIssuer
	secureCookies bool
	ttl           time.Duration
}

func NewGate(opts Options) (*Gate, error) {
	if opts.TTL <= 0 {
		opts.TTL = config.SessionMaxAge
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}

	g := &Gate{
		secureCookies: opts.SecureCookies,
		ttl:           opts.TTL,
	}

	if opts.Password == "" {
		authLogger.Warn().Msg("Admin password not set, every login will be rejected")
	} else {
		hash, err := bcrypt.GenerateFromPassword(prehash(opts.Password), opts.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
		g.passwordHash = hash
	}

	switch opts.Mode {
	case ModeSigned, "":
		tokens, err := NewSignedTokens(opts.Secret, opts.TTL)
		if err != nil {
			return nil, err
		}
		g.tokens = tokens
	case ModeOpaque:
		authLogger.Warn().Msg("Opaque session tokens accept any non-empty cookie")
		g.tokens = NewOpaqueTokens(opts.Secret)
	default:
		return nil, fmt.Errorf("unknown token mode %q", opts.Mode)
	}

	return g, nil
}

// prehash keeps passwords longer than bcrypt's 72 byte limit significant.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}

// VerifyCredential reports whether candidate equals the configured password. Always false when
// no password is configured.
func (g *Gate) VerifyCredential(candidate string) bool {
	if g.passwordHash == nil || candidate == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(g.passwordHash, prehash(candidate)) == nil
}

func (g *Gate) IssueToken() (string, error) {
	return g.tokens.Issue()
}

// Authenticate returns ErrUnauthorized unless the request carries an acceptable session cookie.
func (g *Gate) Authenticate(r *http.Request) error {
	cookie, err := r.Cookie(config.CookieAdminToken)
	if err != nil || cookie.Value == "" {
		return ErrUnauthorized
	}
	if !g.tokens.Verify(cookie.Value) {
		return ErrUnauthorized
	}
	return nil
}

func (g *Gate) IsAuthenticated(r *http.Request) bool {
	return g.Authenticate(r) == nil
}

func (g *Gate) SetSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.CookieAdminToken,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   r.TLS != nil || g.secureCookies,
		MaxAge:   int(g.ttl.Seconds()),
	})
}

func (g *Gate) ClearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.CookieAdminToken,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   r.TLS != nil || g.secureCookies,
		MaxAge:   -1,
	})
}

// RequireAdmin rejects unauthenticated requests with 401 and marks the context of the rest.
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.IsAuthenticated(r) {
			zerolog.Ctx(r.Context()).Warn().Str("path", r.URL.Path).Msg("Unauthorized access attempt")
			util.WriteError(w, http.StatusUnauthorized, config.ErrMsgNotAuthenticated)
			return
		}

		ctx := ContextWithAdmin(r.Context(), AdminSubject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
