package auth

import (
	"encoding/json"
	"net/http"

	"github.com/debemdeboas/inkwell/internal/config"
	"github.com/debemdeboas/inkwell/internal/util"
	"github.com/rs/zerolog"
)

type loginRequest struct {
	Password string `json:"password"`
}

type authCheckResponse struct {
	Authenticated bool `json:"authenticated"`
}

// LoginHandler exchanges the admin password for a session cookie.
func LoginHandler(g *Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := zerolog.Ctx(r.Context())

		var req loginRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
			l.Debug().Err(err).Msg("Malformed login request")
			util.WriteError(w, http.StatusBadRequest, config.ErrMsgInvalidBody)
			return
		}

		if !g.VerifyCredential(req.Password) {
			l.Warn().Msg("Login failed")
			util.WriteError(w, http.StatusUnauthorized, config.ErrMsgInvalidPassword)
			return
		}

		token, err := g.IssueToken()
		if err != nil {
			l.Error().Err(err).Msg("Failed to issue session token")
			util.WriteError(w, http.StatusInternalServerError, config.ErrMsgServerError)
			return
		}

		g.SetSessionCookie(w, r, token)
		l.Info().Msg("Admin logged in")
		util.WriteJSON(w, http.StatusOK, util.SuccessResponse{Success: true})
	}
}

func LogoutHandler(g *Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g.ClearSessionCookie(w, r)
		util.WriteJSON(w, http.StatusOK, util.SuccessResponse{Success: true})
	}
}

func AuthCheckHandler(g *Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !g.IsAuthenticated(r) {
			util.WriteError(w, http.StatusUnauthorized, config.ErrMsgNotAuthenticated)
			return
		}
		util.WriteJSON(w, http.StatusOK, authCheckResponse{Authenticated: true})
	}
}
