package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/debemdeboas/inkwell/internal/config"
)

func TestLoginHandler(t *testing.T) {
	g := newTestGate(t, Options{Password: "hunter2", Secret: "jwt"})
	handler := LoginHandler(g)

	testCases := []struct {
		name         string
		body         string
		wantStatus   int
		wantBody     string
		expectCookie bool
	}{
		{name: "Correct password", body: `{"password":"hunter2"}`, wantStatus: http.StatusOK, wantBody: `{"success":true}`, expectCookie: true},
		{name: "Wrong password", body: `{"password":"nope"}`, wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Invalid password"}`},
		{name: "Missing password", body: `{}`, wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Invalid password"}`},
		{name: "Malformed JSON", body: `{"password":`, wantStatus: http.StatusBadRequest, wantBody: `{"error":"Invalid request body"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			if w.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, w.Code)
			}
			if body := strings.TrimSpace(w.Body.String()); body != tc.wantBody {
				t.Errorf("Expected body %s, got %s", tc.wantBody, body)
			}
			if ct := w.Header().Get(config.HCType); ct != config.CTypeJSON {
				t.Errorf("Expected JSON content type, got %q", ct)
			}

			var cookie *http.Cookie
			for _, c := range w.Result().Cookies() {
				if c.Name == config.CookieAdminToken {
					cookie = c
				}
			}
			if tc.expectCookie {
				if cookie == nil || cookie.Value == "" {
					t.Fatal("Expected a non-empty session cookie")
				}
				if !g.IsAuthenticated(requestWithCookie(cookie.Value)) {
					t.Error("Expected the issued cookie to authenticate")
				}
			} else if cookie != nil {
				t.Errorf("Expected no session cookie, got %+v", cookie)
			}
		})
	}
}

func TestAuthCheckHandler(t *testing.T) {
	g := newTestGate(t, Options{Password: "hunter2", Secret: "jwt"})
	token, _ := g.IssueToken()
	handler := AuthCheckHandler(g)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithCookie(token))
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != `{"authenticated":true}` {
		t.Errorf("Expected 200 authenticated, got %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithCookie(""))
	if w.Code != http.StatusUnauthorized || strings.TrimSpace(w.Body.String()) != `{"error":"Not authenticated"}` {
		t.Errorf("Expected 401 not authenticated, got %d %s", w.Code, w.Body.String())
	}
}

func TestLogoutHandler(t *testing.T) {
	g := newTestGate(t, Options{Password: "hunter2", Secret: "jwt"})

	w := httptest.NewRecorder()
	LogoutHandler(g).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/logout", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Errorf("Expected the session cookie to be cleared, got %+v", cookies)
	}
}
