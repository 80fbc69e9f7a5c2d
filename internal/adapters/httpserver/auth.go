package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/phenrril/kiddocorner/internal/usecase"
)

const (
	adminCookie      = "admin_token"
	oauthStateCookie = "oauth_state"
	googleUserInfo   = "https://www.googleapis.com/oauth2/v3/userinfo"
)

type ctxKey int

const adminKey ctxKey = iota

// AdminFrom returns the verified claims put on the context by requireAdmin.
func AdminFrom(ctx context.Context) *usecase.AdminClaims {
	c, _ := ctx.Value(adminKey).(*usecase.AdminClaims)
	return c
}

func (s *Server) readAdminToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	c, err := r.Cookie(adminCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.Auth.Verify(s.readAdminToken(r))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorBody{"unauthorized"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), adminKey, claims)))
	})
}

func (s *Server) setAdminCookie(w http.ResponseWriter, tok string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookie,
		Value:    tok,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	tok, err := s.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Warn().Str("email", req.Email).Msg("admin login rejected")
		writeError(w, r, err)
		return
	}
	s.setAdminCookie(w, tok, int((6 * time.Hour).Seconds()))
	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}

func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	s.setAdminCookie(w, "", -1)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if s.OAuth == nil {
		writeJSON(w, http.StatusNotFound, errorBody{"google login is not configured"})
		return
	}
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Value: state, Path: "/", MaxAge: 300, HttpOnly: true, Secure: s.SecureCookies})
	http.Redirect(w, r, s.OAuth.AuthCodeURL(state, oauth2.AccessTypeOnline), http.StatusFound)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if s.OAuth == nil {
		writeJSON(w, http.StatusNotFound, errorBody{"google login is not configured"})
		return
	}
	q := r.URL.Query()
	c, _ := r.Cookie(oauthStateCookie)
	if c == nil || c.Value == "" || c.Value != q.Get("state") {
		writeJSON(w, http.StatusBadRequest, errorBody{"invalid oauth state"})
		return
	}
	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Value: "", Path: "/", MaxAge: -1})

	tok, err := s.OAuth.Exchange(r.Context(), q.Get("code"))
	if err != nil {
		log.Error().Err(err).Msg("oauth exchange")
		writeJSON(w, http.StatusBadRequest, errorBody{"oauth exchange failed"})
		return
	}
	resp, err := s.OAuth.Client(r.Context(), tok).Get(googleUserInfo)
	if err != nil {
		log.Error().Err(err).Msg("userinfo")
		writeJSON(w, http.StatusBadGateway, errorBody{"could not read google profile"})
		return
	}
	defer resp.Body.Close()
	var info struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}
	if resp.StatusCode != http.StatusOK || json.NewDecoder(resp.Body).Decode(&info) != nil || info.Email == "" {
		writeJSON(w, http.StatusBadGateway, errorBody{"could not read google profile"})
		return
	}
	if !info.EmailVerified {
		writeJSON(w, http.StatusUnauthorized, errorBody{"unauthorized"})
		return
	}
	adminTok, err := s.Auth.LoginVerifiedEmail(r.Context(), info.Email)
	if err != nil {
		log.Warn().Str("email", info.Email).Msg("google login is not an admin")
		writeError(w, r, err)
		return
	}
	s.setAdminCookie(w, adminTok, int((6 * time.Hour).Seconds()))
	http.Redirect(w, r, "/admin", http.StatusFound)
}
