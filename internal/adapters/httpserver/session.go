package httpserver

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

type sessionUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// The session cookie is sig.payload, both base64url, signed with the server
// session key. Garbage or a bad signature just means no session.
func (s *Server) readSession(r *http.Request) *sessionUser {
	c, err := r.Cookie("session")
	if err != nil {
		return nil
	}
	parts := strings.SplitN(c.Value, ".", 2)
	if len(parts) != 2 {
		return nil
	}
	sig, _ := base64.RawURLEncoding.DecodeString(parts[0])
	payload, _ := base64.RawURLEncoding.DecodeString(parts[1])
	h := hmac.New(sha256.New, s.sessionKey)
	h.Write(payload)
	if !hmac.Equal(sig, h.Sum(nil)) {
		return nil
	}
	var u sessionUser
	if err := json.Unmarshal(payload, &u); err != nil {
		return nil
	}
	return &u
}

func (s *Server) writeSession(w http.ResponseWriter, u sessionUser) {
	b, _ := json.Marshal(u)
	h := hmac.New(sha256.New, s.sessionKey)
	h.Write(b)
	sig := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	val := sig + "." + base64.RawURLEncoding.EncodeToString(b)
	http.SetCookie(w, &http.Cookie{Name: "session", Value: val, Path: "/", MaxAge: 60 * 60 * 24 * 30, HttpOnly: true})
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	u := s.readSession(r)
	if u == nil {
		writeJSON(w, 401, map[string]any{"error": "login required"})
		return false
	}
	if _, ok := s.adminAllowed[strings.ToLower(u.Email)]; !ok {
		writeJSON(w, 403, map[string]any{"error": "forbidden"})
		return false
	}
	return true
}

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil {
		writeJSON(w, 503, map[string]any{"error": "oauth not configured"})
		return
	}
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	state := base64.RawURLEncoding.EncodeToString(buf)
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", Value: state, Path: "/", MaxAge: 300, HttpOnly: true})
	http.Redirect(w, r, s.oauthCfg.AuthCodeURL(state), 302)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil {
		writeJSON(w, 503, map[string]any{"error": "oauth not configured"})
		return
	}
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		http.Error(w, "state", 400)
		return
	}
	tok, err := s.oauthCfg.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		log.Error().Err(err).Msg("oauth exchange")
		http.Error(w, "oauth", 502)
		return
	}
	client := s.oauthCfg.Client(r.Context(), tok)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		log.Error().Err(err).Msg("oauth userinfo")
		http.Error(w, "oauth", 502)
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var info struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(body, &info); err != nil || info.Email == "" {
		http.Error(w, "oauth", 502)
		return
	}
	s.writeSession(w, sessionUser{Email: info.Email, Name: info.Name})
	http.Redirect(w, r, "/", 302)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: "session", Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	writeJSON(w, 200, map[string]any{"status": "ok"})
}
