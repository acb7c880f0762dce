package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rolandschnurr/dfq-converter/internal/core"
)

const sessionCookie = "dfq_session"

// sessionStore keeps login sessions in memory. Sessions do not survive a
// restart; users simply log in again.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]session
	ttl      time.Duration
}

type session struct {
	username string
	expires  time.Time
}

func newSessionStore(ttl time.Duration) *sessionStore {
	st := &sessionStore{
		sessions: make(map[string]session),
		ttl:      ttl,
	}
	go st.cleanup()
	return st
}

// create issues a new session token for username.
func (st *sessionStore) create(username string) string {
	token := uuid.New().String()
	st.mu.Lock()
	st.sessions[token] = session{
		username: username,
		expires:  time.Now().Add(st.ttl),
	}
	st.mu.Unlock()
	return token
}

// resolve returns the username for a token, or "" if unknown or expired.
func (st *sessionStore) resolve(token string) string {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[token]
	if !ok {
		return ""
	}
	if time.Now().After(sess.expires) {
		delete(st.sessions, token)
		return ""
	}
	return sess.username
}

// revoke removes a session token.
func (st *sessionStore) revoke(token string) {
	st.mu.Lock()
	delete(st.sessions, token)
	st.mu.Unlock()
}

// cleanup drops expired sessions every few minutes.
func (st *sessionStore) cleanup() {
	for {
		time.Sleep(5 * time.Minute)
		now := time.Now()
		st.mu.Lock()
		for token, sess := range st.sessions {
			if now.After(sess.expires) {
				delete(st.sessions, token)
			}
		}
		st.mu.Unlock()
	}
}

// withSession resolves the session cookie and, when valid, attaches the
// username to the request context. It never rejects a request; conversion
// works without an account.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			if username := s.sessions.resolve(cookie.Value); username != "" {
				r = r.WithContext(core.ContextWithUsername(r.Context(), username))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// setSessionCookie writes the session cookie for a fresh login.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessions.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
