package fanduel

import (
	"fanduel-client/internal/components/chrono"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// TokenTTL is how long an X-Auth-Token is trusted after it was issued.
const TokenTTL = time.Hour

type SessionState int

const (
	SessionUnauthenticated SessionState = iota
	SessionAuthenticating
	SessionAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case SessionAuthenticating:
		return "authenticating"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// credentials is an immutable snapshot of an established session.
type credentials struct {
	xAuthToken string
	identity   Identity
	issuedAt   time.Time
}

func (c credentials) headers() map[string]string {
	return map[string]string{
		"X-Auth-Token":  c.xAuthToken,
		"Authorization": "Basic " + c.identity.ApiClientId,
	}
}

// session is the single source of truth for whether the API may be called. Expiry is a
// deadline that is evaluated whenever validity is checked, there is no timer.
type session struct {
	mu            sync.RWMutex
	authenticated bool
	creds         credentials
	loggingIn     bool

	ttl   time.Duration
	clock chrono.TimeAPI
	login singleflight.Group
}

func newSession(clock chrono.TimeAPI, ttl time.Duration) *session {
	return &session{clock: clock, ttl: ttl}
}

func (s *session) validLocked() bool {
	if !s.authenticated {
		return false
	}
	return s.clock.Now().Before(s.creds.issuedAt.Add(s.ttl))
}

func (s *session) valid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.validLocked()
}

// snapshot returns the current credentials and whether they are still valid.
func (s *session) snapshot() (credentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds, s.validLocked()
}

func (s *session) state() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loggingIn {
		return SessionAuthenticating
	}
	if s.validLocked() {
		return SessionAuthenticated
	}
	return SessionUnauthenticated
}

func (s *session) setLoggingIn(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggingIn = v
}

// establish publishes a completed login, a session is never observable as
// authenticated without both a token and an identity.
func (s *session) establish(creds credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	s.authenticated = true
}

// invalidate clears the authenticated flag if the session still uses the given token, a
// rejection of a token that has already been replaced by a newer login is ignored.
func (s *session) invalidate(xAuthToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds.xAuthToken != xAuthToken {
		return
	}
	s.authenticated = false
}

func (s *session) expiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.issuedAt.Add(s.ttl)
}
