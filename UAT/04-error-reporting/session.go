// Package session holds state that tests commonly misspell or mistype.
package session

import "time"

// Session is a login session.
type Session struct {
	userID    int64
	expiresAt time.Time
	scopes    []string
}

// Start begins a session for userID lasting ttl from now.
func Start(userID int64, ttl time.Duration, scopes ...string) *Session {
	return &Session{userID: userID, expiresAt: time.Now().Add(ttl), scopes: scopes}
}

func (s *Session) extend(by time.Duration) time.Time {
	s.expiresAt = s.expiresAt.Add(by)

	return s.expiresAt
}
