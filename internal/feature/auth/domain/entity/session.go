package entity

import "time"

// Session is the per-user authentication context created at login.
// It carries the last-activity timestamp used for the idle timeout.
type Session struct {
	ID           string    `json:"id"`             // Random session identifier (UUID)
	Username     string    `json:"username"`       // Signed-in demo user
	CreatedAt    time.Time `json:"created_at"`     // Login time
	LastActiveAt time.Time `json:"last_active_at"` // Last authenticated request
}

// IdleFor returns how long the session has been inactive at now.
func (s *Session) IdleFor(now time.Time) time.Duration {
	return now.Sub(s.LastActiveAt)
}

// IsIdleExpired returns true if the inactivity gap exceeds timeout.
// A gap exactly equal to timeout is still valid.
func (s *Session) IsIdleExpired(now time.Time, timeout time.Duration) bool {
	return s.IdleFor(now) > timeout
}

// Touch records activity at now.
func (s *Session) Touch(now time.Time) {
	s.LastActiveAt = now
}
