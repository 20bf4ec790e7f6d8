package model

import "time"

// SessionUser is the user record returned by the auth service.
type SessionUser struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"emailVerified"`
	Image         *string   `json:"image"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SessionInfo describes the session itself.
type SessionInfo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	IPAddress *string   `json:"ipAddress,omitempty"`
	UserAgent *string   `json:"userAgent,omitempty"`
}

// Session is an authenticated request's identity.
type Session struct {
	User    SessionUser `json:"user"`
	Session SessionInfo `json:"session"`
}

// Expired reports whether the session has passed its expiry. A zero expiry never expires.
func (s *Session) Expired(now time.Time) bool {
	return !s.Session.ExpiresAt.IsZero() && now.After(s.Session.ExpiresAt)
}
