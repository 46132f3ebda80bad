package models

import "time"

// Role distinguishes the bootstrap administrator from field inspectors.
// Both can run every inspection flow today; the split exists so account
// management endpoints can be restricted later.
type Role string

const (
	RoleInspector Role = "inspector"
	RoleAdmin     Role = "admin"
)

// Inspector is a user of the system, keyed by national ID (cedula).
type Inspector struct {
	Cedula       string    `json:"cedula"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is one authenticated login. The JWT carries the session ID;
// revoking the session invalidates the token before its expiry.
type Session struct {
	ID          string    `json:"id"`
	InspectorID string    `json:"inspector_id"`
	Device      string    `json:"device,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
