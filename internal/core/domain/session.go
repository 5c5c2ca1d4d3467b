package domain

import "time"

// Session is the explicit per-request identity handed from the auth
// middleware to handlers and services.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	JoinDate  time.Time `json:"join_date"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsDirector and IsActor keep role checks in one place.
func (s *Session) IsDirector() bool { return s != nil && s.Role == RoleDirector }

func (s *Session) IsActor() bool { return s != nil && s.Role == RoleActor }
