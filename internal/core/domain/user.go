package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of account kinds. It is fixed at signup.
type Role string

const (
	RoleActor    Role = "actor"
	RoleDirector Role = "director"
)

// ParseRole converts raw input into a Role, rejecting anything outside the set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleActor, RoleDirector:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

func (r Role) String() string { return string(r) }

// User is the profile record persisted at signup, keyed by the identity the
// auth provider issued.
type User struct {
	ID            string    `json:"id" bson:"_id"`
	Email         string    `json:"email" bson:"email"`
	Role          Role      `json:"role" bson:"role"`
	ContactNumber string    `json:"contact_number" bson:"contact_number"`
	Age           int       `json:"age" bson:"age"`
	JoinDate      time.Time `json:"join_date" bson:"join_date"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}
