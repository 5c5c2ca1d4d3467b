package domain

import (
	"errors"
	"time"
)

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusSelected ApplicationStatus = "selected"
	StatusRejected ApplicationStatus = "rejected"
)

// validTransitions defines the review state machine. Decisions are final.
var validTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPending: {StatusSelected, StatusRejected},
}

var ErrInvalidTransition = errors.New("invalid status transition")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Application is an actor's request to be considered for an audition. The
// audition summary and the portfolio are copied at apply time.
type Application struct {
	ID             string            `json:"id" bson:"_id"`
	AuditionID     string            `json:"audition_id" bson:"audition_id"`
	ProjectTitle   string            `json:"project_title" bson:"project_title"`
	RoleTitle      string            `json:"role_title" bson:"role_title"`
	Location       string            `json:"location" bson:"location"`
	ApplicantID    string            `json:"applicant_id" bson:"applicant_id"`
	ApplicantEmail string            `json:"applicant_email" bson:"applicant_email"`
	Portfolio      PortfolioSnapshot `json:"portfolio" bson:"portfolio"`
	AppliedDate    time.Time         `json:"applied_date" bson:"applied_date"`
	Status         ApplicationStatus `json:"status" bson:"status"`
	DecidedAt      *time.Time        `json:"decided_at,omitempty" bson:"decided_at,omitempty"`
}
