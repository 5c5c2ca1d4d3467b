package handler

import (
	"bytes"
	"encoding/json"
	"time"
)

// --- Requests ---

// ageValue accepts the age as either a JSON string or a JSON number.
type ageValue string

func (a *ageValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = ageValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = ageValue(n.String())
	return nil
}

type signupRequest struct {
	Email         string   `json:"email"`
	Password      string   `json:"password"`
	ContactNumber string   `json:"contact_number"`
	Age           ageValue `json:"age" swaggertype:"string"`
	Role          string   `json:"role" enums:"actor,director"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type portfolioRequest struct {
	Title      string `json:"title"`
	Bio        string `json:"bio"`
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
}

type auditionRequest struct {
	ProjectTitle    string `json:"project_title"`
	RoleTitle       string `json:"role_title"`
	RoleDescription string `json:"role_description"`
	Location        string `json:"location"`
	Deadline        string `json:"deadline" example:"2025-01-01"`
}

type promotionRequest struct {
	EventTitle  string `json:"event_title"`
	EventType   string `json:"event_type"`
	Description string `json:"description"`
	Venue       string `json:"venue"`
	EventDate   string `json:"event_date" example:"2025-02-14"`
	EventTime   string `json:"event_time" example:"19:30"`
	TicketInfo  string `json:"ticket_info"`
	ContactInfo string `json:"contact_info"`
}

// --- Responses ---

type messageResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	ContactNumber   string    `json:"contact_number,omitempty"`
	Age             int       `json:"age,omitempty"`
	JoinDate        time.Time `json:"join_date"`
	JoinDateDisplay string    `json:"join_date_display"`
}

type authResponse struct {
	Message         string       `json:"message"`
	Token           string       `json:"token"`
	ExpiresAt       time.Time    `json:"expires_at"`
	RedirectTo      string       `json:"redirect_to"`
	RedirectAfterMS int64        `json:"redirect_after_ms"`
	User            userResponse `json:"user"`
}

type sessionResponse struct {
	UserID          string    `json:"user_id"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	JoinDate        time.Time `json:"join_date"`
	JoinDateDisplay string    `json:"join_date_display"`
	ExpiresAt       time.Time `json:"expires_at"`
}

type portfolioResponse struct {
	Title            string    `json:"title"`
	Bio              string    `json:"bio"`
	Experience       string    `json:"experience,omitempty"`
	Skills           string    `json:"skills"`
	SavedDate        time.Time `json:"saved_date"`
	SavedDateDisplay string    `json:"saved_date_display"`
}

type auditionResponse struct {
	ID                string    `json:"id"`
	ProjectTitle      string    `json:"project_title"`
	RoleTitle         string    `json:"role_title"`
	RoleDescription   string    `json:"role_description"`
	Location          string    `json:"location"`
	Deadline          string    `json:"deadline"`
	DeadlineDisplay   string    `json:"deadline_display"`
	PostedDate        time.Time `json:"posted_date"`
	PostedDateDisplay string    `json:"posted_date_display"`
	ApplicationCount  *int64    `json:"application_count,omitempty"`
}

type applicationResponse struct {
	ID                 string            `json:"id"`
	AuditionID         string            `json:"audition_id"`
	ProjectTitle       string            `json:"project_title"`
	RoleTitle          string            `json:"role_title"`
	Location           string            `json:"location"`
	ApplicantEmail     string            `json:"applicant_email"`
	Portfolio          portfolioResponse `json:"portfolio"`
	Status             string            `json:"status"`
	AppliedDate        time.Time         `json:"applied_date"`
	AppliedDateDisplay string            `json:"applied_date_display"`
	DecidedAt          *time.Time        `json:"decided_at,omitempty"`
}

type reviewGroupResponse struct {
	Audition     auditionResponse      `json:"audition"`
	Applications []applicationResponse `json:"applications"`
}

type promotionResponse struct {
	ID               string    `json:"id"`
	EventTitle       string    `json:"event_title"`
	EventType        string    `json:"event_type"`
	Description      string    `json:"description"`
	Venue            string    `json:"venue"`
	EventDate        string    `json:"event_date"`
	EventDateDisplay string    `json:"event_date_display"`
	EventTime        string    `json:"event_time"`
	EventTimeDisplay string    `json:"event_time_display"`
	TicketInfo       string    `json:"ticket_info"`
	ContactInfo      string    `json:"contact_info"`
	PostedBy         string    `json:"posted_by"`
	PostedDate       time.Time `json:"posted_date"`
}

type promotionListResponse struct {
	Promotions []promotionResponse `json:"promotions"`
	CanPost    bool                `json:"can_post"`
	Notice     string              `json:"notice"`
}

type actorDashboardResponse struct {
	Portfolio          *portfolioResponse    `json:"portfolio"`
	AvailableAuditions []auditionResponse    `json:"available_auditions"`
	Applications       []applicationResponse `json:"applications"`
}

type directorDashboardResponse struct {
	Posted []auditionResponse    `json:"posted"`
	Review []reviewGroupResponse `json:"review"`
}

type dashboardResponse struct {
	Role     string                     `json:"role"`
	Greeting string                     `json:"greeting"`
	User     sessionResponse            `json:"user"`
	Actor    *actorDashboardResponse    `json:"actor,omitempty"`
	Director *directorDashboardResponse `json:"director,omitempty"`
}

// int64Ptr is used for optional counters in responses.
func int64Ptr(n int64) *int64 {
	return &n
}
