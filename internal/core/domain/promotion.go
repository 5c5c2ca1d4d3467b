package domain

import "time"

const (
	// TimeLayout is the wall-clock format of a promotion's event time.
	TimeLayout = "15:04"
	// TicketInfoUnspecified is stored when a promotion omits ticket details.
	TicketInfoUnspecified = "Not specified"
)

// Promotion is a public event announcement posted by a director.
type Promotion struct {
	ID          string    `json:"id" bson:"_id"`
	PostedByID  string    `json:"posted_by_id" bson:"posted_by_id"`
	PostedBy    string    `json:"posted_by" bson:"posted_by"`
	EventTitle  string    `json:"event_title" bson:"event_title"`
	EventType   string    `json:"event_type" bson:"event_type"`
	Description string    `json:"description" bson:"description"`
	Venue       string    `json:"venue" bson:"venue"`
	EventDate   string    `json:"event_date" bson:"event_date"`
	EventTime   string    `json:"event_time" bson:"event_time"`
	TicketInfo  string    `json:"ticket_info" bson:"ticket_info"`
	ContactInfo string    `json:"contact_info" bson:"contact_info"`
	PostedDate  time.Time `json:"posted_date" bson:"posted_date"`
}
