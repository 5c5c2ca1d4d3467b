package domain

import "time"

// DateLayout is the calendar-date format used for deadlines and event dates.
const DateLayout = "2006-01-02"

// Audition is a casting call posted by a director. Immutable after creation.
type Audition struct {
	ID              string    `json:"id" bson:"_id"`
	DirectorID      string    `json:"director_id" bson:"director_id"`
	ProjectTitle    string    `json:"project_title" bson:"project_title"`
	RoleTitle       string    `json:"role_title" bson:"role_title"`
	RoleDescription string    `json:"role_description" bson:"role_description"`
	Location        string    `json:"location" bson:"location"`
	Deadline        time.Time `json:"deadline" bson:"deadline"`
	PostedDate      time.Time `json:"posted_date" bson:"posted_date"`
}
