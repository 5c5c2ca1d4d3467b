package domain

import "time"

// Portfolio is an actor's profile summary. One per actor, keyed by owner.
type Portfolio struct {
	OwnerID    string    `json:"owner_id" bson:"_id"`
	Title      string    `json:"title" bson:"title"`
	Bio        string    `json:"bio" bson:"bio"`
	Experience string    `json:"experience,omitempty" bson:"experience,omitempty"`
	Skills     string    `json:"skills" bson:"skills"`
	SavedDate  time.Time `json:"saved_date" bson:"saved_date"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// PortfolioSnapshot is the copy of a portfolio embedded in an application.
type PortfolioSnapshot struct {
	Title      string    `json:"title" bson:"title"`
	Bio        string    `json:"bio" bson:"bio"`
	Experience string    `json:"experience,omitempty" bson:"experience,omitempty"`
	Skills     string    `json:"skills" bson:"skills"`
	SavedDate  time.Time `json:"saved_date" bson:"saved_date"`
}

// Snapshot copies the fields an application carries.
func (p *Portfolio) Snapshot() PortfolioSnapshot {
	return PortfolioSnapshot{
		Title:      p.Title,
		Bio:        p.Bio,
		Experience: p.Experience,
		Skills:     p.Skills,
		SavedDate:  p.SavedDate,
	}
}
