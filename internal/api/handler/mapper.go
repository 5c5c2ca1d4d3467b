package handler

import (
	"time"

	"github.com/kalakar/casting-api/internal/core/domain"
	"github.com/kalakar/casting-api/internal/core/ports"
)

const (
	displayDateLayout = "2 January 2006"
	displayTimeLayout = "3:04 PM"
)

// formatDate renders a calendar date the way the dashboard shows it,
// e.g. "1 January 2025". The zero time renders as an empty string.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayDateLayout)
}

// formatDateString formats a stored YYYY-MM-DD value, falling back to the raw
// value when it does not parse.
func formatDateString(s string) string {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return s
	}
	return formatDate(t)
}

// formatTime converts a stored HH:MM value to 12-hour form, e.g. "7:30 PM".
func formatTime(s string) string {
	t, err := time.Parse(domain.TimeLayout, s)
	if err != nil {
		return s
	}
	return t.Format(displayTimeLayout)
}

// --- Service result → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:              u.ID,
		Email:           u.Email,
		Role:            u.Role.String(),
		ContactNumber:   u.ContactNumber,
		Age:             u.Age,
		JoinDate:        u.JoinDate,
		JoinDateDisplay: formatDate(u.JoinDate),
	}
}

func toAuthResponse(r *ports.AuthResult) authResponse {
	return authResponse{
		Message:         r.Message,
		Token:           r.Token,
		ExpiresAt:       r.Session.ExpiresAt,
		RedirectTo:      r.RedirectTo,
		RedirectAfterMS: r.RedirectAfter.Milliseconds(),
		User:            toUserResponse(r.User),
	}
}

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		UserID:          s.UserID,
		Email:           s.Email,
		Role:            s.Role.String(),
		JoinDate:        s.JoinDate,
		JoinDateDisplay: formatDate(s.JoinDate),
		ExpiresAt:       s.ExpiresAt,
	}
}

func toPortfolioResponse(p *domain.Portfolio) *portfolioResponse {
	if p == nil {
		return nil
	}
	return &portfolioResponse{
		Title:            p.Title,
		Bio:              p.Bio,
		Experience:       p.Experience,
		Skills:           p.Skills,
		SavedDate:        p.SavedDate,
		SavedDateDisplay: formatDate(p.SavedDate),
	}
}

func toSnapshotResponse(s domain.PortfolioSnapshot) portfolioResponse {
	return portfolioResponse{
		Title:            s.Title,
		Bio:              s.Bio,
		Experience:       s.Experience,
		Skills:           s.Skills,
		SavedDate:        s.SavedDate,
		SavedDateDisplay: formatDate(s.SavedDate),
	}
}

func toAuditionResponse(a *domain.Audition) auditionResponse {
	return auditionResponse{
		ID:                a.ID,
		ProjectTitle:      a.ProjectTitle,
		RoleTitle:         a.RoleTitle,
		RoleDescription:   a.RoleDescription,
		Location:          a.Location,
		Deadline:          a.Deadline.Format(domain.DateLayout),
		DeadlineDisplay:   formatDate(a.Deadline),
		PostedDate:        a.PostedDate,
		PostedDateDisplay: formatDate(a.PostedDate),
	}
}

func toAuditionResponses(in []*domain.Audition) []auditionResponse {
	out := make([]auditionResponse, 0, len(in))
	for _, a := range in {
		out = append(out, toAuditionResponse(a))
	}
	return out
}

func toPostedResponses(in []ports.PostedAudition) []auditionResponse {
	out := make([]auditionResponse, 0, len(in))
	for _, p := range in {
		r := toAuditionResponse(p.Audition)
		r.ApplicationCount = int64Ptr(p.ApplicationCount)
		out = append(out, r)
	}
	return out
}

func toApplicationResponse(a *domain.Application) applicationResponse {
	return applicationResponse{
		ID:                 a.ID,
		AuditionID:         a.AuditionID,
		ProjectTitle:       a.ProjectTitle,
		RoleTitle:          a.RoleTitle,
		Location:           a.Location,
		ApplicantEmail:     a.ApplicantEmail,
		Portfolio:          toSnapshotResponse(a.Portfolio),
		Status:             string(a.Status),
		AppliedDate:        a.AppliedDate,
		AppliedDateDisplay: formatDate(a.AppliedDate),
		DecidedAt:          a.DecidedAt,
	}
}

func toApplicationResponses(in []*domain.Application) []applicationResponse {
	out := make([]applicationResponse, 0, len(in))
	for _, a := range in {
		out = append(out, toApplicationResponse(a))
	}
	return out
}

func toReviewResponses(in []ports.ReviewGroup) []reviewGroupResponse {
	out := make([]reviewGroupResponse, 0, len(in))
	for _, g := range in {
		out = append(out, reviewGroupResponse{
			Audition:     toAuditionResponse(g.Audition),
			Applications: toApplicationResponses(g.Applications),
		})
	}
	return out
}

func toPromotionResponse(p *domain.Promotion) promotionResponse {
	return promotionResponse{
		ID:               p.ID,
		EventTitle:       p.EventTitle,
		EventType:        p.EventType,
		Description:      p.Description,
		Venue:            p.Venue,
		EventDate:        p.EventDate,
		EventDateDisplay: formatDateString(p.EventDate),
		EventTime:        p.EventTime,
		EventTimeDisplay: formatTime(p.EventTime),
		TicketInfo:       p.TicketInfo,
		ContactInfo:      p.ContactInfo,
		PostedBy:         p.PostedBy,
		PostedDate:       p.PostedDate,
	}
}

func toDashboardResponse(d *ports.Dashboard) dashboardResponse {
	resp := dashboardResponse{
		Role:     d.Session.Role.String(),
		Greeting: "Welcome, " + d.Session.Email + "!",
		User:     toSessionResponse(d.Session),
	}
	if d.Actor != nil {
		resp.Actor = &actorDashboardResponse{
			Portfolio:          toPortfolioResponse(d.Actor.Portfolio),
			AvailableAuditions: toAuditionResponses(d.Actor.AvailableAuditions),
			Applications:       toApplicationResponses(d.Actor.Applications),
		}
	}
	if d.Director != nil {
		resp.Director = &directorDashboardResponse{
			Posted: toPostedResponses(d.Director.Posted),
			Review: toReviewResponses(d.Director.Review),
		}
	}
	return resp
}
