package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kalakar/casting-api/internal/api/metrics"
	"github.com/kalakar/casting-api/internal/core/domain"
	"github.com/kalakar/casting-api/internal/core/ports"
)

type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Apply submits the actor's portfolio to an audition.
//
// @Summary      Apply to an audition
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Audition ID"
// @Success      201  {object}  applicationResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      412  {object}  map[string]string
// @Router       /v1/auditions/{id}/applications [post]
func (h *ApplicationHandler) Apply(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	app, err := h.service.Apply(c.Request().Context(), ports.ApplyInput{
		AuditionID:     c.Param("id"),
		ApplicantID:    sess.UserID,
		ApplicantEmail: sess.Email,
	})
	if err != nil {
		return err
	}

	metrics.ApplicationsSubmittedTotal.Inc()
	return c.JSON(http.StatusCreated, toApplicationResponse(app))
}

// ListMine returns the actor's applications.
//
// @Summary      My applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   applicationResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/applications/mine [get]
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	apps, err := h.service.ListMine(c.Request().Context(), sess.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toApplicationResponses(apps))
}

// ListForReview returns applications grouped by the director's auditions.
//
// @Summary      Review applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   reviewGroupResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/applications/review [get]
func (h *ApplicationHandler) ListForReview(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	groups, err := h.service.ListForReview(c.Request().Context(), sess.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReviewResponses(groups))
}

// Select marks an application as selected.
//
// @Summary      Select an applicant
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  applicationResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/applications/{id}/select [post]
func (h *ApplicationHandler) Select(c echo.Context) error {
	return h.decide(c, domain.StatusSelected)
}

// Reject marks an application as rejected.
//
// @Summary      Reject an applicant
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  applicationResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/applications/{id}/reject [post]
func (h *ApplicationHandler) Reject(c echo.Context) error {
	return h.decide(c, domain.StatusRejected)
}

func (h *ApplicationHandler) decide(c echo.Context, decision domain.ApplicationStatus) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var app *domain.Application
	switch decision {
	case domain.StatusSelected:
		app, err = h.service.Select(c.Request().Context(), sess.UserID, c.Param("id"))
	case domain.StatusRejected:
		app, err = h.service.Reject(c.Request().Context(), sess.UserID, c.Param("id"))
	default:
		return domain.ErrInvalidTransition
	}
	if err != nil {
		return err
	}

	metrics.ApplicationDecisionsTotal.WithLabelValues(string(decision)).Inc()
	return c.JSON(http.StatusOK, toApplicationResponse(app))
}
