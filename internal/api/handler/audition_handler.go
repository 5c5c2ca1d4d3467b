package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kalakar/casting-api/internal/api/metrics"
	"github.com/kalakar/casting-api/internal/core/ports"
)

type AuditionHandler struct {
	service ports.AuditionService
}

func NewAuditionHandler(service ports.AuditionService) *AuditionHandler {
	return &AuditionHandler{service: service}
}

// Post creates a casting call.
//
// @Summary      Post an audition
// @Tags         auditions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      auditionRequest  true  "Audition"
// @Success      201   {object}  auditionResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /v1/auditions [post]
func (h *AuditionHandler) Post(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req auditionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	a, err := h.service.Post(c.Request().Context(), ports.PostAuditionInput{
		DirectorID:      sess.UserID,
		ProjectTitle:    req.ProjectTitle,
		RoleTitle:       req.RoleTitle,
		RoleDescription: req.RoleDescription,
		Location:        req.Location,
		Deadline:        req.Deadline,
	})
	if err != nil {
		return err
	}

	metrics.AuditionsPostedTotal.Inc()
	return c.JSON(http.StatusCreated, toAuditionResponse(a))
}

// ListMine returns the director's postings with application counts.
//
// @Summary      My posted auditions
// @Tags         auditions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   auditionResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/auditions/mine [get]
func (h *AuditionHandler) ListMine(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	posted, err := h.service.ListPosted(c.Request().Context(), sess.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostedResponses(posted))
}

// ListAvailable returns every audition, newest first.
//
// @Summary      Browse auditions
// @Tags         auditions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   auditionResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/auditions [get]
func (h *AuditionHandler) ListAvailable(c echo.Context) error {
	auditions, err := h.service.ListAvailable(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuditionResponses(auditions))
}
