package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kalakar/casting-api/internal/core/ports"
)

type PortfolioHandler struct {
	service ports.PortfolioService
}

func NewPortfolioHandler(service ports.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

// Get returns the actor's portfolio.
//
// @Summary      Get my portfolio
// @Tags         portfolio
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  portfolioResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/portfolio [get]
func (h *PortfolioHandler) Get(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	p, err := h.service.Load(c.Request().Context(), sess.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPortfolioResponse(p))
}

// Save creates or replaces the actor's portfolio.
//
// @Summary      Save my portfolio
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      portfolioRequest  true  "Portfolio"
// @Success      200   {object}  portfolioResponse
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Failure      503   {object}  map[string]string
// @Router       /v1/portfolio [put]
func (h *PortfolioHandler) Save(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req portfolioRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	p, err := h.service.Save(c.Request().Context(), ports.SavePortfolioInput{
		OwnerID:    sess.UserID,
		Title:      req.Title,
		Bio:        req.Bio,
		Experience: req.Experience,
		Skills:     req.Skills,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPortfolioResponse(p))
}
