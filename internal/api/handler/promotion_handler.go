package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kalakar/casting-api/internal/api/metrics"
	"github.com/kalakar/casting-api/internal/api/middleware"
	"github.com/kalakar/casting-api/internal/core/domain"
	"github.com/kalakar/casting-api/internal/core/ports"
)

type PromotionHandler struct {
	service ports.PromotionService
}

func NewPromotionHandler(service ports.PromotionService) *PromotionHandler {
	return &PromotionHandler{service: service}
}

// List returns every promotion. Guests may read the board; only directors
// are told they can post.
//
// @Summary      Promotion board
// @Tags         promotions
// @Produce      json
// @Success      200  {object}  promotionListResponse
// @Failure      503  {object}  map[string]string
// @Router       /v1/promotions [get]
func (h *PromotionHandler) List(c echo.Context) error {
	promos, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}

	sess := middleware.SessionFrom(c)
	resp := promotionListResponse{
		Promotions: make([]promotionResponse, 0, len(promos)),
		CanPost:    sess.IsDirector(),
		Notice:     promotionNotice(sess),
	}
	for _, p := range promos {
		resp.Promotions = append(resp.Promotions, toPromotionResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

// Post adds a promotion to the board.
//
// @Summary      Post a promotion
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      promotionRequest  true  "Promotion"
// @Success      201   {object}  promotionResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /v1/promotions [post]
func (h *PromotionHandler) Post(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req promotionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	p, err := h.service.Post(c.Request().Context(), ports.PostPromotionInput{
		DirectorID:    sess.UserID,
		DirectorEmail: sess.Email,
		EventTitle:    req.EventTitle,
		EventType:     req.EventType,
		Description:   req.Description,
		Venue:         req.Venue,
		EventDate:     req.EventDate,
		EventTime:     req.EventTime,
		TicketInfo:    req.TicketInfo,
		ContactInfo:   req.ContactInfo,
	})
	if err != nil {
		return err
	}

	metrics.PromotionsPostedTotal.Inc()
	return c.JSON(http.StatusCreated, toPromotionResponse(p))
}

func promotionNotice(sess *domain.Session) string {
	if sess == nil {
		return "You are viewing as a guest. Please login to post promotions."
	}
	switch sess.Role {
	case domain.RoleDirector:
		return "Welcome, " + sess.Email + "! As a Director/Producer, you can post event promotions below."
	case domain.RoleActor:
		return "Welcome, " + sess.Email + "! As an Actor, you can browse event promotions but cannot post."
	default:
		return "You are viewing as a guest."
	}
}
