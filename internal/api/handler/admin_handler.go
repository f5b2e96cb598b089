package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mouvement-ensemble/membership-portal/internal/api/middleware"
	"github.com/mouvement-ensemble/membership-portal/internal/core/domain"
	"github.com/mouvement-ensemble/membership-portal/internal/core/ports"
)

const (
	overviewWindow = 24 * time.Hour
	overviewLimit  = 20
)

// AdminHandler serves the admin dashboard data behind the AdminGuard.
type AdminHandler struct {
	audit ports.AuditRepository
}

func NewAdminHandler(audit ports.AuditRepository) *AdminHandler {
	return &AdminHandler{audit: audit}
}

type adminOverviewResponse struct {
	Admin        domain.Member     `json:"admin"`
	EventCounts  map[string]int64  `json:"event_counts_24h"`
	RecentEvents []ports.AuthEvent `json:"recent_events"`
}

// Overview returns the admin's own snapshot plus the recent auth activity.
//
// @Summary      Admin overview
// @Tags         admin
// @Produce      json
// @Success      200  {object}  adminOverviewResponse
// @Failure      401  {object}  map[string]string
// @Router       /admin [get]
func (h *AdminHandler) Overview(c echo.Context) error {
	session, _ := middleware.SessionFromContext(c)
	ctx := c.Request().Context()

	counts, err := h.audit.CountByKind(ctx, time.Now().Add(-overviewWindow))
	if err != nil {
		return err
	}
	recent, err := h.audit.Recent(ctx, overviewLimit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, adminOverviewResponse{
		Admin:        session.Member,
		EventCounts:  counts,
		RecentEvents: recent,
	})
}
