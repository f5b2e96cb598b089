package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mouvement-ensemble/membership-portal/internal/api/metrics"
	"github.com/mouvement-ensemble/membership-portal/internal/core/ports"
)

// VerifyHandler serves the public card-verification page. It never contacts
// the member API and never fails hard: whatever the URL carries decodes to
// either a valid display or an invalid one.
type VerifyHandler struct {
	cards ports.CardService
}

func NewVerifyHandler(cards ports.CardService) *VerifyHandler {
	return &VerifyHandler{cards: cards}
}

// Verify decodes the query parameters of a shared verification link.
//
// @Summary      Verify a shared membership card
// @Tags         card
// @Produce      json
// @Param        data      query     string  false  "Base64 card payload"
// @Param        memberId  query     string  false  "Member ID (discrete form)"
// @Param        name      query     string  false  "Member name (discrete form)"
// @Param        number    query     string  false  "Membership number (discrete form)"
// @Success      200       {object}  domain.VerificationResult
// @Router       /verify-member [get]
func (h *VerifyHandler) Verify(c echo.Context) error {
	result := h.cards.Verify(c.QueryParams())

	label := "invalid"
	if result.Valid {
		label = "valid"
	}
	metrics.CardVerificationsTotal.WithLabelValues(label).Inc()

	return c.JSON(http.StatusOK, result)
}
