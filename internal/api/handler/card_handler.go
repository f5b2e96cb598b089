package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mouvement-ensemble/membership-portal/internal/api/metrics"
	"github.com/mouvement-ensemble/membership-portal/internal/api/middleware"
	"github.com/mouvement-ensemble/membership-portal/internal/core/ports"
)

// CardHandler serves the authenticated member's card: the verifiable
// payload, the QR image, and the clipboard share fallback.
type CardHandler struct {
	cards ports.CardService
}

func NewCardHandler(cards ports.CardService) *CardHandler {
	return &CardHandler{cards: cards}
}

// Card returns the payload, its encoding, and the verification URL.
//
// @Summary      Membership card payload
// @Tags         card
// @Produce      json
// @Success      200  {object}  ports.Card
// @Router       /member/card [get]
func (h *CardHandler) Card(c echo.Context) error {
	session, _ := middleware.SessionFromContext(c)
	metrics.CardsIssuedTotal.WithLabelValues("payload").Inc()
	return c.JSON(http.StatusOK, h.cards.Issue(session.Member))
}

// QR renders the verification URL as a PNG. The image is generated in full
// before the first byte is written, so a failed render returns an error
// response instead of a truncated file.
//
// @Summary      Membership card QR code
// @Tags         card
// @Produce      png
// @Success      200  {file}    binary
// @Failure      500  {object}  map[string]string
// @Router       /member/card/qr.png [get]
func (h *CardHandler) QR(c echo.Context) error {
	session, _ := middleware.SessionFromContext(c)
	png, err := h.cards.QRCode(session.Member)
	if err != nil {
		return err
	}
	metrics.CardsIssuedTotal.WithLabelValues("qr").Inc()
	return c.Blob(http.StatusOK, "image/png", png)
}

// Share returns the plain-text fallback for clients without a native share
// capability; the client copies it to the clipboard and notifies the user.
//
// @Summary      Membership card share text
// @Tags         card
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /member/card/share [get]
func (h *CardHandler) Share(c echo.Context) error {
	session, _ := middleware.SessionFromContext(c)
	metrics.CardsIssuedTotal.WithLabelValues("share").Inc()
	return c.JSON(http.StatusOK, map[string]string{
		"text": h.cards.ShareText(session.Member),
	})
}
