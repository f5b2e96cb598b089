package ports

import (
	"net/url"

	"github.com/mouvement-ensemble/membership-portal/internal/core/domain"
)

// Card bundles everything a client needs to display and share a membership
// card: the payload itself, its encoded form, and the verification URL.
type Card struct {
	Payload         domain.CardPayload `json:"payload"`
	Encoded         string             `json:"encoded"`
	VerificationURL string             `json:"verification_url"`
}

// CardService issues membership cards and verifies shared ones. Issuance is
// a pure mapping from the session's member snapshot; verification is a pure,
// offline decode that never fails hard; malformed input maps to an Invalid
// result.
type CardService interface {
	Issue(member domain.Member) Card
	QRCode(member domain.Member) ([]byte, error)
	ShareText(member domain.Member) string
	Verify(params url.Values) domain.VerificationResult
}
