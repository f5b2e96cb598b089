package service

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/mouvement-ensemble/membership-portal/internal/core/domain"
	"github.com/mouvement-ensemble/membership-portal/internal/core/ports"
)

const qrSize = 512

// CardService issues membership cards and verifies shared verification
// links. Both directions are pure: issuance maps the member snapshot to a
// fixed payload, verification decodes whatever the URL carries without ever
// contacting the upstream.
type CardService struct {
	origin string
	audit  ports.AuditRecorder
}

// NewCardService builds a CardService. origin is the public origin used in
// verification URLs, e.g. "https://mouvement-ensemble.org".
func NewCardService(origin string, audit ports.AuditRecorder) *CardService {
	return &CardService{origin: strings.TrimRight(origin, "/"), audit: audit}
}

// Issue builds the card payload, its base64 encoding, and the verification
// URL. The session token is never part of the payload.
func (s *CardService) Issue(member domain.Member) ports.Card {
	payload := domain.BuildCardPayload(member)
	encoded := encodePayload(payload)

	if s.audit != nil {
		s.audit.Record(ports.AuthEvent{Kind: ports.AuditCardIssued, MemberID: member.ID})
	}

	return ports.Card{
		Payload:         payload,
		Encoded:         encoded,
		VerificationURL: s.origin + ports.PathVerifyMember + "?data=" + url.QueryEscape(encoded),
	}
}

// QRCode renders the verification URL as a PNG. The image is produced fully
// in memory; on failure no bytes are returned, so a caller can never stream
// a truncated file.
func (s *CardService) QRCode(member domain.Member) ([]byte, error) {
	card := s.Issue(member)
	png, err := qrcode.Encode(card.VerificationURL, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("render card qr: %w", err)
	}
	return png, nil
}

// ShareText is the clipboard fallback when a client has no native share
// capability.
func (s *CardService) ShareText(member domain.Member) string {
	card := s.Issue(member)
	return fmt.Sprintf("Membership card of %s (no. %s)\n%s",
		card.Payload.Name, card.Payload.Number, card.VerificationURL)
}

func encodePayload(p domain.CardPayload) string {
	raw, _ := json.Marshal(p)
	return base64.StdEncoding.EncodeToString(raw)
}

// Verify decodes a verification URL's query parameters into a human-facing
// result. Both link forms are accepted: the single base64 "data" blob, and
// discrete memberId/name/number parameters. Malformed input of any shape
// maps to an Invalid result; this never fails hard.
func (s *CardService) Verify(params url.Values) domain.VerificationResult {
	if data := params.Get("data"); data != "" {
		return verifyBlob(data)
	}

	return classify(domain.CardPayload{
		MemberID: params.Get("memberId"),
		Name:     params.Get("name"),
		Number:   params.Get("number"),
		Status:   params.Get("status"),
		Commune:  params.Get("commune"),
		JoinDate: params.Get("joinDate"),
	})
}

func verifyBlob(data string) domain.VerificationResult {
	raw, err := decodeBase64(data)
	if err != nil {
		return domain.VerificationResult{Valid: false}
	}

	// Unknown extra fields are tolerated; missing optional ones default to
	// their zero values.
	var payload domain.CardPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.VerificationResult{Valid: false}
	}
	return classify(payload)
}

// decodeBase64 accepts the standard, URL-safe, and unpadded alphabets, since
// issuers in the wild differ on which one they use.
func decodeBase64(s string) ([]byte, error) {
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.URLEncoding,
		base64.RawStdEncoding,
		base64.RawURLEncoding,
	} {
		if raw, err := enc.DecodeString(s); err == nil {
			return raw, nil
		}
	}
	return nil, fmt.Errorf("malformed base64 payload")
}

// classify applies the validity rule: id, name, and membership number must
// all be present and non-empty.
func classify(p domain.CardPayload) domain.VerificationResult {
	id := strings.TrimSpace(p.MemberID)
	name := strings.TrimSpace(p.Name)
	number := strings.TrimSpace(p.Number)

	if id == "" || name == "" || number == "" {
		return domain.VerificationResult{Valid: false}
	}

	return domain.VerificationResult{
		Valid:     true,
		MemberID:  id,
		Name:      name,
		Number:    number,
		Status:    p.Status,
		Commune:   p.Commune,
		JoinDate:  p.JoinDate,
		Permanent: p.Permanent,
	}
}
