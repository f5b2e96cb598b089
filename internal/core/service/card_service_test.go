package service

import (
	"bytes"
	"encoding/base64"
	"net/url"
	"strings"
	"testing"

	"github.com/mouvement-ensemble/membership-portal/internal/core/domain"
)

func cardMember() domain.Member {
	return domain.Member{
		ID:               "m-42",
		Surname:          "Dossou",
		GivenName:        "Awa",
		MembershipNumber: "ME-0042",
		Status:           "active",
		Commune:          "Abomey-Calavi",
		JoinDate:         "2024-03-01",
	}
}

func TestIssue_URLAndEncoding(t *testing.T) {
	svc := NewCardService("https://example.org/", nil)

	card := svc.Issue(cardMember())

	if !strings.HasPrefix(card.VerificationURL, "https://example.org/verify-member?data=") {
		t.Fatalf("unexpected verification URL %q", card.VerificationURL)
	}
	if strings.Contains(card.Encoded, " ") {
		t.Fatalf("encoded payload must be base64: %q", card.Encoded)
	}

	// The encoded blob must never contain the raw token field.
	raw, err := base64.StdEncoding.DecodeString(card.Encoded)
	if err != nil {
		t.Fatalf("encoded payload is not standard base64: %v", err)
	}
	if strings.Contains(string(raw), "token") {
		t.Fatalf("payload leaks token material: %s", raw)
	}
}

func TestVerify_RoundTrip(t *testing.T) {
	svc := NewCardService("https://example.org", nil)
	card := svc.Issue(cardMember())

	parsed, err := url.Parse(card.VerificationURL)
	if err != nil {
		t.Fatalf("verification URL does not parse: %v", err)
	}

	result := svc.Verify(parsed.Query())
	if !result.Valid {
		t.Fatalf("round-tripped card must verify: %+v", result)
	}
	if result.MemberID != "m-42" || result.Name != "Awa Dossou" || result.Number != "ME-0042" {
		t.Fatalf("reconstructed fields differ: %+v", result)
	}
	if result.Commune != "Abomey-Calavi" || result.JoinDate != "2024-03-01" {
		t.Fatalf("optional fields lost: %+v", result)
	}
}

func TestVerify_MalformedInputNeverFailsHard(t *testing.T) {
	svc := NewCardService("https://example.org", nil)

	cases := []string{
		"%%%not-base64%%%",
		"aGVsbG8",         // valid base64, not JSON
		"e30",             // "{}", JSON without required fields
		"òàé",             // non-ASCII garbage
		"dHJ1bmNhdGVkcGF5", // truncated blob
		"",
	}
	for _, data := range cases {
		params := url.Values{}
		if data != "" {
			params.Set("data", data)
		}
		result := svc.Verify(params)
		if result.Valid {
			t.Errorf("data=%q: expected invalid, got %+v", data, result)
		}
	}
}

func TestVerify_DiscreteParams(t *testing.T) {
	svc := NewCardService("https://example.org", nil)

	params := url.Values{}
	params.Set("memberId", "m-7")
	params.Set("name", "Awa Dossou")
	params.Set("number", "ME-0007")

	result := svc.Verify(params)
	if !result.Valid {
		t.Fatalf("expected valid, got %+v", result)
	}
	if result.MemberID != "m-7" || result.Number != "ME-0007" {
		t.Fatalf("unexpected fields: %+v", result)
	}

	// Any of the three required fields missing or blank → invalid.
	for _, key := range []string{"memberId", "name", "number"} {
		p := url.Values{}
		for k := range params {
			p.Set(k, params.Get(k))
		}
		p.Set(key, "   ")
		if svc.Verify(p).Valid {
			t.Errorf("blank %s must invalidate the card", key)
		}
	}
}

func TestVerify_ToleratesUnknownFields(t *testing.T) {
	svc := NewCardService("https://example.org", nil)

	blob := base64.StdEncoding.EncodeToString([]byte(
		`{"id":"m-1","name":"Awa Dossou","number":"ME-0001","badge_color":"green","v":2}`,
	))
	params := url.Values{}
	params.Set("data", blob)

	result := svc.Verify(params)
	if !result.Valid {
		t.Fatalf("unknown extra fields must be tolerated: %+v", result)
	}
}

func TestVerify_URLSafeBase64Accepted(t *testing.T) {
	svc := NewCardService("https://example.org", nil)

	blob := base64.RawURLEncoding.EncodeToString([]byte(
		`{"id":"m-1","name":"Awa Dossou","number":"ME-0001"}`,
	))
	params := url.Values{}
	params.Set("data", blob)

	if result := svc.Verify(params); !result.Valid {
		t.Fatalf("raw URL-safe base64 must be accepted: %+v", result)
	}
}

func TestQRCode_ProducesPNG(t *testing.T) {
	svc := NewCardService("https://example.org", nil)

	png, err := svc.QRCode(cardMember())
	if err != nil {
		t.Fatalf("QRCode returned error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("expected a PNG image, got %d bytes starting %x", len(png), png[:4])
	}
}

func TestShareText(t *testing.T) {
	svc := NewCardService("https://example.org", nil)

	text := svc.ShareText(cardMember())
	if !strings.Contains(text, "ME-0042") || !strings.Contains(text, "/verify-member?data=") {
		t.Fatalf("share text missing card details: %q", text)
	}
}
