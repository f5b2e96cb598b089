package domain

// CardPayload is the minimal field set embedded in a membership-card
// verification URL. It deliberately excludes the session token and any field
// not listed here; whatever ends up in a QR code is public.
//
// The payload carries no signature. Anyone can construct a syntactically
// valid verification URL; authenticity is a presentation-layer display only.
type CardPayload struct {
	MemberID string `json:"id"`
	Name     string `json:"name"`
	Number   string `json:"number"`
	Status   string `json:"status"`
	Commune  string `json:"commune"`
	JoinDate string `json:"joinDate"`

	// Permanent marks cards without an expiry date.
	Permanent bool `json:"permanent"`
}

// BuildCardPayload maps a member snapshot to its card payload. Pure; the
// result is immutable once generated.
func BuildCardPayload(m Member) CardPayload {
	return CardPayload{
		MemberID:  m.ID,
		Name:      m.FullName(),
		Number:    m.MembershipNumber,
		Status:    m.Status,
		Commune:   m.Commune,
		JoinDate:  m.JoinDate,
		Permanent: m.Permanent,
	}
}

// VerificationResult is the outcome of decoding a verification URL.
type VerificationResult struct {
	Valid     bool   `json:"valid"`
	MemberID  string `json:"member_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Number    string `json:"number,omitempty"`
	Status    string `json:"status,omitempty"`
	Commune   string `json:"commune,omitempty"`
	JoinDate  string `json:"join_date,omitempty"`
	Permanent bool   `json:"permanent,omitempty"`
}
