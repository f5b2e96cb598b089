package domain

import "strings"

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Member is the snapshot of a movement member as served by the upstream
// member API. The JSON tags follow the upstream wire contract.
type Member struct {
	ID               string `json:"id"`
	Surname          string `json:"nom"`
	GivenName        string `json:"prenom"`
	Email            string `json:"email"`
	PhoneCode        string `json:"code_telephone"`
	Phone            string `json:"telephone"`
	Role             string `json:"role"`
	MembershipNumber string `json:"numero_adhesion"`
	JoinDate         string `json:"date_adhesion"`
	Status           string `json:"statut"`
	Permanent        bool   `json:"membre_permanent"`

	// Location captured at registration.
	Country    string `json:"pays"`
	Department string `json:"departement"`
	Commune    string `json:"commune"`
	City       string `json:"city"`

	// Post-onboarding fields, filled in during profile completion.
	CityOfResidence    string `json:"ville"`
	CityOfMobilization string `json:"ville_mobilisation"`
	Section            string `json:"section"`
	Interests          string `json:"centres_interet_competences"`
}

// FullName joins the given name and surname for display and card issuance.
func (m Member) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(m.GivenName) + " " + strings.TrimSpace(m.Surname))
}

// IsAdmin reports whether the member holds the admin role.
func (m Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}
