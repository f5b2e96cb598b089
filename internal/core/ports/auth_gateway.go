package ports

import (
	"context"

	"github.com/mouvement-ensemble/membership-portal/internal/core/domain"
)

// RegisterInput carries the fields forwarded to the upstream registration
// endpoint. JSON names follow the upstream wire contract.
type RegisterInput struct {
	Surname    string `json:"nom"`
	GivenName  string `json:"prenom"`
	Email      string `json:"email"`
	PhoneCode  string `json:"code_telephone"`
	Phone      string `json:"telephone"`
	Password   string `json:"password"`
	Country    string `json:"pays"`
	Department string `json:"departement"`
	Commune    string `json:"commune"`
	City       string `json:"city"`
}

// ProfileUpdateInput carries the mutable profile fields, including the four
// post-onboarding completion fields.
type ProfileUpdateInput struct {
	PhoneCode          string `json:"code_telephone,omitempty"`
	Phone              string `json:"telephone,omitempty"`
	CityOfResidence    string `json:"ville,omitempty"`
	CityOfMobilization string `json:"ville_mobilisation,omitempty"`
	Section            string `json:"section,omitempty"`
	Interests          string `json:"centres_interet_competences,omitempty"`
}

// AuthGateway bridges credentials and profile operations to the remote
// member API, normalizing every failure into a domain.AuthError. It performs
// no session writes of its own; persisting the returned (token, member) pair
// is the caller's responsibility.
type AuthGateway interface {
	Login(ctx context.Context, creds domain.LoginCredentials) (token string, member domain.Member, err error)
	Register(ctx context.Context, in RegisterInput) (domain.Member, error)

	// Authenticated calls. A 401 yields KindUnauthenticated; the service
	// layer turns that into a forced logout.
	Profile(ctx context.Context, token string) (domain.Member, error)
	UpdateProfile(ctx context.Context, token string, in ProfileUpdateInput) (domain.Member, error)
	CompleteProfile(ctx context.Context, token string, in ProfileUpdateInput) (domain.Member, error)
}
