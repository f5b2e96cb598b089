package domain

import "testing"

func TestBuildCardPayload(t *testing.T) {
	m := Member{
		ID:               "m-42",
		Surname:          "Dossou",
		GivenName:        "Awa",
		MembershipNumber: "ME-0042",
		Status:           "active",
		Commune:          "Abomey-Calavi",
		JoinDate:         "2024-03-01",
		Permanent:        true,
	}

	p := BuildCardPayload(m)

	if p.MemberID != "m-42" {
		t.Fatalf("unexpected member id %q", p.MemberID)
	}
	if p.Name != "Awa Dossou" {
		t.Fatalf("unexpected name %q", p.Name)
	}
	if p.Number != "ME-0042" || p.Status != "active" || p.Commune != "Abomey-Calavi" || p.JoinDate != "2024-03-01" || !p.Permanent {
		t.Fatalf("payload fields not mapped: %+v", p)
	}
}

func TestFullName_TrimsParts(t *testing.T) {
	m := Member{Surname: " Dossou ", GivenName: " Awa "}
	if got := m.FullName(); got != "Awa Dossou" {
		t.Fatalf("unexpected full name %q", got)
	}

	if got := (Member{Surname: "Dossou"}).FullName(); got != "Dossou" {
		t.Fatalf("unexpected full name %q", got)
	}
}
