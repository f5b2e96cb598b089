package domain

import (
	"reflect"
	"testing"
)

func completeMember() Member {
	return Member{
		ID:                 "m-1",
		Role:               RoleMember,
		CityOfResidence:    "Cotonou",
		CityOfMobilization: "Porto-Novo",
		Section:            "Jeunesse",
		Interests:          "Communication",
	}
}

func TestCompleteness_AllFieldsPresent(t *testing.T) {
	status := Completeness(completeMember())

	if !status.Completed {
		t.Fatalf("expected completed, got %+v", status)
	}
	if status.Progress != 100 {
		t.Fatalf("expected 100%%, got %d", status.Progress)
	}
	if len(status.MissingFields) != 0 {
		t.Fatalf("expected no missing fields, got %v", status.MissingFields)
	}
}

func TestCompleteness_OneFieldMissing(t *testing.T) {
	m := completeMember()
	m.CityOfResidence = ""

	status := Completeness(m)

	want := ProfileStatus{
		Completed:     false,
		MissingFields: []string{"ville"},
		Progress:      75,
	}
	if !reflect.DeepEqual(status, want) {
		t.Fatalf("got %+v, want %+v", status, want)
	}
}

func TestCompleteness_WhitespaceOnlyCountsAsMissing(t *testing.T) {
	m := completeMember()
	m.Section = "   "

	status := Completeness(m)

	if status.Completed {
		t.Fatalf("whitespace-only field must not count as filled")
	}
	if len(status.MissingFields) != 1 || status.MissingFields[0] != "section" {
		t.Fatalf("expected section missing, got %v", status.MissingFields)
	}
	if status.Progress != 75 {
		t.Fatalf("expected 75%%, got %d", status.Progress)
	}
}

func TestCompleteness_ProgressIncrements(t *testing.T) {
	clearers := []func(*Member){
		func(m *Member) { m.CityOfResidence = "" },
		func(m *Member) { m.CityOfMobilization = "\t" },
		func(m *Member) { m.Section = " " },
		func(m *Member) { m.Interests = "" },
	}

	for n := 0; n <= len(clearers); n++ {
		m := completeMember()
		for _, clear := range clearers[:n] {
			clear(&m)
		}

		status := Completeness(m)
		wantProgress := (4 - n) * 25
		if status.Progress != wantProgress {
			t.Fatalf("%d cleared fields: expected %d%%, got %d", n, wantProgress, status.Progress)
		}
		if status.Completed != (status.Progress == 100) {
			t.Fatalf("completed flag inconsistent with progress %d", status.Progress)
		}
		if len(status.MissingFields) != n {
			t.Fatalf("%d cleared fields: got %v", n, status.MissingFields)
		}
	}
}

func TestCompleteness_OtherFieldsIrrelevant(t *testing.T) {
	m := completeMember()
	m.Email = ""
	m.Commune = ""
	m.MembershipNumber = ""

	if status := Completeness(m); !status.Completed {
		t.Fatalf("fields outside the tracked four must not affect completeness: %+v", status)
	}
}
