package domain

import "strings"

// The four post-onboarding fields tracked for profile completion, in the
// order they are reported when missing. Names follow the upstream JSON keys.
var trackedFields = []struct {
	name  string
	value func(Member) string
}{
	{"ville", func(m Member) string { return m.CityOfResidence }},
	{"ville_mobilisation", func(m Member) string { return m.CityOfMobilization }},
	{"section", func(m Member) string { return m.Section }},
	{"centres_interet_competences", func(m Member) string { return m.Interests }},
}

// ProfileStatus is derived from a Member record on every load; it is never
// stored.
type ProfileStatus struct {
	Completed     bool     `json:"completed"`
	MissingFields []string `json:"missing_fields"`
	Progress      int      `json:"progress"`
}

// Completeness computes the profile-completion status over the four tracked
// fields. A field counts as missing when empty after trimming whitespace, so
// an all-spaces value can never produce a false 100%.
func Completeness(m Member) ProfileStatus {
	missing := make([]string, 0, len(trackedFields))
	for _, f := range trackedFields {
		if strings.TrimSpace(f.value(m)) == "" {
			missing = append(missing, f.name)
		}
	}
	filled := len(trackedFields) - len(missing)
	return ProfileStatus{
		Completed:     len(missing) == 0,
		MissingFields: missing,
		Progress:      filled * 100 / len(trackedFields),
	}
}
