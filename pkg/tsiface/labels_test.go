package tsiface

import "testing"

func TestFormatLabel(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"firstName":    "First Name",
		"is_active":    "Is Active",
		"email":        "Email",
		"createdAt":    "Created At",
		"URLPath":      "U R L Path",
		"snake_Case_x": "Snake Case X",
		"__private":    "Private",
		"already Done": "Already Done",
		"état":         "État",
		"":             "",
	}

	for input, want := range tests {
		if got := FormatLabel(input); got != want {
			t.Errorf("FormatLabel(%q) = %q, want %q", input, got, want)
		}
	}
}
