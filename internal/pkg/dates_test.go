package pkg

import "testing"

func TestToCanonicalDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"two digit day and month", "15/01/2023", "2023-01-15", true},
		{"one digit day", "5/12/2023", "2023-12-05", true},
		{"one digit month", "25/3/2023", "2023-03-25", true},
		{"one digit day and month", "5/3/2023", "2023-03-05", true},
		{"empty string", "", "", false},
		{"iso format", "2023-01-15", "", false},
		{"wrong separator", "15-01-2023", "", false},
		{"two segments", "15/2023", "", false},
		{"non numeric", "aa/bb/cccc", "", false},
		{"two digit year", "15/01/23", "", false},
		{"trailing garbage", "15/01/2023x", "", false},
		// Shape check only: nonsensical calendar values pass.
		{"month thirteen", "01/13/2023", "2023-13-01", true},
		{"day thirty-two", "32/01/2023", "2023-01-32", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToCanonicalDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ToCanonicalDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ToCanonicalDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToDisplayDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"canonical", "2023-01-15", "15/01/2023", true},
		{"one digit segments", "2023-3-5", "05/03/2023", true},
		{"display form input", "15/01/2023", "", false},
		{"empty string", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToDisplayDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ToDisplayDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ToDisplayDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsDisplayDate(t *testing.T) {
	if !IsDisplayDate("1/1/2023") {
		t.Error("expected 1/1/2023 to be a display date")
	}
	if IsDisplayDate("2023-01-15") {
		t.Error("expected 2023-01-15 not to be a display date")
	}
}
