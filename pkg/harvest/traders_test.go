package harvest

import (
	"errors"
	"testing"
)

func TestNormalizeTraderName(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain", "Acme", "Acme", false},
		{"surrounding whitespace trimmed", "  Acme  ", "Acme", false},
		{"inner whitespace kept", "Mehmet Ticaret", "Mehmet Ticaret", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeTraderName(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("err = %v, want ErrInvalidArgument", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("normalizeTraderName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// " Acme " and "Acme" must produce the same natural key, so repeated
// find-or-create calls with whitespace variants resolve to one trader
// instead of creating duplicates.
func TestNormalizeTraderNameIdempotentKey(t *testing.T) {
	first, err := normalizeTraderName(" Acme ")
	if err != nil {
		t.Fatal(err)
	}
	second, err := normalizeTraderName("Acme")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("keys differ: %q vs %q", first, second)
	}
	again, err := normalizeTraderName(first)
	if err != nil {
		t.Fatal(err)
	}
	if again != first {
		t.Errorf("normalization is not stable: %q -> %q", first, again)
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme", "Acme"},
		{"%", `\%`},
		{"100_", `100\_`},
		{`a\b`, `a\\b`},
		{"%_%", `\%\_\%`},
	}
	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
