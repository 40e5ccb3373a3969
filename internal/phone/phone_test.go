package phone

import (
	"strings"
	"testing"
)

func TestCleanStripsDecoration(t *testing.T) {
	cases := map[string]string{
		"+7 916 123 45 67":  "+79161234567",
		"8 (916) 123-45-67": "89161234567",
		"tel: 123-456":      "123456",
		"abc":               "",
		"++123456789":       "++123456789",
	}
	for in, want := range cases {
		if got := Clean(in); got != want {
			t.Errorf("Clean(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
		note  string
	}{
		{"+7 916 123 45 67", true, "home plan with +CC"},
		{"8 (916) 123-45-67", true, "home plan with trunk prefix"},
		{"79161234567", true, "home plan bare CC"},
		{"9161234567", true, "bare domestic mobile"},
		{"+380 67 123 45 67", true, "international (UA)"},
		{"+1 555 123 4567", true, "international (US)"},
		{"+49 30 12345678", true, "international (DE)"},
		{"+33 1 42 34 56 78", true, "international (FR)"},
		{"+86 138 0013 8000", true, "international (CN)"},
		{"+44 20 7946 0958", true, "international (UK)"},
		{"12345678901", true, "foreign code without +"},
		{"+1234567", true, "minimum international length"},

		{"+7 916 386 33 0", false, "home plan one digit short"},
		{"+7 916 386 3", false, "home plan far too short"},
		{"89161234", false, "trunk prefix wrong length"},
		{"123456", false, "below 7 digits"},
		{"1234567890123456", false, "above 15 digits"},
		{"+1234567890123456", false, "above 15 digits with +"},
		{"", false, "empty"},
		{"abc", false, "letters"},
		{"+", false, "plus only"},
		{"++123456789", false, "double plus"},
		{"91612345678", false, "mobile lead but 11 digits, no code"},
		{"1234567", false, "7 digits without +"},
	}
	for _, tc := range cases {
		if got := DefaultPlan.Valid(Clean(tc.in)); got != tc.valid {
			t.Errorf("Valid(Clean(%q)) = %v, want %v (%s)", tc.in, got, tc.valid, tc.note)
		}
	}
}

// TestValidEnvelope sweeps generated digit strings across the accepted
// length window, with and without a leading plus, and checks the shape
// rules hold for every lead digit.
func TestValidEnvelope(t *testing.T) {
	for n := 1; n <= 17; n++ {
		for lead := byte('1'); lead <= '9'; lead++ {
			digits := string(lead) + strings.Repeat("5", n-1)

			inWindow := n >= MinDigits && n <= MaxDigits
			wantPlus := inWindow
			if lead == '7' {
				wantPlus = n == 11
			}
			if got := DefaultPlan.Valid("+" + digits); got != wantPlus {
				t.Fatalf("Valid(+%s) = %v, want %v", digits, got, wantPlus)
			}

			var wantBare bool
			switch lead {
			case '7', '8':
				wantBare = n == 11
			case '9':
				wantBare = n == 10
			default:
				wantBare = inWindow && n >= 10
			}
			if got := DefaultPlan.Valid(digits); got != wantBare {
				t.Fatalf("Valid(%s) = %v, want %v", digits, got, wantBare)
			}
		}
	}
}

func TestFormat(t *testing.T) {
	cases := map[string]string{
		"+79161234567":      "+7 (916) 123-45-67",
		"89161234567":       "+7 (916) 123-45-67",
		"79161234567":       "+7 (916) 123-45-67",
		"9161234567":        "+7 (916) 123-45-67",
		"+7 916 123 45 67":  "+7 (916) 123-45-67",
		"8 (916) 123-45-67": "+7 (916) 123-45-67",
		"+380671234567":     "+380671234567",
		"12345678901":       "+12345678901",
	}
	for in, want := range cases {
		if got := DefaultPlan.Format(in); got != want {
			t.Errorf("Format(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatIdempotent(t *testing.T) {
	inputs := []string{"89161234567", "9161234567", "+380671234567", "12345678901"}
	for _, in := range inputs {
		once := DefaultPlan.Format(in)
		if twice := DefaultPlan.Format(once); twice != once {
			t.Errorf("Format not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestCustomPlan(t *testing.T) {
	// A one-digit-code plan with different trunk/mobile digits must not
	// special-case Russian shapes.
	p := Plan{CountryCode: "1", TrunkPrefix: '0', MobileLead: '5'}
	if !p.Valid(Clean("+1 555 123 4567")) {
		t.Error("expected home +CC number to validate")
	}
	if p.Valid(Clean("+1 555 123 456")) {
		t.Error("expected short home +CC number to reject")
	}
	if !p.Valid("5551234567") {
		t.Error("expected bare mobile with lead 5 to validate")
	}
	if got := p.Format("05551234567"); got != "+1 (555) 123-45-67" {
		t.Errorf("trunk rewrite: got %q", got)
	}
}
