package citycheck

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		valid  bool
		reason Reason
	}{
		{name: "plain city", input: "London", valid: true},
		{name: "trimmed", input: "   Paris  ", valid: true},
		{name: "multi word", input: "New York", valid: true},
		{name: "hyphen and apostrophe", input: "Saint-Jean-d'Angély", valid: true},
		{name: "cyrillic", input: "Київ", valid: true},
		{name: "ukrainian letters", input: "Їжакевичі", valid: true},
		{name: "latin extended", input: "Łódź", valid: true},
		{name: "digits with letters", input: "Area 51", valid: true},
		{name: "three letter title case", input: "Rio", valid: true},
		{name: "three letter cyrillic title case", input: "Уфа", valid: true},

		{name: "empty", input: "", reason: ReasonEmpty},
		{name: "whitespace only", input: "    ", reason: ReasonEmpty},
		{name: "length two", input: "Ab", reason: ReasonTooShort},
		{name: "length two after trim", input: "  Ab  ", reason: ReasonTooShort},
		{name: "length 51", input: strings.Repeat("a", 51), reason: ReasonTooLong},
		{name: "numeric", input: "12345", reason: ReasonNumeric},
		{name: "symbols only", input: "!!!", reason: ReasonNoLetters},
		{name: "non listed script", input: "東京都市", reason: ReasonNoLetters},
		{name: "airport code", input: "NYC", reason: ReasonShortNotTitleCase},
		{name: "lowercase three", input: "rio", reason: ReasonShortNotTitleCase},
		{name: "mixed script three", input: "Rуф", reason: ReasonShortNotTitleCase},
		{name: "denylist", input: "россия", reason: ReasonTooGeneral},
		{name: "denylist any case", input: "РОССИЯ", reason: ReasonTooGeneral},
		{name: "denylist mixed case", input: "  Европа ", reason: ReasonTooGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.input)
			if got.Valid != tt.valid || got.Reason != tt.reason {
				t.Errorf("Validate(%q) = %+v, want {Valid:%v Reason:%q}", tt.input, got, tt.valid, tt.reason)
			}
			if IsPlausibleCityName(tt.input) != tt.valid {
				t.Errorf("IsPlausibleCityName(%q) = %v, want %v", tt.input, !tt.valid, tt.valid)
			}
		})
	}
}

func TestValidateLengthBoundaries(t *testing.T) {
	if !IsPlausibleCityName(strings.Repeat("a", 50)) {
		t.Error("50 characters should be accepted")
	}
	if !IsPlausibleCityName(strings.Repeat("ж", 50)) {
		t.Error("50 cyrillic characters should be accepted (length counts characters, not bytes)")
	}
	if IsPlausibleCityName(strings.Repeat("ж", 51)) {
		t.Error("51 cyrillic characters should be rejected")
	}
	if !IsPlausibleCityName("Oslo") {
		t.Error("4 characters skip the title-case rule")
	}
}
