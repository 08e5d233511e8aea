// Package citycheck rejects free-text queries that are unlikely to be city
// names, so no upstream call is spent on them.
package citycheck

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Reason explains why a query was rejected.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonEmpty             Reason = "empty"
	ReasonTooShort          Reason = "too_short"
	ReasonTooLong           Reason = "too_long"
	ReasonNumeric           Reason = "numeric"
	ReasonNoLetters         Reason = "no_letters"
	ReasonShortNotTitleCase Reason = "short_not_title_case"
	ReasonTooGeneral        Reason = "too_general"
)

const (
	MinLength = 3
	MaxLength = 50
)

// Verdict is the outcome of Validate.
type Verdict struct {
	Valid  bool   `json:"valid"`
	Reason Reason `json:"reason,omitempty"`
}

var (
	digitsOnly = regexp.MustCompile(`^[0-9]+$`)

	// Basic Latin, Latin-1 Supplement/Extended-A, Russian Cyrillic and the
	// Ukrainian-only letters.
	letter = regexp.MustCompile(`[a-zA-Zа-яА-ЯіІїЇєЄ\x{00C0}-\x{017F}]`)

	titleCase3 = regexp.MustCompile(`^[A-Z][a-z]{2}$|^[А-Я][а-я]{2}$`)
)

// tooGeneral are country and continent names that match too broadly.
var tooGeneral = map[string]struct{}{
	"китай":   {},
	"россия":  {},
	"украина": {},
	"америка": {},
	"европа":  {},
	"азия":    {},
	"африка":  {},
}

// Validate applies the rules in order and stops at the first failure.
func Validate(raw string) Verdict {
	s := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(s)

	switch {
	case n == 0:
		return reject(ReasonEmpty)
	case n < MinLength:
		return reject(ReasonTooShort)
	case n > MaxLength:
		return reject(ReasonTooLong)
	case digitsOnly.MatchString(s):
		return reject(ReasonNumeric)
	case !letter.MatchString(s):
		return reject(ReasonNoLetters)
	case n == MinLength && !titleCase3.MatchString(s):
		return reject(ReasonShortNotTitleCase)
	}

	if _, ok := tooGeneral[strings.ToLower(s)]; ok {
		return reject(ReasonTooGeneral)
	}
	return Verdict{Valid: true}
}

// IsPlausibleCityName reports whether raw passes every rule.
func IsPlausibleCityName(raw string) bool {
	return Validate(raw).Valid
}

func reject(r Reason) Verdict {
	return Verdict{Valid: false, Reason: r}
}
