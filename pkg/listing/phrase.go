package listing

import (
	"fmt"
	"strings"
	"unicode"
)

// InvalidPhraseError rejects a name that is not a plain phrase.
type InvalidPhraseError struct {
	Phrase string
	Reason string
}

func (e *InvalidPhraseError) Error() string {
	return fmt.Sprintf("invalid phrase %q: %s", e.Phrase, e.Reason)
}

// ValidatePhrase accepts a non-empty phrase made only of letters, numbers,
// spaces and hyphens that is not all whitespace.
func ValidatePhrase(phrase string) error {
	if phrase == "" {
		return &InvalidPhraseError{Phrase: phrase, Reason: "must not be empty"}
	}
	if strings.TrimSpace(phrase) == "" {
		return &InvalidPhraseError{Phrase: phrase, Reason: "must not be blank"}
	}
	for _, r := range phrase {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == ' ' || r == '-' {
			continue
		}
		return &InvalidPhraseError{Phrase: phrase, Reason: fmt.Sprintf("character %q is not allowed", r)}
	}
	return nil
}
