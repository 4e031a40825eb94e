package entry

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind names a family of auxiliary list items.
type Kind string

const (
	KindSymptom  Kind = "symptom"
	KindActivity Kind = "activity"
)

// Kinds lists every supported item kind in display order.
func Kinds() []Kind {
	return []Kind{KindSymptom, KindActivity}
}

// ParseKind accepts singular or plural kind names.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "symptom", "symptoms":
		return KindSymptom, nil
	case "activity", "activities":
		return KindActivity, nil
	}
	return "", fmt.Errorf("unknown item kind %q", s)
}

// Plural is the label used for list headings.
func (k Kind) Plural() string {
	switch k {
	case KindActivity:
		return "Activities"
	case KindSymptom:
		return "Symptoms"
	}
	return string(k)
}

// Item is an auxiliary record (a symptom type, an activity) that entries can
// reference. Inactive items are soft-deleted: they stay in the store.
type Item struct {
	ID     string `json:"id"`
	Kind   Kind   `json:"kind"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// NewItem returns a blank, active item with a fresh id. It is not persisted.
func NewItem(kind Kind) *Item {
	return &Item{
		ID:     uuid.NewString(),
		Kind:   kind,
		Active: true,
	}
}

func (i *Item) String() string {
	if i.Active {
		return i.Name
	}
	return i.Name + " (inactive)"
}
