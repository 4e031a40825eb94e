package forms

import (
	"errors"
	"strings"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/listing"
)

const (
	FieldName   = "name"
	FieldActive = "active"
)

// ItemForm edits a symptom or activity.
type ItemForm struct {
	Name   string
	Active bool

	Errors FieldErrors
}

// NewItemForm returns an empty item editor.
func NewItemForm() *ItemForm { return &ItemForm{} }

func (f *ItemForm) FillIn(it *entry.Item) {
	f.Name = it.Name
	f.Active = it.Active
	f.Errors = nil
}

func (f *ItemForm) Validate() error {
	f.Errors = FieldErrors{}
	if err := listing.ValidatePhrase(strings.TrimSpace(f.Name)); err != nil {
		var invalid *listing.InvalidPhraseError
		if errors.As(err, &invalid) {
			f.Errors[FieldName] = invalid.Reason
		} else {
			f.Errors[FieldName] = err.Error()
		}
	}
	return f.Errors.orNil()
}

func (f *ItemForm) UpdateRecord(it *entry.Item) {
	it.Name = strings.TrimSpace(f.Name)
	it.Active = f.Active
}
