// Package forms holds the concrete editors used with the edit workflow.
// Each form keeps its field values as plain strings, the way a text input
// would hand them over, and records per-field problems in FieldErrors.
package forms

import (
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps a field name to a message for the user.
type FieldErrors map[string]string

// Error lists the failed fields in a stable order.
func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fe[k]))
	}
	return strings.Join(parts, "; ")
}

func (fe FieldErrors) orNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}
