package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Errors maps a field name to its violation messages, in rule order.
type Errors map[string][]string

// Add appends a message for field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Merge appends every message of other into e.
func (e Errors) Merge(other Errors) {
	for field, msgs := range other {
		e[field] = append(e[field], msgs...)
	}
}

// Any reports whether at least one violation was recorded.
func (e Errors) Any() bool {
	return len(e) > 0
}

// Has reports whether field has at least one violation.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s %s", f, strings.Join(e[f], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
