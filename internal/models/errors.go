package models

import (
	"sort"
	"strings"
)

// ValidationError carries one message per invalid field so a caller can fix
// everything in a single round trip.
type ValidationError struct {
	Problems map[string]string // field name -> message
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Problems))
	for f := range e.Problems {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, e.Problems[f])
	}
	return strings.Join(parts, "; ")
}
