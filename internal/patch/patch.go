// Package patch implements the partial-update contract shared by the
// saved-trip and review resources: a fixed allow-list of updatable fields per
// resource type, value validation with the same rules used at creation, and an
// ownership check against the acting identity. Authorize is a pure decision
// function so the policy can be tested without a live store; persistence of
// the resulting document is the caller's job.
package patch

import (
	"errors"
	"sort"
	"strings"

	"github.com/wayfareapp/wayfare-backend/internal/models"
)

var (
	// ErrEmptyUpdate is returned when the request names no fields at all.
	ErrEmptyUpdate = errors.New("no fields to update")

	// ErrForbidden is returned when the acting identity is not the resource
	// owner.
	ErrForbidden = errors.New("resource belongs to another user")
)

// InvalidFieldsError names every requested field outside the allow-list, not
// just the first one found.
type InvalidFieldsError struct {
	Fields []string // sorted
}

func (e *InvalidFieldsError) Error() string {
	return "fields cannot be updated: " + strings.Join(e.Fields, ", ")
}

// Field describes one updatable field of a resource type.
type Field struct {
	// Key is the storage key written on success.
	Key string
	// Validate checks a decoded JSON value and returns the normalized value
	// to persist.
	Validate func(any) (any, error)
}

// Policy is the fixed update contract for one resource type.
type Policy struct {
	Fields map[string]Field
}

// Authorize gates a partial-update request. Checks run in order: the request
// must be non-empty, every requested field must be in the allow-list, every
// value must pass the field's validator, and the acting identity must match
// the resource owner. On success it returns the normalized storage document
// ready for a single $set write; fields not named in the request are never
// touched.
func (p Policy) Authorize(fields map[string]any, ownerID, actorID string) (map[string]any, error) {
	if len(fields) == 0 {
		return nil, ErrEmptyUpdate
	}

	var disallowed []string
	for name := range fields {
		if _, ok := p.Fields[name]; !ok {
			disallowed = append(disallowed, name)
		}
	}
	if len(disallowed) > 0 {
		sort.Strings(disallowed)
		return nil, &InvalidFieldsError{Fields: disallowed}
	}

	set := make(map[string]any, len(fields))
	problems := make(map[string]string)
	for name, value := range fields {
		f := p.Fields[name]
		normalized, err := f.Validate(value)
		if err != nil {
			problems[name] = err.Error()
			continue
		}
		set[f.Key] = normalized
	}
	if len(problems) > 0 {
		return nil, &models.ValidationError{Problems: problems}
	}

	if actorID != ownerID {
		return nil, ErrForbidden
	}

	return set, nil
}

// TripPolicy returns the update contract for saved trips: only notes,
// imagePath and price may change.
func TripPolicy() Policy {
	return Policy{Fields: map[string]Field{
		"notes":     {Key: "notes", Validate: func(v any) (any, error) { return models.ValidateNotes(v) }},
		"imagePath": {Key: "image_path", Validate: func(v any) (any, error) { return models.ValidateImagePath(v) }},
		"price":     {Key: "price", Validate: func(v any) (any, error) { return models.ValidatePrice(v) }},
	}}
}

// ReviewPolicy returns the update contract for reviews: only rating and
// comment may change.
func ReviewPolicy() Policy {
	return Policy{Fields: map[string]Field{
		"rating":  {Key: "rating", Validate: func(v any) (any, error) { return models.ValidateRating(v) }},
		"comment": {Key: "comment", Validate: func(v any) (any, error) { return models.ValidateComment(v) }},
	}}
}
