package models

import (
	"errors"
	"math"
)

// MaxTextLength caps notes and comments.
const MaxTextLength = 500

// Field validators shared by resource creation and partial updates. Each takes
// a decoded JSON value (numbers arrive as float64) and returns the normalized
// value to persist.

var (
	errPriceType     = errors.New("price must be a number")
	errPriceNegative = errors.New("price must be zero or greater")
	errRatingType    = errors.New("rating must be a number")
	errRatingRange   = errors.New("rating must be a whole number between 1 and 5")
	errNotesType     = errors.New("notes must be a string")
	errNotesLength   = errors.New("notes must be at most 500 characters")
	errCommentType   = errors.New("comment must be a string")
	errCommentLength = errors.New("comment must be at most 500 characters")
	errImagePathType = errors.New("imagePath must be a string")
)

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func ValidatePrice(v any) (float64, error) {
	n, ok := asNumber(v)
	if !ok {
		return 0, errPriceType
	}
	if n < 0 {
		return 0, errPriceNegative
	}
	return n, nil
}

// ValidateRating accepts only whole numbers in [1,5]; fractional values such
// as 5.5 are rejected.
func ValidateRating(v any) (int, error) {
	n, ok := asNumber(v)
	if !ok {
		return 0, errRatingType
	}
	if n != math.Trunc(n) || n < 1 || n > 5 {
		return 0, errRatingRange
	}
	return int(n), nil
}

func ValidateNotes(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errNotesType
	}
	if len(s) > MaxTextLength {
		return "", errNotesLength
	}
	return s, nil
}

func ValidateComment(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errCommentType
	}
	if len(s) > MaxTextLength {
		return "", errCommentLength
	}
	return s, nil
}

func ValidateImagePath(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errImagePathType
	}
	return s, nil
}
