package service

import (
	"strings"

	"taskboard/internal/apperror"
)

// Validation errors
var (
	ErrEmptyName     = apperror.ValidationWithDetails("name cannot be empty", map[string]string{"name": "is required"})
	ErrEmptyTitle    = apperror.ValidationWithDetails("title cannot be empty", map[string]string{"title": "is required"})
	ErrNegativeIndex = apperror.ValidationWithDetails("position cannot be negative", map[string]string{"position": "must be greater than or equal to 0"})
)

// requireText trims s and fails with empty when nothing is left.
func requireText(s string, empty error) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", empty
	}
	return s, nil
}

func checkPosition(position *int) error {
	if position != nil && *position < 0 {
		return ErrNegativeIndex
	}
	return nil
}
