package dto

import (
	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/validation"
)

// Request structs are validated before conversion, so parse failures here
// only surface when a caller skips validation.

func optDate(s *string) (*domain.Date, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := validation.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func optClock(s *string) (*domain.TimeOfDay, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := validation.ParseClock(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func optEnum[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonBlank(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
