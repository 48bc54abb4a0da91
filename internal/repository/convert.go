package repository

import (
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/spec-kit/agentdesk/internal/domain"
)

const microsPerSecond = int64(time.Second / time.Microsecond)

func dateParam(d domain.Date) pgtype.Date {
	return pgtype.Date{Time: d.Time, Valid: !d.IsZero()}
}

func optDateParam(d *domain.Date) pgtype.Date {
	if d == nil {
		return pgtype.Date{}
	}
	return dateParam(*d)
}

func clockParam(t domain.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: int64(t) * microsPerSecond, Valid: true}
}

func optClockParam(t *domain.TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return clockParam(*t)
}

func fromPgDate(d pgtype.Date) domain.Date {
	if !d.Valid {
		return domain.Date{}
	}
	return domain.NewDate(d.Time)
}

func fromPgDatePtr(d pgtype.Date) *domain.Date {
	if !d.Valid {
		return nil
	}
	out := domain.NewDate(d.Time)
	return &out
}

func fromPgTime(t pgtype.Time) domain.TimeOfDay {
	return domain.TimeOfDay(t.Microseconds / microsPerSecond)
}

func fromPgTimePtr(t pgtype.Time) *domain.TimeOfDay {
	if !t.Valid {
		return nil
	}
	out := fromPgTime(t)
	return &out
}

// text converts a string-kinded pointer into a nullable text argument.
func text[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

// nullIfBlank maps blank filter strings to SQL NULL.
func nullIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func nullIfBlankPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return nullIfBlank(*s)
}

func tagsParam(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
