package scheduling

import (
	"time"

	"github.com/spec-kit/agentdesk/internal/domain"
)

// Interval is a half-open [Start, End) span within a single day.
type Interval struct {
	Start domain.TimeOfDay
	End   domain.TimeOfDay
}

// Valid reports whether the interval is non-empty.
func (i Interval) Valid() bool {
	return i.Start < i.End
}

// Overlaps reports whether two half-open intervals share any instant.
// [09:00,10:00) and [10:00,11:00) touch but do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// FilterConflicts keeps the active, non-cancelled appointments on q.Date that
// overlap the candidate slot, skipping q.ExcludeAppointmentID.
func FilterConflicts(q domain.ConflictQuery, candidates []domain.Appointment) []domain.Appointment {
	slot := Interval{Start: q.StartTime, End: q.EndTime}
	out := make([]domain.Appointment, 0, len(candidates))
	for _, a := range candidates {
		if !a.IsActive || a.AgentID != q.AgentID || a.Status == domain.AppointmentStatusCancelled {
			continue
		}
		if q.ExcludeAppointmentID != nil && a.ID == *q.ExcludeAppointmentID {
			continue
		}
		if !a.AppointmentDate.Equal(q.Date.Time) {
			continue
		}
		if Overlaps(slot, Interval{Start: a.StartTime, End: a.EndTime}) {
			out = append(out, a)
		}
	}
	return out
}

// NewConflictReport wraps a conflict list in the report shape.
func NewConflictReport(conflicts []domain.Appointment) domain.ConflictReport {
	if conflicts == nil {
		conflicts = []domain.Appointment{}
	}
	return domain.ConflictReport{
		HasConflicts:  len(conflicts) > 0,
		ConflictCount: len(conflicts),
		Conflicts:     conflicts,
	}
}

// WeekDays returns the seven dates starting at start.
func WeekDays(start domain.Date) []domain.Date {
	days := make([]domain.Date, 7)
	for i := range days {
		days[i] = start.AddDays(i)
	}
	return days
}

// GroupByWeek buckets appointments into the seven days beginning at start.
// Appointments outside the week are dropped.
func GroupByWeek(start domain.Date, appointments []domain.Appointment) []domain.WeekDay {
	days := WeekDays(start)
	out := make([]domain.WeekDay, len(days))
	index := make(map[string]int, len(days))
	for i, d := range days {
		out[i] = domain.WeekDay{Date: d, DayName: d.Weekday().String(), Appointments: []domain.Appointment{}}
		index[d.String()] = i
	}
	for _, a := range appointments {
		if i, ok := index[a.AppointmentDate.String()]; ok {
			out[i].Appointments = append(out[i].Appointments, a)
		}
	}
	return out
}

// MonthBounds returns the first and last day of the given month.
func MonthBounds(year int, month time.Month) (domain.Date, domain.Date) {
	first := domain.NewDate(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
	last := domain.NewDate(first.AddDate(0, 1, -1))
	return first, last
}

// Today returns the current calendar day in loc.
func Today(now time.Time, loc *time.Location) domain.Date {
	if loc == nil {
		loc = time.UTC
	}
	return domain.NewDate(now.In(loc))
}
