package scheduling

import (
	"testing"
	"time"

	"github.com/spec-kit/agentdesk/internal/domain"
)

func clock(h, m int) domain.TimeOfDay { return domain.NewTimeOfDay(h, m, 0) }

func TestOverlaps(t *testing.T) {
	base := Interval{Start: clock(9, 0), End: clock(10, 0)}
	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"partial overlap", Interval{Start: clock(9, 30), End: clock(10, 30)}, true},
		{"touching end", Interval{Start: clock(10, 0), End: clock(11, 0)}, false},
		{"touching start", Interval{Start: clock(8, 0), End: clock(9, 0)}, false},
		{"contained", Interval{Start: clock(9, 15), End: clock(9, 45)}, true},
		{"containing", Interval{Start: clock(8, 0), End: clock(11, 0)}, true},
		{"identical", base, true},
		{"disjoint", Interval{Start: clock(13, 0), End: clock(14, 0)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(base, tt.other); got != tt.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", base, tt.other, got, tt.want)
			}
			if got := Overlaps(tt.other, base); got != tt.want {
				t.Fatalf("overlap must be symmetric for %s", tt.name)
			}
		})
	}
}

func TestFilterConflicts(t *testing.T) {
	agent := "3f2b8c1e-9a4d-4e6f-8b2a-1c3d5e7f9a0b"
	day := domain.NewDate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	existing := []domain.Appointment{
		{ID: "a1", AgentID: agent, AppointmentDate: day, StartTime: clock(9, 0), EndTime: clock(10, 0), IsActive: true},
		{ID: "a2", AgentID: agent, AppointmentDate: day, StartTime: clock(10, 0), EndTime: clock(11, 0), IsActive: true},
		{ID: "a3", AgentID: agent, AppointmentDate: day, StartTime: clock(9, 30), EndTime: clock(9, 45), IsActive: false},
		{ID: "a4", AgentID: agent, AppointmentDate: day.AddDays(1), StartTime: clock(9, 0), EndTime: clock(10, 0), IsActive: true},
		{ID: "a5", AgentID: agent, AppointmentDate: day, StartTime: clock(9, 0), EndTime: clock(12, 0), IsActive: true, Status: domain.AppointmentStatusCancelled},
	}

	q := domain.ConflictQuery{AgentID: agent, Date: day, StartTime: clock(9, 30), EndTime: clock(10, 30)}
	got := FilterConflicts(q, existing)
	if len(got) != 2 || got[0].ID != "a1" || got[1].ID != "a2" {
		t.Fatalf("expected a1 and a2, got %+v", got)
	}

	exclude := "a1"
	q = domain.ConflictQuery{AgentID: agent, Date: day, StartTime: clock(9, 0), EndTime: clock(10, 0), ExcludeAppointmentID: &exclude}
	if got := FilterConflicts(q, existing); len(got) != 0 {
		t.Fatalf("expected no conflicts once a1 is excluded, got %+v", got)
	}

	report := NewConflictReport(nil)
	if report.HasConflicts || report.ConflictCount != 0 || report.Conflicts == nil {
		t.Fatalf("unexpected empty report %+v", report)
	}
}

func TestGroupByWeek(t *testing.T) {
	monday := domain.NewDate(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	appts := []domain.Appointment{
		{ID: "mon", AppointmentDate: monday},
		{ID: "sun", AppointmentDate: monday.AddDays(6)},
		{ID: "next", AppointmentDate: monday.AddDays(7)},
	}
	week := GroupByWeek(monday, appts)
	if len(week) != 7 {
		t.Fatalf("expected 7 days, got %d", len(week))
	}
	if week[0].DayName != "Monday" || len(week[0].Appointments) != 1 {
		t.Fatalf("unexpected monday bucket %+v", week[0])
	}
	if week[6].DayName != "Sunday" || len(week[6].Appointments) != 1 {
		t.Fatalf("unexpected sunday bucket %+v", week[6])
	}
	if week[3].Appointments == nil {
		t.Fatalf("empty days should carry an empty slice")
	}
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(2024, time.February)
	if first.String() != "2024-02-01" || last.String() != "2024-02-29" {
		t.Fatalf("unexpected bounds %s..%s", first, last)
	}
}

func TestStartOfWeek(t *testing.T) {
	sunday := domain.NewDate(time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC))
	if got := sunday.StartOfWeek().String(); got != "2024-06-03" {
		t.Fatalf("expected 2024-06-03, got %s", got)
	}
}
