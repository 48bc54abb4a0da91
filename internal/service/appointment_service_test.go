package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/events"
	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

const testAgent = "3f2b8c1e-9a4d-4e6f-8b2a-1c3d5e7f9a0b"

func testClock() Clock {
	now := time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC)
	return Clock{Location: time.UTC, Now: func() time.Time { return now }}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected a domain error, got %v", err)
	}
	return de.HTTPStatus
}

func validDraft() domain.AppointmentDraft {
	return domain.AppointmentDraft{
		Title:     "Review",
		StartTime: domain.NewTimeOfDay(14, 0, 0),
		EndTime:   domain.NewTimeOfDay(15, 0, 0),
	}
}

func TestAppointmentCreateDefaultsAndPublishes(t *testing.T) {
	repo := &fakeAppointments{result: domain.MutationResult{Success: true, ID: "appt-1", Message: "created"}}
	dispatcher := events.NewInMemoryDispatcher(nil)
	got := make(chan events.Event, 1)
	dispatcher.Subscribe(events.EventAppointmentCreated, func(_ context.Context, e events.Event) error {
		got <- e
		return errors.New("mail server down")
	})

	svc := NewAppointmentService(AppointmentDependencies{AppointmentRepo: repo, Dispatcher: dispatcher, Clock: testClock()})
	res, err := svc.Create(context.Background(), testAgent, validDraft())
	if err != nil {
		t.Fatalf("create should not fail when notification fails: %v", err)
	}
	dispatcher.Wait()

	if !res.Success || res.ID != "appt-1" {
		t.Fatalf("unexpected result %+v", res)
	}
	if repo.created[0].Priority != domain.PriorityMedium {
		t.Fatalf("expected default Medium priority, got %q", repo.created[0].Priority)
	}
	e := <-got
	if payload := e.Payload.(events.AppointmentCreatedPayload); payload.AppointmentID != "appt-1" || e.AgentID != testAgent {
		t.Fatalf("unexpected event %+v", e)
	}
}

func TestAppointmentCreateFailureSkipsNotification(t *testing.T) {
	repo := &fakeAppointments{result: domain.MutationResult{Success: false, Message: "client not found"}}
	dispatcher := events.NewInMemoryDispatcher(nil)
	called := false
	dispatcher.Subscribe(events.EventAppointmentCreated, func(context.Context, events.Event) error {
		called = true
		return nil
	})
	svc := NewAppointmentService(AppointmentDependencies{AppointmentRepo: repo, Dispatcher: dispatcher})
	res, err := svc.Create(context.Background(), testAgent, validDraft())
	dispatcher.Wait()
	if err != nil || res.Success {
		t.Fatalf("expected unsuccessful result without error, got %+v %v", res, err)
	}
	if called {
		t.Fatalf("no event expected for a failed create")
	}
}

func TestAppointmentUpdateRejectsEmptyPatch(t *testing.T) {
	repo := &fakeAppointments{}
	svc := NewAppointmentService(AppointmentDependencies{AppointmentRepo: repo})
	_, err := svc.Update(context.Background(), testAgent, "appt-1", domain.AppointmentPatch{})
	if statusOf(t, err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty patch")
	}
	if repo.updates != 0 {
		t.Fatalf("repository must not be called for an empty patch")
	}
}

func TestAppointmentRejectsInvertedTimes(t *testing.T) {
	at := func(h int) *domain.TimeOfDay { v := domain.NewTimeOfDay(h, 0, 0); return &v }
	repo := &fakeAppointments{result: domain.MutationResult{Success: true}}
	svc := NewAppointmentService(AppointmentDependencies{AppointmentRepo: repo})

	draft := validDraft()
	draft.StartTime, draft.EndTime = draft.EndTime, draft.StartTime
	_, err := svc.Create(context.Background(), testAgent, draft)
	if statusOf(t, err) != http.StatusBadRequest || err.Error() != "startTime must be before endTime" {
		t.Fatalf("expected start/end validation error, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("repository must not be called for an inverted range")
	}

	tests := []struct {
		name    string
		patch   domain.AppointmentPatch
		wantErr bool
	}{
		{"inverted", domain.AppointmentPatch{StartTime: at(11), EndTime: at(10)}, true},
		{"equal", domain.AppointmentPatch{StartTime: at(10), EndTime: at(10)}, true},
		{"ordered", domain.AppointmentPatch{StartTime: at(9), EndTime: at(10)}, false},
		{"start only", domain.AppointmentPatch{StartTime: at(23)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := repo.updates
			_, err := svc.Update(context.Background(), testAgent, "appt-1", tt.patch)
			if tt.wantErr {
				if statusOf(t, err) != http.StatusBadRequest || repo.updates != before {
					t.Fatalf("expected 400 without calling the repository")
				}
				return
			}
			if err != nil || repo.updates != before+1 {
				t.Fatalf("expected update to pass, got %v", err)
			}
		})
	}
}

func TestAppointmentUpdateSkipsConflictCheck(t *testing.T) {
	day := domain.NewDate(time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))
	start, end := domain.NewTimeOfDay(9, 0, 0), domain.NewTimeOfDay(10, 0, 0)
	repo := &fakeAppointments{
		result:     domain.MutationResult{Success: true, ID: "appt-1"},
		candidates: []domain.Appointment{{ID: "other", AppointmentDate: day, StartTime: start, EndTime: end, IsActive: true}},
	}
	svc := NewAppointmentService(AppointmentDependencies{AppointmentRepo: repo})
	res, err := svc.Update(context.Background(), testAgent, "appt-1", domain.AppointmentPatch{AppointmentDate: &day, StartTime: &start, EndTime: &end})
	if err != nil || !res.Success {
		t.Fatalf("expected overlapping update to succeed, got %+v %v", res, err)
	}
	if repo.conflicts != 0 {
		t.Fatalf("update must not run the conflict check, ran %d times", repo.conflicts)
	}
}

func TestAppointmentListPastLastPageKeepsTotal(t *testing.T) {
	rows := make([]domain.Appointment, 5)
	for i := range rows {
		rows[i].ID = string(rune('a' + i))
	}
	repo := &fakeAppointments{rows: rows}
	svc := NewAppointmentService(AppointmentDependencies{AppointmentRepo: repo})

	items, page, err := svc.List(context.Background(), testAgent, domain.AppointmentFilter{Page: domain.Page{Number: 9, Size: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected an empty non-nil page, got %v", items)
	}
	if page.Total != 5 || page.TotalPages != 3 || page.Page != 9 {
		t.Fatalf("unexpected pagination %+v", page)
	}

	repo.listed = nil
	if _, page, _ = svc.List(context.Background(), testAgent, domain.AppointmentFilter{Page: domain.Page{Number: 2, Size: 2}}); page.Total != 5 {
		t.Fatalf("expected total 5, got %+v", page)
	}
	if len(repo.listed) != 1 {
		t.Fatalf("a page with rows needs one query, got %d", len(repo.listed))
	}
}

func TestAppointmentUpdateStatus(t *testing.T) {
	tests := []struct {
		status  domain.AppointmentStatus
		wantErr bool
	}{
		{domain.AppointmentStatusConfirmed, false},
		{domain.AppointmentStatusInProgress, false},
		{"Done", true},
		{"scheduled", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			repo := &fakeAppointments{result: domain.MutationResult{Success: true}}
			svc := NewAppointmentService(AppointmentDependencies{AppointmentRepo: repo})
			_, err := svc.UpdateStatus(context.Background(), testAgent, "appt-1", tt.status)
			if !tt.wantErr {
				if err != nil || len(repo.statuses) != 1 {
					t.Fatalf("expected status update to pass, got %v", err)
				}
				return
			}
			if statusOf(t, err) != http.StatusBadRequest {
				t.Fatalf("expected 400")
			}
			var de *apperrors.DomainError
			errors.As(err, &de)
			if valid, ok := de.Details["validStatuses"].([]string); !ok || len(valid) != len(domain.AppointmentStatuses) {
				t.Fatalf("expected valid statuses in details, got %+v", de.Details)
			}
			if len(repo.statuses) != 0 {
				t.Fatalf("repository must not be called for an invalid status")
			}
		})
	}
}

func TestAppointmentGetNotFound(t *testing.T) {
	svc := NewAppointmentService(AppointmentDependencies{AppointmentRepo: &fakeAppointments{}})
	_, err := svc.Get(context.Background(), testAgent, "missing")
	if statusOf(t, err) != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
}

func TestCheckConflicts(t *testing.T) {
	day := domain.NewDate(time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))
	at := func(h, m int) domain.TimeOfDay { return domain.NewTimeOfDay(h, m, 0) }
	repo := &fakeAppointments{candidates: []domain.Appointment{
		{ID: "touching", AgentID: testAgent, AppointmentDate: day, StartTime: at(10, 0), EndTime: at(11, 0), IsActive: true},
		{ID: "overlap", AgentID: testAgent, AppointmentDate: day, StartTime: at(9, 30), EndTime: at(10, 15), IsActive: true},
		{ID: "self", AgentID: testAgent, AppointmentDate: day, StartTime: at(9, 0), EndTime: at(10, 0), IsActive: true},
	}}
	svc := NewAppointmentService(AppointmentDependencies{AppointmentRepo: repo})

	self := "self"
	report, err := svc.CheckConflicts(context.Background(), domain.ConflictQuery{
		AgentID: testAgent, Date: day, StartTime: at(9, 0), EndTime: at(10, 0), ExcludeAppointmentID: &self,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.HasConflicts || report.ConflictCount != 1 || report.Conflicts[0].ID != "overlap" {
		t.Fatalf("unexpected report %+v", report)
	}

	_, err = svc.CheckConflicts(context.Background(), domain.ConflictQuery{AgentID: testAgent, Date: day, StartTime: at(10, 0), EndTime: at(10, 0)})
	if statusOf(t, err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty interval")
	}
}

func TestAppointmentCalendarValidatesMonth(t *testing.T) {
	svc := NewAppointmentService(AppointmentDependencies{AppointmentRepo: &fakeAppointments{}})
	if _, err := svc.Calendar(context.Background(), testAgent, 2024, 13); statusOf(t, err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for month 13")
	}
}

func TestAppointmentWeekDefaultsToCurrentMonday(t *testing.T) {
	monday := domain.NewDate(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	repo := &fakeAppointments{byID: map[string]domain.Appointment{
		"wed": {ID: "wed", AppointmentDate: monday.AddDays(2)},
	}}
	svc := NewAppointmentService(AppointmentDependencies{AppointmentRepo: repo, Clock: testClock()})
	week, err := svc.Week(context.Background(), testAgent, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(week) != 7 || week[0].Date.String() != "2024-06-03" || len(week[2].Appointments) != 1 {
		t.Fatalf("unexpected week %+v", week)
	}
}
