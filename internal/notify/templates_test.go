package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/agentdesk/internal/domain"
)

func TestRenderTemplates(t *testing.T) {
	date := domain.NewDate(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	at := domain.NewTimeOfDay(9, 30, 0)

	tests := []struct {
		name        string
		data        any
		wantSubject string
		wantBody    []string
	}{
		{
			name:        TemplateWelcome,
			data:        WelcomeData{FirstName: "Asha", Email: "asha@example.com"},
			wantSubject: "Welcome to AgentDesk, Asha",
			wantBody:    []string{"asha@example.com"},
		},
		{
			name: TemplateAppointmentCreated,
			data: AppointmentCreatedData{
				AgentName: "Asha Rao",
				Appointment: domain.Appointment{
					Title:           "Policy review",
					Type:            domain.AppointmentTypePolicyReview,
					Priority:        domain.PriorityHigh,
					AppointmentDate: date,
					StartTime:       domain.NewTimeOfDay(9, 0, 0),
					EndTime:         domain.NewTimeOfDay(10, 0, 0),
					ClientName:      "Ravi Kumar",
				},
				Week: []domain.WeekDay{{Date: date, DayName: "Monday", Appointments: []domain.Appointment{{}}}},
			},
			wantSubject: "Appointment scheduled: Policy review",
			wantBody:    []string{"Mon, 04 Mar 2024 09:00-10:00", "Client: Ravi Kumar", "Monday Mon, 04 Mar 2024: 1 appointment(s)"},
		},
		{
			name: TemplateReminderDue,
			data: ReminderDueData{Reminder: domain.DueReminder{
				Reminder: domain.Reminder{
					Title:        "Call about renewal",
					ReminderType: domain.ReminderTypeCall,
					ReminderDate: date,
					ReminderTime: &at,
					ClientName:   "Ravi Kumar",
				},
				ClientPhone: "+15550100",
			}},
			wantSubject: "Reminder: Call about renewal",
			wantBody:    []string{"at 09:30", "Client: Ravi Kumar (+15550100)"},
		},
		{
			name: TemplateBirthdayDigest,
			data: BirthdayDigestData{AgentName: "Asha", Birthdays: []domain.Birthday{
				{ClientName: "Ravi Kumar", Age: 40, Phone: "+15550100"},
			}},
			wantSubject: "1 client birthday(s) today",
			wantBody:    []string{"Ravi Kumar turns 40 - +15550100"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.name, tt.data)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if got.Subject != tt.wantSubject {
				t.Errorf("subject = %q, want %q", got.Subject, tt.wantSubject)
			}
			for _, fragment := range tt.wantBody {
				if !strings.Contains(got.Body, fragment) {
					t.Errorf("body missing %q:\n%s", fragment, got.Body)
				}
			}
		})
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, err := Render("nope", nil); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}
