package notify

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/spec-kit/agentdesk/internal/domain"
)

// Template names stored on outbox rows.
const (
	TemplateWelcome            = "welcome"
	TemplateLoginAlert         = "login_alert"
	TemplatePasswordReset      = "password_reset"
	TemplateAppointmentCreated = "appointment_created"
	TemplateReminderDue        = "reminder_due"
	TemplateBirthdayDigest     = "birthday_digest"
)

type messageTemplate struct {
	subject *template.Template
	body    *template.Template
}

var funcs = template.FuncMap{
	"date": func(d domain.Date) string {
		if d.IsZero() {
			return ""
		}
		return d.Format("Mon, 02 Jan 2006")
	},
	"timestamp": func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04 MST") },
	"upper":     strings.ToUpper,
}

var sources = map[string][2]string{
	TemplateWelcome: {
		`Welcome to AgentDesk, {{.FirstName}}`,
		`Hi {{.FirstName}},

Your AgentDesk account for {{.Email}} is ready. Add your first clients and
appointments to start building your schedule.
`,
	},
	TemplateLoginAlert: {
		`New sign-in to your AgentDesk account`,
		`Hi {{.FirstName}},

We noticed a sign-in to your account at {{timestamp .At}}.
{{- if .IPAddress}}
IP address: {{.IPAddress}}{{end}}
{{- if .UserAgent}}
Device: {{.UserAgent}}{{end}}

If this was not you, reset your password immediately.
`,
	},
	TemplatePasswordReset: {
		`Reset your AgentDesk password`,
		`Hi {{.FirstName}},

Use this code to reset your password: {{.Token}}
The code expires at {{timestamp .ExpiresAt}}.
`,
	},
	TemplateAppointmentCreated: {
		`Appointment scheduled: {{.Appointment.Title}}`,
		`Hi {{.AgentName}},

{{.Appointment.Title}} ({{.Appointment.Type}}, {{.Appointment.Priority}} priority)
{{date .Appointment.AppointmentDate}} {{.Appointment.StartTime}}-{{.Appointment.EndTime}}
{{- if .Appointment.ClientName}}
Client: {{.Appointment.ClientName}}{{end}}
{{- if .Appointment.Location}}
Location: {{.Appointment.Location}}{{end}}

Your week:
{{- range .Week}}
  {{.DayName}} {{date .Date}}: {{len .Appointments}} appointment(s)
{{- end}}
{{- with .Statistics}}

Upcoming: {{.Upcoming}}  Today: {{.Today}}  This week: {{.ThisWeek}}
{{- end}}
`,
	},
	TemplateReminderDue: {
		`Reminder: {{.Reminder.Title}}`,
		`{{.Reminder.ReminderType}} reminder for {{date .Reminder.ReminderDate}}{{with .Reminder.ReminderTime}} at {{.}}{{end}}: {{.Reminder.Title}}
{{- if .Reminder.ClientName}}
Client: {{.Reminder.ClientName}}{{if .Reminder.ClientPhone}} ({{.Reminder.ClientPhone}}){{end}}{{end}}
{{- if .Reminder.Description}}
{{.Reminder.Description}}{{end}}
`,
	},
	TemplateBirthdayDigest: {
		`{{len .Birthdays}} client birthday(s) today`,
		`Hi {{.AgentName}},

These clients celebrate today:
{{- range .Birthdays}}
  {{.ClientName}} turns {{.Age}}{{if .Phone}} - {{.Phone}}{{end}}
{{- end}}
`,
	},
}

var templates = mustParse(sources)

func mustParse(src map[string][2]string) map[string]messageTemplate {
	out := make(map[string]messageTemplate, len(src))
	for name, parts := range src {
		out[name] = messageTemplate{
			subject: template.Must(template.New(name + ".subject").Funcs(funcs).Option("missingkey=error").Parse(parts[0])),
			body:    template.Must(template.New(name + ".body").Funcs(funcs).Option("missingkey=error").Parse(parts[1])),
		}
	}
	return out
}

// Rendered is a subject and body produced from a template.
type Rendered struct {
	Subject string
	Body    string
}

// Render executes the named template against data.
func Render(name string, data any) (Rendered, error) {
	tmpl, ok := templates[name]
	if !ok {
		return Rendered{}, fmt.Errorf("unknown notification template %q", name)
	}
	var subject, body bytes.Buffer
	if err := tmpl.subject.Execute(&subject, data); err != nil {
		return Rendered{}, fmt.Errorf("render %s subject: %w", name, err)
	}
	if err := tmpl.body.Execute(&body, data); err != nil {
		return Rendered{}, fmt.Errorf("render %s body: %w", name, err)
	}
	return Rendered{Subject: strings.TrimSpace(subject.String()), Body: body.String()}, nil
}

// WelcomeData feeds TemplateWelcome.
type WelcomeData struct {
	FirstName string
	Email     string
}

// LoginAlertData feeds TemplateLoginAlert.
type LoginAlertData struct {
	FirstName string
	At        time.Time
	IPAddress string
	UserAgent string
}

// PasswordResetData feeds TemplatePasswordReset.
type PasswordResetData struct {
	FirstName string
	Token     string
	ExpiresAt time.Time
}

// AppointmentCreatedData feeds TemplateAppointmentCreated.
type AppointmentCreatedData struct {
	AgentName   string
	Appointment domain.Appointment
	Week        []domain.WeekDay
	Statistics  *domain.AppointmentStatistics
}

// ReminderDueData feeds TemplateReminderDue.
type ReminderDueData struct {
	Reminder domain.DueReminder
}

// BirthdayDigestData feeds TemplateBirthdayDigest.
type BirthdayDigestData struct {
	AgentName string
	Birthdays []domain.Birthday
}
