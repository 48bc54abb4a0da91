package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/repository"
)

type fakeAppointments struct {
	repository.AppointmentRepository
	mu         sync.Mutex
	byID       map[string]domain.Appointment
	candidates []domain.Appointment
	created    []domain.AppointmentDraft
	updates    int
	statuses   []domain.AppointmentStatus
	result     domain.MutationResult
	conflicts  int
	listed     []domain.Page
	rows       []domain.Appointment
}

func (f *fakeAppointments) Create(_ context.Context, _ string, draft domain.AppointmentDraft) (domain.MutationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, draft)
	return f.result, nil
}

func (f *fakeAppointments) Update(context.Context, string, string, domain.AppointmentPatch) (domain.MutationResult, error) {
	f.updates++
	return f.result, nil
}

func (f *fakeAppointments) UpdateStatus(_ context.Context, _, _ string, status domain.AppointmentStatus) (domain.MutationResult, error) {
	f.statuses = append(f.statuses, status)
	return f.result, nil
}

func (f *fakeAppointments) GetByID(_ context.Context, _, id string) (*domain.Appointment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &a, nil
}

func (f *fakeAppointments) ListInRange(_ context.Context, _ string, start, end domain.Date) ([]domain.Appointment, error) {
	var out []domain.Appointment
	for _, a := range f.byID {
		if !a.AppointmentDate.Before(start.Time) && !a.AppointmentDate.After(end.Time) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) Statistics(context.Context, string, domain.Date) (*domain.AppointmentStatistics, error) {
	return &domain.AppointmentStatistics{Total: len(f.byID)}, nil
}

func (f *fakeAppointments) FindConflicts(context.Context, domain.ConflictQuery) ([]domain.Appointment, error) {
	f.conflicts++
	return f.candidates, nil
}

// List pages over rows and, like count(*) OVER(), reports a total only when the page has rows.
func (f *fakeAppointments) List(_ context.Context, _ string, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	f.listed = append(f.listed, filter.Page)
	off := filter.Page.Offset()
	if off >= len(f.rows) {
		return nil, 0, nil
	}
	end := off + filter.Page.Normalize().Size
	if end > len(f.rows) {
		end = len(f.rows)
	}
	return f.rows[off:end], len(f.rows), nil
}

type fakeAgents struct {
	repository.AgentRepository
	byID    map[string]domain.Agent
	logins  []string
	updates int
}

func (f *fakeAgents) GetByEmail(_ context.Context, email string) (*domain.Agent, error) {
	for _, a := range f.byID {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAgents) Register(_ context.Context, agent *domain.Agent) (domain.MutationResult, error) {
	agent.ID = fmt.Sprintf("agent-%d", len(f.byID)+1)
	f.byID[agent.ID] = *agent
	return domain.MutationResult{Success: true, ID: agent.ID}, nil
}

func (f *fakeAgents) Update(_ context.Context, id string, patch domain.AgentProfilePatch) (domain.MutationResult, error) {
	f.updates++
	a, ok := f.byID[id]
	if !ok {
		return domain.MutationResult{}, nil
	}
	if patch.FirstName != nil {
		a.FirstName = *patch.FirstName
	}
	if patch.Timezone != nil {
		a.Timezone = *patch.Timezone
	}
	f.byID[id] = a
	return domain.MutationResult{Success: true, ID: id}, nil
}

func (f *fakeAgents) UpdatePassword(_ context.Context, id, hash string) (domain.MutationResult, error) {
	a, ok := f.byID[id]
	if !ok {
		return domain.MutationResult{}, nil
	}
	a.PasswordHash = hash
	f.byID[id] = a
	return domain.MutationResult{Success: true, ID: id}, nil
}

func (f *fakeAgents) RecordLogin(_ context.Context, id string) error {
	f.logins = append(f.logins, id)
	return nil
}

func (f *fakeAgents) GetByID(_ context.Context, id string) (*domain.Agent, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &a, nil
}

type fakeOutbox struct {
	repository.OutboxRepository
	mu       sync.Mutex
	enqueued []domain.OutboxMessage
}

func (f *fakeOutbox) Enqueue(_ context.Context, msg *domain.OutboxMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg.ID = "n" + string(rune('0'+len(f.enqueued)))
	f.enqueued = append(f.enqueued, *msg)
	return nil
}

func (f *fakeOutbox) channels() []domain.NotificationChannel {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.NotificationChannel, len(f.enqueued))
	for i, m := range f.enqueued {
		out[i] = m.Channel
	}
	return out
}

type fakeResets struct {
	repository.PasswordResetRepository
	byToken map[string]domain.PasswordResetToken
}

func (f *fakeResets) Create(_ context.Context, agentID, token string, expiresAt time.Time) (domain.MutationResult, error) {
	id := fmt.Sprintf("reset-%d", len(f.byToken)+1)
	f.byToken[token] = domain.PasswordResetToken{ID: id, AgentID: agentID, Token: token, ExpiresAt: expiresAt}
	return domain.MutationResult{Success: true, ID: id}, nil
}

func (f *fakeResets) GetByToken(_ context.Context, token string) (*domain.PasswordResetToken, error) {
	t, ok := f.byToken[token]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &t, nil
}

func (f *fakeResets) MarkUsed(_ context.Context, id string) (domain.MutationResult, error) {
	for token, t := range f.byToken {
		if t.ID != id || t.UsedAt != nil {
			continue
		}
		now := time.Now()
		t.UsedAt = &now
		f.byToken[token] = t
		return domain.MutationResult{Success: true, ID: id}, nil
	}
	return domain.MutationResult{}, nil
}

type fakeClients struct {
	repository.ClientRepository
	drafts       []domain.ClientDraft
	byID         map[string]domain.Client
	birthdayDays []int
	birthdayFrom domain.Date
	result       domain.MutationResult
}

func (f *fakeClients) Create(_ context.Context, _ string, draft domain.ClientDraft) (domain.MutationResult, error) {
	f.drafts = append(f.drafts, draft)
	return f.result, nil
}

func (f *fakeClients) GetByID(_ context.Context, _, id string) (*domain.Client, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &c, nil
}

func (f *fakeClients) Statistics(_ context.Context, _ string, today domain.Date) (*domain.ClientStatistics, error) {
	f.birthdayFrom = today
	return &domain.ClientStatistics{Total: len(f.byID)}, nil
}

func (f *fakeClients) UpcomingBirthdays(_ context.Context, _ string, today domain.Date, days int) ([]domain.Birthday, error) {
	f.birthdayFrom = today
	f.birthdayDays = append(f.birthdayDays, days)
	return nil, nil
}

type fakePolicies struct {
	repository.PolicyRepository
	drafts       []domain.PolicyDraft
	updates      int
	expiringDays []int
}

func (f *fakePolicies) Create(_ context.Context, _ string, draft domain.PolicyDraft) (domain.MutationResult, error) {
	f.drafts = append(f.drafts, draft)
	return domain.MutationResult{Success: true, ID: "policy-1"}, nil
}

func (f *fakePolicies) Update(context.Context, string, string, domain.PolicyPatch) (domain.MutationResult, error) {
	f.updates++
	return domain.MutationResult{Success: true}, nil
}

func (f *fakePolicies) GetByID(context.Context, string, string) (*domain.Policy, error) {
	return nil, pgx.ErrNoRows
}

func (f *fakePolicies) Expiring(_ context.Context, _ string, _ domain.Date, days int) ([]domain.Policy, error) {
	f.expiringDays = append(f.expiringDays, days)
	return nil, nil
}

type dateRange struct {
	start, end domain.Date
}

type fakeReminders struct {
	repository.ReminderRepository
	drafts []domain.ReminderDraft
	ranges []dateRange
}

func (f *fakeReminders) Create(_ context.Context, _ string, draft domain.ReminderDraft) (domain.MutationResult, error) {
	f.drafts = append(f.drafts, draft)
	return domain.MutationResult{Success: true, ID: "rem-1"}, nil
}

func (f *fakeReminders) GetByID(context.Context, string, string) (*domain.Reminder, error) {
	return nil, pgx.ErrNoRows
}

func (f *fakeReminders) ListInRange(_ context.Context, _ string, start, end domain.Date) ([]domain.Reminder, error) {
	f.ranges = append(f.ranges, dateRange{start, end})
	return nil, nil
}

type fakeNotes struct {
	repository.NoteRepository
	limits  []int
	updates int
}

func (f *fakeNotes) Update(context.Context, string, string, domain.NotePatch) (domain.MutationResult, error) {
	f.updates++
	return domain.MutationResult{Success: true}, nil
}

func (f *fakeNotes) GetByID(context.Context, string, string) (*domain.Note, error) {
	return nil, pgx.ErrNoRows
}

func (f *fakeNotes) Search(_ context.Context, _, _ string, limit int) ([]domain.Note, error) {
	f.limits = append(f.limits, limit)
	return nil, nil
}

type recordedSearch struct {
	query string
	count int
}

type fakeSearch struct {
	repository.SearchRepository
	hits         []domain.SearchHit
	limits       []int
	entities     []domain.SearchEntity
	recorded     []recordedSearch
	recentLimits []int
	suggestLimit []int
}

func (f *fakeSearch) Global(_ context.Context, _, _ string, entities []domain.SearchEntity, limit int) ([]domain.SearchHit, error) {
	f.entities = entities
	f.limits = append(f.limits, limit)
	return f.hits, nil
}

func (f *fakeSearch) RecordSearch(_ context.Context, _, query string, count int) error {
	f.recorded = append(f.recorded, recordedSearch{query, count})
	return nil
}

func (f *fakeSearch) Recent(_ context.Context, _ string, limit int) ([]domain.RecentSearch, error) {
	f.recentLimits = append(f.recentLimits, limit)
	return nil, nil
}

func (f *fakeSearch) Autocomplete(_ context.Context, _ repository.AutocompleteKind, _, _ string, limit int) ([]domain.Suggestion, error) {
	f.suggestLimit = append(f.suggestLimit, limit)
	return nil, nil
}

type fakeAnalytics struct {
	repository.AnalyticsRepository
	dashboardDay domain.Date
	ranges       []dateRange
}

func (f *fakeAnalytics) Dashboard(_ context.Context, _ string, today domain.Date) (*domain.DashboardOverview, error) {
	f.dashboardDay = today
	return &domain.DashboardOverview{TotalClients: 3}, nil
}

func (f *fakeAnalytics) Appointments(_ context.Context, _ string, start, end domain.Date) (*domain.AppointmentAnalytics, error) {
	f.ranges = append(f.ranges, dateRange{start, end})
	return &domain.AppointmentAnalytics{StartDate: start, EndDate: end}, nil
}
