package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/agentdesk/internal/api/http/handlers"
	"github.com/spec-kit/agentdesk/internal/auth"
	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/observability"
	"github.com/spec-kit/agentdesk/internal/repository"
	"github.com/spec-kit/agentdesk/internal/service"
)

const (
	testAgentID  = "6f1c2a9e-3b4d-4e5f-8a7b-1c2d3e4f5a6b"
	testClientID = "0b9f8e7d-6c5b-4a39-8281-7f6e5d4c3b2a"
	missingID    = "11111111-2222-4333-8444-555555555555"
)

type fakeAppointmentRepo struct {
	repository.AppointmentRepository
	created    []domain.AppointmentDraft
	deleted    []string
	patches    []domain.AppointmentPatch
	candidates []domain.Appointment
	queries    []domain.ConflictQuery
}

func (f *fakeAppointmentRepo) Update(_ context.Context, _, _ string, patch domain.AppointmentPatch) (domain.MutationResult, error) {
	f.patches = append(f.patches, patch)
	return domain.MutationResult{Success: true, Message: "Appointment updated successfully"}, nil
}

func (f *fakeAppointmentRepo) FindConflicts(_ context.Context, q domain.ConflictQuery) ([]domain.Appointment, error) {
	f.queries = append(f.queries, q)
	return f.candidates, nil
}

func (f *fakeAppointmentRepo) Create(_ context.Context, _ string, draft domain.AppointmentDraft) (domain.MutationResult, error) {
	f.created = append(f.created, draft)
	return domain.MutationResult{Success: true, ID: "a1b2c3d4-e5f6-4789-8abc-def012345678", Message: "Appointment created successfully"}, nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, _, id string) (domain.MutationResult, error) {
	f.deleted = append(f.deleted, id)
	return domain.MutationResult{Success: false, Message: "Appointment not found or already deleted"}, nil
}

type envelope struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	Error     string         `json:"error"`
	ErrorCode string         `json:"errorCode"`
	Details   map[string]any `json:"details"`
	Data      map[string]any `json:"data"`
}

func newTestApp(t *testing.T, repo *fakeAppointmentRepo, production bool) (*fiber.App, string) {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	clock := service.Clock{Location: time.UTC, Now: func() time.Time {
		return time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC)
	}}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger, metrics, production)})
	RegisterMiddlewares(app, logger, metrics, MiddlewareConfig{Timeout: 5 * time.Second, CORSOrigins: "*"})

	tokens := auth.NewTokenManager("test-secret", 5)
	appointments := service.NewAppointmentService(service.AppointmentDependencies{AppointmentRepo: repo, Clock: clock, Logger: logger})
	analytics := service.NewAnalyticsService(nil, nil, clock)
	notes := service.NewNoteService(nil)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("agentdesk-api", "test", nil, nil, metrics),
		Agents:         handlers.NewAgentsHandler(nil),
		Appointments:   handlers.NewAppointmentsHandler(appointments),
		Clients:        handlers.NewClientsHandler(nil, notes),
		Policies:       handlers.NewPoliciesHandler(nil),
		Reminders:      handlers.NewRemindersHandler(nil),
		Notes:          handlers.NewNotesHandler(notes),
		Search:         handlers.NewSearchHandler(nil),
		Analytics:      handlers.NewAnalyticsHandler(analytics),
		Utility:        handlers.NewUtilityHandler(analytics, clock),
		Notifications:  handlers.NewNotificationsHandler(nil),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, nil),
	})

	token, _, err := tokens.GenerateToken(testAgentID, "agent@example.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return app, token
}

func do(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode %s %s: %v", method, path, err)
	}
	return resp.StatusCode, env
}

func exampleAppointment() map[string]any {
	return map[string]any{
		"clientId":        testClientID,
		"title":           "Policy Review",
		"appointmentDate": "2024-06-01",
		"startTime":       "14:00",
		"endTime":         "15:00",
		"type":            "Meeting",
	}
}

func TestCreateAppointment(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	app, token := newTestApp(t, repo, false)

	status, env := do(t, app, http.MethodPost, "/api/appointments", token, exampleAppointment())
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%+v)", status, env)
	}
	if !env.Success || env.Data["success"] != true {
		t.Fatalf("expected nested success envelope, got %+v", env)
	}
	if env.Data["appointmentId"] == "" || env.Data["appointmentId"] == nil {
		t.Fatalf("expected appointmentId in data, got %+v", env.Data)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one create call, got %d", len(repo.created))
	}
	draft := repo.created[0]
	if draft.Priority != domain.PriorityMedium {
		t.Errorf("expected default priority Medium, got %q", draft.Priority)
	}
	if draft.StartTime != domain.NewTimeOfDay(14, 0, 0) || draft.AppointmentDate.String() != "2024-06-01" {
		t.Errorf("unexpected draft %+v", draft)
	}
}

func TestCreateAppointment_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(map[string]any)
		wantField string
	}{
		{"missing title", func(b map[string]any) { delete(b, "title") }, "title"},
		{"bad client id", func(b map[string]any) { b["clientId"] = "not-a-uuid" }, "clientId"},
		{"bad date", func(b map[string]any) { b["appointmentDate"] = "2024-02-30" }, "appointmentDate"},
		{"bad clock", func(b map[string]any) { b["startTime"] = "25:00" }, "startTime"},
		{"bad type", func(b map[string]any) { b["type"] = "Lunch" }, "type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAppointmentRepo{}
			app, token := newTestApp(t, repo, false)
			body := exampleAppointment()
			tt.mutate(body)

			status, env := do(t, app, http.MethodPost, "/api/appointments", token, body)
			if status != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", status)
			}
			if env.Success || env.ErrorCode != "VALIDATION_FAILED" || env.Error != "Bad Request" {
				t.Fatalf("unexpected envelope %+v", env)
			}
			fields, _ := env.Details["fields"].(map[string]any)
			if _, ok := fields[tt.wantField]; !ok {
				t.Fatalf("expected %s in field details, got %+v", tt.wantField, env.Details)
			}
			if len(repo.created) != 0 {
				t.Fatalf("repository must not be called on invalid input")
			}
		})
	}
}

func TestCreateAppointment_MissingTitleMessage(t *testing.T) {
	app, token := newTestApp(t, &fakeAppointmentRepo{}, false)
	body := exampleAppointment()
	delete(body, "title")

	_, env := do(t, app, http.MethodPost, "/api/appointments", token, body)
	if !strings.Contains(env.Message, "title") {
		t.Fatalf("expected message to name title, got %q", env.Message)
	}
}

func TestUpdateAppointment_PartialValidation(t *testing.T) {
	tests := []struct {
		name      string
		body      map[string]any
		wantField string
		wantMsg   string
	}{
		{"malformed start", map[string]any{"startTime": "9am"}, "startTime", ""},
		{"malformed date", map[string]any{"appointmentDate": "06/01/2024"}, "appointmentDate", ""},
		{"bad priority", map[string]any{"priority": "Urgent"}, "priority", ""},
		{"inverted times", map[string]any{"startTime": "11:00", "endTime": "10:00"}, "", "startTime must be before endTime"},
		{"empty patch", map[string]any{}, "", "No fields provided for update"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAppointmentRepo{}
			app, token := newTestApp(t, repo, false)

			status, env := do(t, app, http.MethodPut, "/api/appointments/"+missingID, token, tt.body)
			if status != http.StatusBadRequest || env.Success {
				t.Fatalf("expected 400, got %d %+v", status, env)
			}
			if tt.wantField != "" {
				fields, _ := env.Details["fields"].(map[string]any)
				if _, ok := fields[tt.wantField]; !ok {
					t.Fatalf("expected %s in field details, got %+v", tt.wantField, env.Details)
				}
			}
			if tt.wantMsg != "" && env.Message != tt.wantMsg {
				t.Fatalf("expected message %q, got %q", tt.wantMsg, env.Message)
			}
			if len(repo.patches) != 0 {
				t.Fatalf("repository must not be called on invalid input")
			}
		})
	}
}

func TestUpdateAppointment_Partial(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	app, token := newTestApp(t, repo, false)

	status, env := do(t, app, http.MethodPut, "/api/appointments/"+missingID, token, map[string]any{"startTime": "09:30"})
	if status != http.StatusOK || !env.Success {
		t.Fatalf("expected 200, got %d %+v", status, env)
	}
	patch := repo.patches[0]
	if patch.StartTime == nil || *patch.StartTime != domain.NewTimeOfDay(9, 30, 0) || patch.EndTime != nil || patch.Title != nil {
		t.Fatalf("expected only startTime in patch, got %+v", patch)
	}
	if len(repo.queries) != 0 {
		t.Fatalf("update must not run the conflict check")
	}
}

func TestCheckConflicts(t *testing.T) {
	day := domain.NewDate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	at := func(h, m int) domain.TimeOfDay { return domain.NewTimeOfDay(h, m, 0) }
	repo := &fakeAppointmentRepo{candidates: []domain.Appointment{
		{ID: "overlap", AgentID: testAgentID, AppointmentDate: day, StartTime: at(14, 30), EndTime: at(15, 30), IsActive: true},
		{ID: "touching", AgentID: testAgentID, AppointmentDate: day, StartTime: at(15, 0), EndTime: at(16, 0), IsActive: true},
		{ID: "cancelled", AgentID: testAgentID, AppointmentDate: day, StartTime: at(14, 0), EndTime: at(15, 0), IsActive: true, Status: domain.AppointmentStatusCancelled},
	}}
	app, token := newTestApp(t, repo, false)

	body := map[string]any{"appointmentDate": "2024-06-01", "startTime": "14:00", "endTime": "15:00"}
	status, env := do(t, app, http.MethodPost, "/api/appointments/check-conflicts", token, body)
	if status != http.StatusOK || !env.Success {
		t.Fatalf("expected 200, got %d %+v", status, env)
	}
	if env.Data["hasConflicts"] != true || env.Data["conflictCount"] != float64(1) {
		t.Fatalf("expected one conflict, got %+v", env.Data)
	}
	conflicts, _ := env.Data["conflicts"].([]any)
	if first, _ := conflicts[0].(map[string]any); first["appointmentId"] != "overlap" {
		t.Fatalf("unexpected conflicts %+v", conflicts)
	}
	if q := repo.queries[0]; q.AgentID != testAgentID || q.Date.String() != "2024-06-01" {
		t.Fatalf("unexpected query %+v", q)
	}

	body["endTime"] = "13:00"
	status, env = do(t, app, http.MethodPost, "/api/appointments/check-conflicts", token, body)
	if status != http.StatusBadRequest || env.Message != "startTime must be before endTime" {
		t.Fatalf("expected 400 for inverted range, got %d %+v", status, env)
	}

	status, env = do(t, app, http.MethodPost, "/api/appointments/check-conflicts", token, map[string]any{"appointmentDate": "2024-06-01"})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing times, got %d", status)
	}
	fields, _ := env.Details["fields"].(map[string]any)
	if _, ok := fields["startTime"]; !ok {
		t.Fatalf("expected startTime in field details, got %+v", env.Details)
	}
}

func TestListPageOutOfRange(t *testing.T) {
	app, token := newTestApp(t, &fakeAppointmentRepo{}, false)
	status, env := do(t, app, http.MethodGet, "/api/appointments?page=99999999", token, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %+v", status, env)
	}
	fields, _ := env.Details["fields"].(map[string]any)
	if _, ok := fields["page"]; !ok {
		t.Fatalf("expected page in field details, got %+v", env.Details)
	}
}

func TestUpdateStatus_InvalidValue(t *testing.T) {
	app, token := newTestApp(t, &fakeAppointmentRepo{}, false)

	status, env := do(t, app, http.MethodPatch, "/api/appointments/"+missingID+"/status", token, map[string]any{"status": "Done"})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	valid, _ := env.Details["validStatuses"].([]any)
	if len(valid) != len(domain.AppointmentStatuses) {
		t.Fatalf("expected valid statuses in details, got %+v", env.Details)
	}
	if !strings.Contains(env.Message, "In Progress") {
		t.Fatalf("expected message to list statuses, got %q", env.Message)
	}
}

func TestDeleteAppointment_NotFound(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	app, token := newTestApp(t, repo, false)

	status, env := do(t, app, http.MethodDelete, "/api/appointments/"+missingID, token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if env.Success || env.ErrorCode != "NOT_FOUND" {
		t.Fatalf("unexpected envelope %+v", env)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != missingID {
		t.Fatalf("expected delete of %s, got %v", missingID, repo.deleted)
	}
}

func TestInvalidPathID(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	app, token := newTestApp(t, repo, false)

	status, env := do(t, app, http.MethodDelete, "/api/appointments/12345", token, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if env.Success || !strings.Contains(env.Message, "appointmentId") {
		t.Fatalf("unexpected envelope %+v", env)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("repository must not be called for an invalid id")
	}
}

func TestAuthRequired(t *testing.T) {
	app, _ := newTestApp(t, &fakeAppointmentRepo{}, false)

	tests := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"garbage token", "abc.def.ghi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := do(t, app, http.MethodGet, "/api/appointments/today", tt.token, nil)
			if status != http.StatusUnauthorized || env.ErrorCode != "UNAUTHORIZED" {
				t.Fatalf("expected 401 UNAUTHORIZED, got %d %+v", status, env)
			}
		})
	}
}

func TestErrorEnvelope_ProductionHidesDetails(t *testing.T) {
	app, token := newTestApp(t, &fakeAppointmentRepo{}, true)
	body := exampleAppointment()
	delete(body, "title")

	status, env := do(t, app, http.MethodPost, "/api/appointments", token, body)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if env.Details != nil {
		t.Fatalf("expected no details in production, got %+v", env.Details)
	}
	if env.Message == "" {
		t.Fatalf("expected a message")
	}
}

func TestUnknownRoute(t *testing.T) {
	app, _ := newTestApp(t, &fakeAppointmentRepo{}, false)

	status, env := do(t, app, http.MethodGet, "/nope", "", nil)
	if status != http.StatusNotFound || env.ErrorCode != "NOT_FOUND" || env.Success {
		t.Fatalf("expected 404 envelope, got %d %+v", status, env)
	}
}

func TestUtilityEndpoints(t *testing.T) {
	app, _ := newTestApp(t, &fakeAppointmentRepo{}, false)

	status, env := do(t, app, http.MethodGet, "/api/utility/time", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if env.Data["today"] != "2024-06-05" || env.Data["weekStart"] != "2024-06-03" || env.Data["weekEnd"] != "2024-06-09" {
		t.Fatalf("unexpected time payload %+v", env.Data)
	}

	status, env = do(t, app, http.MethodPost, "/api/utility/validate", "", map[string]any{
		"uuids": []string{testAgentID, "nope"},
		"times": []string{"09:30", "9:30"},
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	uuids, _ := env.Data["uuids"].([]any)
	if len(uuids) != 2 {
		t.Fatalf("expected two uuid results, got %+v", env.Data)
	}
	if first := uuids[0].(map[string]any); first["valid"] != true {
		t.Errorf("expected first uuid valid")
	}
	if second := uuids[1].(map[string]any); second["valid"] != false {
		t.Errorf("expected second uuid invalid")
	}
	times, _ := env.Data["times"].([]any)
	if second := times[1].(map[string]any); second["valid"] != false {
		t.Errorf("expected 9:30 to be rejected")
	}
}

func TestHealthMetrics(t *testing.T) {
	app, token := newTestApp(t, &fakeAppointmentRepo{}, false)
	do(t, app, http.MethodPost, "/api/appointments", token, exampleAppointment())

	status, env := do(t, app, http.MethodGet, "/health/metrics", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if total, _ := env.Data["totalRequests"].(float64); total < 1 {
		t.Fatalf("expected recorded requests, got %+v", env.Data)
	}

	status, env = do(t, app, http.MethodGet, "/health/ready", "", nil)
	if status != http.StatusServiceUnavailable || env.Success {
		t.Fatalf("expected not ready without stores, got %d %+v", status, env)
	}
}
