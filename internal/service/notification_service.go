package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/agentdesk/internal/config"
	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/events"
	"github.com/spec-kit/agentdesk/internal/notify"
	"github.com/spec-kit/agentdesk/internal/repository"
	"github.com/spec-kit/agentdesk/internal/scheduling"
)

// NotificationService turns domain events into outbox rows.
type NotificationService struct {
	dispatcher   events.Dispatcher
	outbox       repository.OutboxRepository
	agents       repository.AgentRepository
	appointments repository.AppointmentRepository
	clock        Clock
	logger       *zap.Logger
	cfg          config.NotificationConfig
}

// NotificationDependencies bundles collaborators for the notification service.
type NotificationDependencies struct {
	Dispatcher      events.Dispatcher
	OutboxRepo      repository.OutboxRepository
	AgentRepo       repository.AgentRepository
	AppointmentRepo repository.AppointmentRepository
	Clock           Clock
	Logger          *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(cfg config.NotificationConfig, deps NotificationDependencies) *NotificationService {
	return &NotificationService{
		dispatcher:   deps.Dispatcher,
		outbox:       deps.OutboxRepo,
		agents:       deps.AgentRepo,
		appointments: deps.AppointmentRepo,
		clock:        deps.Clock,
		logger:       orNop(deps.Logger),
		cfg:          cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAgentRegistered, n.handleAgentRegistered)
	n.dispatcher.Subscribe(events.EventAgentLoggedIn, n.handleAgentLoggedIn)
	n.dispatcher.Subscribe(events.EventPasswordResetRequested, n.handlePasswordReset)
	n.dispatcher.Subscribe(events.EventAppointmentCreated, n.handleAppointmentCreated)
	n.dispatcher.Subscribe(events.EventReminderDue, n.handleReminderDue)
	n.dispatcher.Subscribe(events.EventBirthdayDigest, n.handleBirthdayDigest)
}

// History lists the agent's queued and delivered notifications.
func (n *NotificationService) History(ctx context.Context, agentID string, filter domain.NotificationFilter) ([]domain.OutboxMessage, domain.Pagination, error) {
	return listPage(filter.Page, func(page domain.Page) ([]domain.OutboxMessage, int, error) {
		f := filter
		f.Page = page
		return n.outbox.ListForAgent(ctx, agentID, f)
	})
}

func (n *NotificationService) handleAgentRegistered(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AgentPayload)
	if !ok {
		return payloadError(event)
	}
	n.logger.Info("AgentRegistered", zap.String("agent_id", event.AgentID))
	return n.enqueue(ctx, event.AgentID, domain.ChannelEmail, payload.Agent.Email, notify.TemplateWelcome,
		notify.WelcomeData{FirstName: payload.Agent.FirstName, Email: payload.Agent.Email})
}

func (n *NotificationService) handleAgentLoggedIn(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AgentPayload)
	if !ok {
		return payloadError(event)
	}
	if !payload.Agent.Preferences.Email {
		return nil
	}
	return n.enqueue(ctx, event.AgentID, domain.ChannelEmail, payload.Agent.Email, notify.TemplateLoginAlert,
		notify.LoginAlertData{
			FirstName: payload.Agent.FirstName,
			At:        event.Timestamp,
			IPAddress: payload.IPAddress,
			UserAgent: payload.UserAgent,
		})
}

func (n *NotificationService) handlePasswordReset(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordResetPayload)
	if !ok {
		return payloadError(event)
	}
	return n.enqueue(ctx, event.AgentID, domain.ChannelEmail, payload.Agent.Email, notify.TemplatePasswordReset,
		notify.PasswordResetData{FirstName: payload.Agent.FirstName, Token: payload.Token, ExpiresAt: payload.ExpiresAt})
}

func (n *NotificationService) handleAppointmentCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AppointmentCreatedPayload)
	if !ok {
		return payloadError(event)
	}
	n.logger.Info("AppointmentCreated", zap.String("agent_id", event.AgentID), zap.String("appointment_id", payload.AppointmentID))

	agent, err := n.agents.GetByID(ctx, event.AgentID)
	if err != nil {
		return fmt.Errorf("load agent: %w", err)
	}
	appt, err := n.appointments.GetByID(ctx, event.AgentID, payload.AppointmentID)
	if err != nil {
		return fmt.Errorf("load appointment: %w", err)
	}

	data := notify.AppointmentCreatedData{AgentName: agent.FullName(), Appointment: *appt}
	weekStart := appt.AppointmentDate.StartOfWeek()
	if week, err := n.appointments.ListInRange(ctx, event.AgentID, weekStart, weekStart.AddDays(6)); err == nil {
		data.Week = scheduling.GroupByWeek(weekStart, week)
	} else {
		n.logger.Warn("load week schedule failed", zap.Error(err))
	}
	if stats, err := n.appointments.Statistics(ctx, event.AgentID, n.clock.Today()); err == nil {
		data.Statistics = stats
	} else {
		n.logger.Warn("load appointment statistics failed", zap.Error(err))
	}

	var errs []error
	if agent.Preferences.Email {
		errs = append(errs, n.enqueue(ctx, agent.ID, domain.ChannelEmail, agent.Email, notify.TemplateAppointmentCreated, data))
	}
	if agent.Preferences.Push {
		errs = append(errs, n.enqueue(ctx, agent.ID, domain.ChannelPush, agent.ID, notify.TemplateAppointmentCreated, data))
	}
	return firstError(errs)
}

func (n *NotificationService) handleReminderDue(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ReminderDuePayload)
	if !ok {
		return payloadError(event)
	}
	rem := payload.Reminder
	data := notify.ReminderDueData{Reminder: rem}

	var errs []error
	if rem.AgentEmail != "" {
		errs = append(errs, n.enqueue(ctx, rem.AgentID, domain.ChannelEmail, rem.AgentEmail, notify.TemplateReminderDue, data))
	}
	if rem.EnableSMS && rem.AgentPhone != "" {
		errs = append(errs, n.enqueue(ctx, rem.AgentID, domain.ChannelSMS, rem.AgentPhone, notify.TemplateReminderDue, data))
	}
	if rem.EnableWhatsApp && rem.AgentPhone != "" {
		errs = append(errs, n.enqueue(ctx, rem.AgentID, domain.ChannelWhatsApp, rem.AgentPhone, notify.TemplateReminderDue, data))
	}
	if rem.EnablePush {
		errs = append(errs, n.enqueue(ctx, rem.AgentID, domain.ChannelPush, rem.AgentID, notify.TemplateReminderDue, data))
	}
	return firstError(errs)
}

func (n *NotificationService) handleBirthdayDigest(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.BirthdayDigestPayload)
	if !ok {
		return payloadError(event)
	}
	if len(payload.Birthdays) == 0 {
		return nil
	}
	return n.enqueue(ctx, event.AgentID, domain.ChannelEmail, payload.AgentEmail, notify.TemplateBirthdayDigest,
		notify.BirthdayDigestData{AgentName: payload.AgentName, Birthdays: payload.Birthdays})
}

func (n *NotificationService) enqueue(ctx context.Context, agentID string, channel domain.NotificationChannel, recipient, template string, data any) error {
	if strings.TrimSpace(recipient) == "" {
		return nil
	}
	rendered, err := notify.Render(template, data)
	if err != nil {
		return err
	}
	msg := &domain.OutboxMessage{
		AgentID:     agentID,
		Channel:     channel,
		Recipient:   recipient,
		Template:    template,
		Subject:     rendered.Subject,
		Body:        rendered.Body,
		MaxAttempts: n.cfg.MaxAttempts,
	}
	if err := n.outbox.Enqueue(ctx, msg); err != nil {
		return fmt.Errorf("enqueue %s %s: %w", template, channel, err)
	}
	n.logger.Debug("notification queued",
		zap.String("notification_id", msg.ID),
		zap.String("template", template),
		zap.String("channel", string(channel)))
	return nil
}

func payloadError(event events.Event) error {
	return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
