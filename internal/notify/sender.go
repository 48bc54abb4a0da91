package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/agentdesk/internal/config"
	"github.com/spec-kit/agentdesk/internal/domain"
)

// Message is a rendered notification ready for a transport.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers messages over one transport.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	Name() string
}

// Senders routes outbox channels to transports.
type Senders map[domain.NotificationChannel]Sender

// For returns the sender for channel, or false when none is registered.
func (s Senders) For(channel domain.NotificationChannel) (Sender, bool) {
	sender, ok := s[channel]
	return sender, ok
}

// NewSenders builds the transports from configuration. Channels without an
// endpoint get a NoopSender that logs and reports success.
func NewSenders(cfg config.NotificationConfig, logger *zap.Logger) Senders {
	senders := Senders{}

	if strings.TrimSpace(cfg.SMTPHost) != "" {
		senders[domain.ChannelEmail] = NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailFrom)
	} else {
		senders[domain.ChannelEmail] = NewNoopSender("email", logger)
	}

	webhooks := map[domain.NotificationChannel]string{
		domain.ChannelSMS:      cfg.SMSWebhookURL,
		domain.ChannelWhatsApp: cfg.WhatsAppWebhook,
		domain.ChannelPush:     cfg.PushWebhookURL,
	}
	for channel, url := range webhooks {
		if strings.TrimSpace(url) == "" {
			senders[channel] = NewNoopSender(string(channel), logger)
			continue
		}
		senders[channel] = NewWebhookSender(string(channel), url, cfg.WebhookToken)
	}
	return senders
}

// SMTPSender sends plain-text email via unauthenticated SMTP.
type SMTPSender struct {
	addr string
	from string
}

func NewSMTPSender(host, port, from string) *SMTPSender {
	from = strings.TrimSpace(from)
	if from == "" {
		from = "noreply@agentdesk.local"
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%s", strings.TrimSpace(host), strings.TrimSpace(port)),
		from: from,
	}
}

func (s *SMTPSender) Name() string { return "smtp" }

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return smtp.SendMail(s.addr, nil, s.from, []string{msg.To}, buildEmail(s.from, msg))
}

func buildEmail(from string, msg Message) []byte {
	return []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		msg.To,
		strings.ReplaceAll(msg.Subject, "\n", " "),
		msg.Body,
	))
}

// WebhookSender posts {to, subject, body} as JSON to a provider gateway.
type WebhookSender struct {
	name  string
	url   string
	token string
	http  *http.Client
}

func NewWebhookSender(name, url, token string) *WebhookSender {
	return &WebhookSender{
		name:  name,
		url:   strings.TrimSpace(url),
		token: strings.TrimSpace(token),
		http:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *WebhookSender) Name() string { return s.name + "-webhook" }

func (s *WebhookSender) Send(ctx context.Context, msg Message) error {
	raw, err := json.Marshal(map[string]string{
		"channel": s.name,
		"to":      msg.To,
		"subject": msg.Subject,
		"body":    msg.Body,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s webhook returned %d", s.name, resp.StatusCode)
	}
	return nil
}

// NoopSender stands in for unconfigured transports.
type NoopSender struct {
	name   string
	logger *zap.Logger
}

func NewNoopSender(name string, logger *zap.Logger) *NoopSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoopSender{name: name, logger: logger}
}

func (s *NoopSender) Name() string { return s.name + "-noop" }

func (s *NoopSender) Send(_ context.Context, msg Message) error {
	s.logger.Debug("notification transport not configured; dropping message",
		zap.String("channel", s.name),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}
