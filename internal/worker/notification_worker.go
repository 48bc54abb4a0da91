package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/agentdesk/internal/notify"
	"github.com/spec-kit/agentdesk/internal/service"
)

// NotificationWorker wires event handlers to the outbox and drains it in the background.
type NotificationWorker struct {
	notifications *service.NotificationService
	dispatcher    *notify.Dispatcher
	logger        *zap.Logger
	wg            sync.WaitGroup
}

// NewNotificationWorker builds a worker. A nil dispatcher only registers handlers.
func NewNotificationWorker(notifications *service.NotificationService, dispatcher *notify.Dispatcher, logger *zap.Logger) *NotificationWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{notifications: notifications, dispatcher: dispatcher, logger: logger}
}

// Start registers notification handlers and launches the outbox loop.
func (w *NotificationWorker) Start(ctx context.Context) {
	if w.notifications != nil {
		w.notifications.RegisterHandlers()
	}
	if w.dispatcher == nil {
		w.logger.Warn("outbox dispatcher disabled")
		return
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.dispatcher.Run(ctx)
	}()
}

// Wait blocks until the outbox loop has exited.
func (w *NotificationWorker) Wait() {
	w.wg.Wait()
}
