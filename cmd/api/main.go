package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/agentdesk/internal/api/http"
	"github.com/spec-kit/agentdesk/internal/api/http/handlers"
	"github.com/spec-kit/agentdesk/internal/auth"
	"github.com/spec-kit/agentdesk/internal/cache"
	"github.com/spec-kit/agentdesk/internal/config"
	"github.com/spec-kit/agentdesk/internal/events"
	"github.com/spec-kit/agentdesk/internal/notify"
	"github.com/spec-kit/agentdesk/internal/observability"
	"github.com/spec-kit/agentdesk/internal/persistence"
	"github.com/spec-kit/agentdesk/internal/repository"
	"github.com/spec-kit/agentdesk/internal/service"
	"github.com/spec-kit/agentdesk/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Tracing, cfg.App.Name, cfg.App.Version)
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	store := cache.New(redis.Client, cfg.Redis.KeyPrefix, cfg.Redis.CacheTTL(), logger)

	procs := repository.NewProcedures(nil)
	if pool := pg.PoolHandle(); pool != nil {
		procs = repository.NewProcedures(pool)
	}
	agentRepo := repository.NewAgentRepository(procs)
	resetRepo := repository.NewPasswordResetRepository(procs)
	appointmentRepo := repository.NewAppointmentRepository(procs)
	clientRepo := repository.NewClientRepository(procs)
	policyRepo := repository.NewPolicyRepository(procs)
	reminderRepo := repository.NewReminderRepository(procs)
	noteRepo := repository.NewNoteRepository(procs)
	searchRepo := repository.NewSearchRepository(procs)
	analyticsRepo := repository.NewAnalyticsRepository(procs)
	outboxRepo := repository.NewOutboxRepository(procs)

	clock := service.SystemClock(cfg.App.Location())
	eventDispatcher := events.NewInMemoryDispatcher(logger)

	agentService := service.NewAgentService(*cfg, service.AgentDependencies{
		AgentRepo:         agentRepo,
		PasswordResetRepo: resetRepo,
		Dispatcher:        eventDispatcher,
		Logger:            logger,
	})
	appointmentService := service.NewAppointmentService(service.AppointmentDependencies{
		AppointmentRepo: appointmentRepo,
		Dispatcher:      eventDispatcher,
		Cache:           store,
		Clock:           clock,
		Logger:          logger,
	})
	clientService := service.NewClientService(service.ClientDependencies{ClientRepo: clientRepo, Cache: store, Clock: clock, Logger: logger})
	policyService := service.NewPolicyService(service.PolicyDependencies{PolicyRepo: policyRepo, Cache: store, Clock: clock, Logger: logger})
	reminderService := service.NewReminderService(service.ReminderDependencies{ReminderRepo: reminderRepo, Cache: store, Clock: clock, Logger: logger})
	noteService := service.NewNoteService(noteRepo)
	searchService := service.NewSearchService(searchRepo, store, logger)
	analyticsService := service.NewAnalyticsService(analyticsRepo, store, clock)
	notificationService := service.NewNotificationService(cfg.Notification, service.NotificationDependencies{
		Dispatcher:      eventDispatcher,
		OutboxRepo:      outboxRepo,
		AgentRepo:       agentRepo,
		AppointmentRepo: appointmentRepo,
		Clock:           clock,
		Logger:          logger,
	})

	relay := notify.NewRelay(cfg.Kafka)
	var outboxDispatcher *notify.Dispatcher
	if procs.Available() {
		outboxDispatcher = notify.NewDispatcher(outboxRepo, notify.NewSenders(cfg.Notification, logger), relay, notify.DispatcherConfig{
			PollInterval: cfg.Notification.PollInterval,
			BatchSize:    cfg.Notification.BatchSize,
			BaseBackoff:  cfg.Notification.BaseBackoff,
			ClaimLease:   cfg.Notification.ClaimLease,
		}, logger)
	}
	notificationWorker := worker.NewNotificationWorker(notificationService, outboxDispatcher, logger)
	notificationWorker.Start(ctx)

	jobs := cfg.Jobs
	jobs.Enabled = jobs.Enabled && procs.Available()
	scheduler := worker.NewScheduler(jobs, worker.SchedulerDependencies{
		ReminderRepo: reminderRepo,
		ClientRepo:   clientRepo,
		Dispatcher:   eventDispatcher,
		Locks:        store,
		Clock:        clock,
		Logger:       logger,
	})
	scheduler.Start(ctx)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger, metrics, cfg.App.IsProduction()),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:     cfg.App.RequestTimeout(),
		CORSOrigins: cfg.App.CORSOrigins,
		Tracing:     cfg.Tracing.Enabled,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Agents:         handlers.NewAgentsHandler(agentService),
		Appointments:   handlers.NewAppointmentsHandler(appointmentService),
		Clients:        handlers.NewClientsHandler(clientService, noteService),
		Policies:       handlers.NewPoliciesHandler(policyService),
		Reminders:      handlers.NewRemindersHandler(reminderService),
		Notes:          handlers.NewNotesHandler(noteService),
		Search:         handlers.NewSearchHandler(searchService),
		Analytics:      handlers.NewAnalyticsHandler(analyticsService),
		Utility:        handlers.NewUtilityHandler(analyticsService, clock),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		AuthMiddleware: auth.NewAuthMiddleware(agentService.TokenManager(), agentRepo),
		RateLimit:      httptransport.RateLimiter(redis.Client, cfg.RateLimit, cfg.Redis.KeyPrefix, logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	scheduler.Wait()
	notificationWorker.Wait()
	eventDispatcher.Wait()
	if err := relay.Close(); err != nil {
		logger.Warn("close relay", zap.Error(err))
	}

	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	if err := shutdownTracing(flushCtx); err != nil {
		logger.Warn("flush tracer", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
