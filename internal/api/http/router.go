package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agentdesk/internal/api/http/handlers"
	"github.com/spec-kit/agentdesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Agents         *handlers.AgentsHandler
	Appointments   *handlers.AppointmentsHandler
	Clients        *handlers.ClientsHandler
	Policies       *handlers.PoliciesHandler
	Reminders      *handlers.RemindersHandler
	Notes          *handlers.NotesHandler
	Search         *handlers.SearchHandler
	Analytics      *handlers.AnalyticsHandler
	Utility        *handlers.UtilityHandler
	Notifications  *handlers.NotificationsHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimit      fiber.Handler
}

// RegisterRoutes wires HTTP routes. Fixed segments are registered ahead of
// the parameterized ones they would otherwise match.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")
	if cfg.RateLimit != nil {
		api.Use(cfg.RateLimit)
	}

	agents := api.Group("/agents")
	agents.Post("/register", cfg.Agents.Register)
	agents.Post("/login", cfg.Agents.Login)
	agents.Post("/password/reset", cfg.Agents.RequestPasswordReset)
	agents.Post("/password/reset/confirm", cfg.Agents.ConfirmPasswordReset)

	// Unauthenticated utility endpoints.
	api.Get("/utility/enums", cfg.Utility.Enums)
	api.Get("/utility/time", cfg.Utility.Time)
	api.Post("/utility/validate", cfg.Utility.Validate)

	protected := api.Group("", cfg.AuthMiddleware.Handle)

	me := protected.Group("/agents/me")
	me.Get("", cfg.Agents.Me)
	me.Put("", cfg.Agents.UpdateMe)
	me.Post("/password", cfg.Agents.ChangePassword)

	appointments := protected.Group("/appointments")
	appointments.Post("", cfg.Appointments.Create)
	appointments.Get("", cfg.Appointments.List)
	appointments.Get("/today", cfg.Appointments.Today)
	appointments.Get("/for-date", cfg.Appointments.ForDate)
	appointments.Get("/week-view", cfg.Appointments.Week)
	appointments.Get("/calendar", cfg.Appointments.Calendar)
	appointments.Get("/search", cfg.Appointments.Search)
	appointments.Get("/statistics", cfg.Appointments.Statistics)
	appointments.Post("/check-conflicts", cfg.Appointments.CheckConflicts)
	appointments.Get("/:appointmentId", cfg.Appointments.Get)
	appointments.Put("/:appointmentId", cfg.Appointments.Update)
	appointments.Patch("/:appointmentId/status", cfg.Appointments.UpdateStatus)
	appointments.Delete("/:appointmentId", cfg.Appointments.Delete)

	clients := protected.Group("/clients")
	clients.Post("", cfg.Clients.Create)
	clients.Get("", cfg.Clients.List)
	clients.Get("/statistics", cfg.Clients.Statistics)
	clients.Get("/birthdays", cfg.Clients.Birthdays)
	clients.Get("/:clientId", cfg.Clients.Get)
	clients.Put("/:clientId", cfg.Clients.Update)
	clients.Patch("/:clientId/favorite", cfg.Clients.ToggleFavorite)
	clients.Delete("/:clientId", cfg.Clients.Delete)
	clients.Get("/:clientId/notes", cfg.Clients.ListNotes)
	clients.Post("/:clientId/notes", cfg.Clients.CreateNote)

	policies := protected.Group("/policies")
	policies.Post("", cfg.Policies.Create)
	policies.Get("", cfg.Policies.List)
	policies.Get("/expiring", cfg.Policies.Expiring)
	policies.Get("/statistics", cfg.Policies.Statistics)
	policies.Get("/:policyId", cfg.Policies.Get)
	policies.Put("/:policyId", cfg.Policies.Update)
	policies.Delete("/:policyId", cfg.Policies.Delete)

	reminders := protected.Group("/reminders")
	reminders.Post("", cfg.Reminders.Create)
	reminders.Get("", cfg.Reminders.List)
	reminders.Get("/today", cfg.Reminders.Today)
	reminders.Get("/upcoming", cfg.Reminders.Upcoming)
	reminders.Get("/:reminderId", cfg.Reminders.Get)
	reminders.Put("/:reminderId", cfg.Reminders.Update)
	reminders.Patch("/:reminderId/complete", cfg.Reminders.Complete)
	reminders.Delete("/:reminderId", cfg.Reminders.Delete)

	notes := protected.Group("/notes")
	notes.Post("", cfg.Notes.Create)
	notes.Get("/important", cfg.Notes.Important)
	notes.Get("/search", cfg.Notes.Search)
	notes.Get("/:noteId", cfg.Notes.Get)
	notes.Put("/:noteId", cfg.Notes.Update)
	notes.Delete("/:noteId", cfg.Notes.Delete)

	protected.Get("/search", cfg.Search.Global)
	protected.Get("/search/recent", cfg.Search.Recent)
	protected.Get("/autocomplete/:kind", cfg.Search.Autocomplete)

	analytics := protected.Group("/analytics")
	analytics.Get("/dashboard", cfg.Analytics.Dashboard)
	analytics.Get("/appointments", cfg.Analytics.Appointments)
	analytics.Get("/policies", cfg.Analytics.Policies)

	protected.Delete("/utility/cache", cfg.Utility.FlushCache)
	protected.Get("/notifications", cfg.Notifications.List)
}
