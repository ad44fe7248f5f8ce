package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sprintlens/sprintlens/internal/api/handler"
	"github.com/sprintlens/sprintlens/internal/api/middleware"
	"github.com/sprintlens/sprintlens/internal/auth"
	"github.com/sprintlens/sprintlens/internal/sprint"
	"github.com/sprintlens/sprintlens/internal/team"
	"github.com/sprintlens/sprintlens/internal/ticket"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	DBPinger    handler.DBPinger
	Version     string
	TeamRepo    team.Repository
	SprintRepo  sprint.Repository
	TicketRepo  ticket.Repository
	Metrics     handler.MetricsProvider
	Interpreter handler.QueryProcessor
	AuthService *auth.Service
}

// NewRouter creates and configures a Chi router with all middleware and
// routes. Read endpoints are open; mutating endpoints require an API key
// when an auth service is configured.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	requireKey := func(r chi.Router) {
		if deps.AuthService != nil {
			r.Use(middleware.Auth(deps.AuthService))
		}
	}

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	if deps.Interpreter != nil {
		queryHandler := handler.NewQueryHandler(deps.Interpreter)
		r.Post("/query", queryHandler.ServeHTTP)
	}

	if deps.Metrics != nil {
		metricsHandler := handler.NewMetricsHandler(deps.Metrics)
		r.Route("/metrics", func(r chi.Router) {
			r.Get("/velocity", metricsHandler.Velocity)
			r.Get("/bugs", metricsHandler.Bugs)
			r.Get("/resolution-time", metricsHandler.ResolutionTime)
			r.Get("/performance", metricsHandler.Performance)
		})
	}

	if deps.TeamRepo != nil {
		teamHandler := handler.NewTeamHandler(deps.TeamRepo)
		r.Route("/teams", func(r chi.Router) {
			r.Get("/", teamHandler.List)
			r.Get("/{id}", teamHandler.GetByID)
			r.Get("/{id}/members", teamHandler.ListMembers)
			if deps.SprintRepo != nil {
				sprintHandler := handler.NewSprintHandler(deps.SprintRepo)
				r.Get("/{id}/sprints", sprintHandler.ListByTeam)
			}
			r.Group(func(r chi.Router) {
				requireKey(r)
				r.Post("/", teamHandler.Create)
				r.Delete("/{id}", teamHandler.Delete)
				r.Post("/{id}/members", teamHandler.CreateMember)
			})
		})
	}

	if deps.SprintRepo != nil {
		sprintHandler := handler.NewSprintHandler(deps.SprintRepo)
		r.Route("/sprints", func(r chi.Router) {
			requireKey(r)
			r.Post("/", sprintHandler.Create)
			r.Delete("/{id}", sprintHandler.Delete)
		})
	}

	if deps.TicketRepo != nil {
		ticketHandler := handler.NewTicketHandler(deps.TicketRepo)
		r.Route("/tickets", func(r chi.Router) {
			r.Get("/", ticketHandler.List)
			r.Get("/{id}", ticketHandler.GetByID)
			r.Group(func(r chi.Router) {
				requireKey(r)
				r.Post("/", ticketHandler.Create)
				r.Patch("/{id}/status", ticketHandler.UpdateStatus)
				r.Delete("/{id}", ticketHandler.Delete)
			})
		})
	}

	return r
}
