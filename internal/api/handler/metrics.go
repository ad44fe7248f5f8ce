package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/sprintlens/sprintlens/internal/api/middleware"
	"github.com/sprintlens/sprintlens/internal/api/response"
	"github.com/sprintlens/sprintlens/internal/metrics"
	"github.com/sprintlens/sprintlens/internal/team"
)

// MetricsProvider is the aggregation surface the metric endpoints read from.
// A nil teamID means no team filter.
type MetricsProvider interface {
	FindTeamByName(ctx context.Context, name string) (*team.Team, error)
	TeamVelocity(ctx context.Context, teamID *uuid.UUID) (*metrics.VelocityReport, error)
	BugRate(ctx context.Context, teamID *uuid.UUID) (*metrics.BugRateReport, error)
	ResolutionTime(ctx context.Context, teamID *uuid.UUID) (*metrics.ResolutionReport, error)
	TeamPerformance(ctx context.Context) ([]metrics.TeamPerformance, error)
}

// MetricsHandler handles the structured GET /metrics endpoints.
type MetricsHandler struct {
	provider MetricsProvider
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(provider MetricsProvider) *MetricsHandler {
	return &MetricsHandler{provider: provider}
}

// resolveTeamParam maps the optional ?team= query parameter to a team
// filter. It writes the error response itself when the team is unknown.
func (h *MetricsHandler) resolveTeamParam(w http.ResponseWriter, r *http.Request, requestID string) (*uuid.UUID, bool) {
	name := r.URL.Query().Get("team")
	if name == "" {
		return nil, true
	}

	t, err := h.provider.FindTeamByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("Team %q not found", name), requestID)
			return nil, false
		}
		slog.Error("failed to resolve team", "error", err, "team", name)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to resolve team", requestID)
		return nil, false
	}

	return &t.ID, true
}

// Velocity handles GET /metrics/velocity.
func (h *MetricsHandler) Velocity(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	teamID, ok := h.resolveTeamParam(w, r, requestID)
	if !ok {
		return
	}

	report, err := h.provider.TeamVelocity(r.Context(), teamID)
	if err != nil {
		slog.Error("failed to compute velocity", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute velocity", requestID)
		return
	}

	response.Success(w, http.StatusOK, report, requestID)
}

// Bugs handles GET /metrics/bugs.
func (h *MetricsHandler) Bugs(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	teamID, ok := h.resolveTeamParam(w, r, requestID)
	if !ok {
		return
	}

	report, err := h.provider.BugRate(r.Context(), teamID)
	if err != nil {
		slog.Error("failed to compute bug rate", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute bug rate", requestID)
		return
	}

	response.Success(w, http.StatusOK, report, requestID)
}

// ResolutionTime handles GET /metrics/resolution-time.
func (h *MetricsHandler) ResolutionTime(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	teamID, ok := h.resolveTeamParam(w, r, requestID)
	if !ok {
		return
	}

	report, err := h.provider.ResolutionTime(r.Context(), teamID)
	if err != nil {
		slog.Error("failed to compute resolution time", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute resolution time", requestID)
		return
	}

	response.Success(w, http.StatusOK, report, requestID)
}

// Performance handles GET /metrics/performance.
func (h *MetricsHandler) Performance(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	entries, err := h.provider.TeamPerformance(r.Context())
	if err != nil {
		slog.Error("failed to compute team performance", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute team performance", requestID)
		return
	}

	response.Success(w, http.StatusOK, entries, requestID)
}
