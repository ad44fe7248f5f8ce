package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sprintlens/sprintlens/internal/api/middleware"
	"github.com/sprintlens/sprintlens/internal/api/response"
	"github.com/sprintlens/sprintlens/internal/api/validation"
	"github.com/sprintlens/sprintlens/internal/sprint"
)

type createSprintRequest struct {
	TeamID    string   `json:"teamId"`
	Name      string   `json:"name"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Velocity  *float64 `json:"velocity"`
}

type sprintResponse struct {
	ID        string   `json:"id"`
	TeamID    string   `json:"teamId"`
	Name      string   `json:"name"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Velocity  *float64 `json:"velocity"`
	CreatedAt string   `json:"createdAt"`
}

func toSprintResponse(s *sprint.Sprint) sprintResponse {
	return sprintResponse{
		ID:        s.ID.String(),
		TeamID:    s.TeamID.String(),
		Name:      s.Name,
		StartDate: s.StartDate.Format("2006-01-02"),
		EndDate:   s.EndDate.Format("2006-01-02"),
		Velocity:  s.Velocity,
		CreatedAt: s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// SprintHandler handles sprint endpoints.
type SprintHandler struct {
	repo sprint.Repository
}

// NewSprintHandler creates a new SprintHandler.
func NewSprintHandler(repo sprint.Repository) *SprintHandler {
	return &SprintHandler{repo: repo}
}

// Create handles POST /sprints.
func (h *SprintHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createSprintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "teamId must be a valid UUID", requestID)
		return
	}

	fieldErrors := validation.ValidateCreateSprintRequest(validation.CreateSprintRequest{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	s := &sprint.Sprint{
		TeamID:    teamID,
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
		Velocity:  req.Velocity,
	}

	if err := h.repo.Create(r.Context(), s); err != nil {
		if errors.Is(err, sprint.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
			return
		}
		slog.Error("failed to create sprint", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create sprint", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toSprintResponse(s), requestID)
}

// ListByTeam handles GET /teams/{id}/sprints.
func (h *SprintHandler) ListByTeam(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	teamID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	sprints, err := h.repo.ListByTeam(r.Context(), teamID)
	if err != nil {
		slog.Error("failed to list sprints", "error", err, "teamId", teamID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list sprints", requestID)
		return
	}

	items := make([]sprintResponse, 0, len(sprints))
	for i := range sprints {
		items = append(items, toSprintResponse(&sprints[i]))
	}

	response.Success(w, http.StatusOK, items, requestID)
}

// Delete handles DELETE /sprints/{id}.
func (h *SprintHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, sprint.ErrSprintNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Sprint not found", requestID)
			return
		}
		slog.Error("failed to delete sprint", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete sprint", requestID)
		return
	}

	response.NoContent(w)
}
