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
	"github.com/sprintlens/sprintlens/internal/ticket"
)

type createTicketRequest struct {
	TeamID         string   `json:"teamId"`
	MemberID       *string  `json:"memberId"`
	SprintID       *string  `json:"sprintId"`
	Title          string   `json:"title"`
	Type           string   `json:"type"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	StoryPoints    *int     `json:"storyPoints"`
	EstimatedHours *float64 `json:"estimatedHours"`
	ActualHours    *float64 `json:"actualHours"`
}

type updateTicketStatusRequest struct {
	Status string `json:"status"`
}

type ticketResponse struct {
	ID             string   `json:"id"`
	TeamID         string   `json:"teamId"`
	MemberID       *string  `json:"memberId"`
	SprintID       *string  `json:"sprintId"`
	Title          string   `json:"title"`
	Type           string   `json:"type"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	StoryPoints    *int     `json:"storyPoints"`
	EstimatedHours *float64 `json:"estimatedHours"`
	ActualHours    *float64 `json:"actualHours"`
	CreatedAt      string   `json:"createdAt"`
	ResolvedAt     *string  `json:"resolvedAt"`
}

func toTicketResponse(t *ticket.Ticket) ticketResponse {
	resp := ticketResponse{
		ID:             t.ID.String(),
		TeamID:         t.TeamID.String(),
		Title:          t.Title,
		Type:           string(t.Type),
		Status:         string(t.Status),
		Priority:       string(t.Priority),
		StoryPoints:    t.StoryPoints,
		EstimatedHours: t.EstimatedHours,
		ActualHours:    t.ActualHours,
		CreatedAt:      t.CreatedAt.UTC().Format(time.RFC3339),
	}
	if t.MemberID != nil {
		s := t.MemberID.String()
		resp.MemberID = &s
	}
	if t.SprintID != nil {
		s := t.SprintID.String()
		resp.SprintID = &s
	}
	if t.ResolvedAt != nil {
		s := t.ResolvedAt.UTC().Format(time.RFC3339)
		resp.ResolvedAt = &s
	}
	return resp
}

// TicketHandler handles ticket endpoints.
type TicketHandler struct {
	repo ticket.Repository
}

// NewTicketHandler creates a new TicketHandler.
func NewTicketHandler(repo ticket.Repository) *TicketHandler {
	return &TicketHandler{repo: repo}
}

func parseOptionalUUID(field string, raw *string, requestID string, w http.ResponseWriter) (*uuid.UUID, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", field+" must be a valid UUID", requestID)
		return nil, false
	}
	return &id, true
}

// Create handles POST /tickets.
func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "teamId must be a valid UUID", requestID)
		return
	}

	memberID, ok := parseOptionalUUID("memberId", req.MemberID, requestID, w)
	if !ok {
		return
	}
	sprintID, ok := parseOptionalUUID("sprintId", req.SprintID, requestID, w)
	if !ok {
		return
	}

	fieldErrors := validation.ValidateCreateTicketRequest(validation.CreateTicketRequest{
		Title:       req.Title,
		Type:        req.Type,
		Status:      req.Status,
		Priority:    req.Priority,
		StoryPoints: req.StoryPoints,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	status := ticket.StatusTodo
	if req.Status != "" {
		status = ticket.Status(req.Status)
	}
	priority := ticket.PriorityMedium
	if req.Priority != "" {
		priority = ticket.Priority(req.Priority)
	}

	t := &ticket.Ticket{
		TeamID:         teamID,
		MemberID:       memberID,
		SprintID:       sprintID,
		Title:          req.Title,
		Type:           ticket.Type(req.Type),
		Status:         status,
		Priority:       priority,
		StoryPoints:    req.StoryPoints,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
	}

	if err := h.repo.Create(r.Context(), t); err != nil {
		if errors.Is(err, ticket.ErrReferenceNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Referenced team, member, or sprint not found", requestID)
			return
		}
		slog.Error("failed to create ticket", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create ticket", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toTicketResponse(t), requestID)
}

// List handles GET /tickets with optional team, status, and type filters.
func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var filter ticket.ListFilter

	if raw := r.URL.Query().Get("team"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Err(w, http.StatusBadRequest, "INVALID_ID", "team must be a valid UUID", requestID)
			return
		}
		filter.TeamID = &id
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := ticket.Status(raw)
		if !ticket.ValidStatus(s) {
			response.Err(w, http.StatusBadRequest, "INVALID_STATUS", "status must be one of TODO, IN_PROGRESS, IN_REVIEW, TESTING, DONE", requestID)
			return
		}
		filter.Status = &s
	}
	if raw := r.URL.Query().Get("type"); raw != "" {
		tt := ticket.Type(raw)
		if !ticket.ValidType(tt) {
			response.Err(w, http.StatusBadRequest, "INVALID_TYPE", "type must be one of FEATURE, BUG, TASK, EPIC", requestID)
			return
		}
		filter.Type = &tt
	}

	tickets, err := h.repo.List(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list tickets", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tickets", requestID)
		return
	}

	items := make([]ticketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, toTicketResponse(&tickets[i]))
	}

	response.Success(w, http.StatusOK, items, requestID)
}

// GetByID handles GET /tickets/{id}.
func (h *TicketHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	t, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ticket.ErrTicketNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Ticket not found", requestID)
			return
		}
		slog.Error("failed to get ticket", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get ticket", requestID)
		return
	}

	response.Success(w, http.StatusOK, toTicketResponse(t), requestID)
}

// UpdateStatus handles PATCH /tickets/{id}/status.
func (h *TicketHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req updateTicketStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateTicketStatus(req.Status)
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	t, err := h.repo.UpdateStatus(r.Context(), id, ticket.Status(req.Status))
	if err != nil {
		if errors.Is(err, ticket.ErrTicketNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Ticket not found", requestID)
			return
		}
		slog.Error("failed to update ticket status", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update ticket status", requestID)
		return
	}

	response.Success(w, http.StatusOK, toTicketResponse(t), requestID)
}

// Delete handles DELETE /tickets/{id}.
func (h *TicketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ticket.ErrTicketNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Ticket not found", requestID)
			return
		}
		slog.Error("failed to delete ticket", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete ticket", requestID)
		return
	}

	response.NoContent(w)
}
