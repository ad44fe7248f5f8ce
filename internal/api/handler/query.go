package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sprintlens/sprintlens/internal/api/middleware"
	"github.com/sprintlens/sprintlens/internal/api/response"
	"github.com/sprintlens/sprintlens/internal/api/validation"
	"github.com/sprintlens/sprintlens/internal/nlq"
)

// QueryProcessor interprets free-text questions about delivery metrics.
type QueryProcessor interface {
	Process(ctx context.Context, query string) nlq.Response
}

type queryRequest struct {
	Query string `json:"query"`
}

// QueryHandler handles the POST /query endpoint.
type QueryHandler struct {
	interpreter QueryProcessor
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(interpreter QueryProcessor) *QueryHandler {
	return &QueryHandler{interpreter: interpreter}
}

// ServeHTTP handles a natural-language query request. The interpreter never
// fails, so a syntactically valid request always gets a 200 with the query
// envelope in data.
func (h *QueryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateQueryRequest(req.Query)
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	env := h.interpreter.Process(r.Context(), req.Query)

	response.Success(w, http.StatusOK, env, requestID)
}
