package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	app_errors "docuchat/backend/internal/errors"
	"docuchat/backend/internal/model"
)

// This file contains shared DTOs (Data Transfer Objects) for API requests and
// responses, and helper functions for sending consistent HTTP responses.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ChatRequest is the DTO for the chat endpoint. KContext optionally overrides
// how many document chunks are retrieved for the answer.
type ChatRequest struct {
	Message  string `json:"message" validate:"required" example:"How do I configure the export pipeline?"`
	KContext *int   `json:"k_context" validate:"omitempty,gt=0" example:"5"`
}

// ChatResponse is the payload of a completed chat turn. The error field is
// always present and null on success, which existing clients rely on.
type ChatResponse struct {
	Question    string         `json:"question"`
	Response    string         `json:"response"`
	ContextInfo string         `json:"context_provided_to_llm"`
	Sources     []model.Source `json:"sources"`
	Mode        string         `json:"mode"`
	Error       *string        `json:"error"`
}

// SystemStatusResponse reports pipeline readiness. The loaded_pdfs key keeps
// its historical name even though the corpus accepts more than PDF files.
type SystemStatusResponse struct {
	RAGReady   bool     `json:"rag_pipeline_ready"`
	LLMReady   bool     `json:"llm_ready"`
	DBReady    bool     `json:"db_ready"`
	LoadedPDFs []string `json:"loaded_pdfs"`
	InitError  *string  `json:"initialization_error"`
	Message    string   `json:"message"`
}

// ReinitializeResponse reports the outcome of a pipeline rebuild together
// with the resulting system state.
type ReinitializeResponse struct {
	Success bool                 `json:"success"`
	Status  SystemStatusResponse `json:"status"`
}

// toChatResponse converts a service answer into its wire representation.
func toChatResponse(answer *model.Answer) ChatResponse {
	sources := answer.Sources
	if sources == nil {
		sources = []model.Source{}
	}
	return ChatResponse{
		Question:    answer.Question,
		Response:    answer.Response,
		ContextInfo: answer.ContextInfo,
		Sources:     sources,
		Mode:        string(answer.Mode),
	}
}

// toStatusResponse converts a service status snapshot into its wire
// representation.
func toStatusResponse(status *model.SystemStatus) SystemStatusResponse {
	files := status.LoadedFiles
	if files == nil {
		files = []string{}
	}
	var initErr *string
	if status.InitError != "" {
		msg := status.InitError
		initErr = &msg
	}
	return SystemStatusResponse{
		RAGReady:   status.RAGReady,
		LLMReady:   status.LLMReady,
		DBReady:    status.DBReady,
		LoadedPDFs: files,
		InitError:  initErr,
		Message:    status.Message,
	}
}

// respondWithError is the centralized error handling function for the API layer.
// It maps custom business-layer errors to appropriate HTTP status codes and
// formats a standard JSON error response.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var payload ErrorResponse

	switch {
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		// The message after the sentinel prefix is already user-friendly.
		payload.Error = trimSentinel(err, app_errors.ErrValidation)
	case errors.Is(err, app_errors.ErrUnavailable):
		statusCode = http.StatusServiceUnavailable
		payload.Error = "System unavailable"
		payload.Details = trimSentinel(err, app_errors.ErrUnavailable)
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		payload.Error = "The requested resource was not found"
	default:
		// Any unhandled error is considered an internal server error.
		// This prevents leaking implementation details to the client.
		statusCode = http.StatusInternalServerError
		payload.Error = "Internal server error"
	}

	// The original, more detailed error is logged for debugging purposes,
	// while a curated message is sent to the client.
	slog.Warn("Responding with error", "status_code", statusCode, "client_message", payload.Error, "internal_error", err)

	respondWithJSON(w, statusCode, payload)
}

// trimSentinel strips the sentinel prefix from a wrapped error, leaving the
// message that was attached at the wrap site.
func trimSentinel(err error, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

// respondWithJSON is a low-level helper for marshaling a payload to JSON
// and writing it to the http.ResponseWriter with a given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		// This indicates a server-side programming error (e.g., trying to marshal a channel).
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
