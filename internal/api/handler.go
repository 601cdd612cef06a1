package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	app_errors "docuchat/backend/internal/errors"
	"docuchat/backend/internal/interfaces"
)

// ChatHandler handles HTTP requests for the chat and system endpoints.
type ChatHandler struct {
	chat   interfaces.ChatService
	system interfaces.SystemService
}

func NewChatHandler(chat interfaces.ChatService, system interfaces.SystemService) *ChatHandler {
	return &ChatHandler{chat: chat, system: system}
}

// HandleChat godoc
// @Summary      Ask the assistant a question
// @Description  Runs one chat turn. The answer is grounded in the document corpus when relevant chunks exist, otherwise the model answers on its own.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        chatRequest  body  ChatRequest  true  "Question and optional retrieval depth"
// @Success      200          {object}  ChatResponse
// @Failure      400          {object}  ErrorResponse
// @Failure      503          {object}  ErrorResponse
// @Router       /chat [post]
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// A malformed body is reported in the same terms as an empty one.
		req = ChatRequest{}
	}

	req.Message = strings.TrimSpace(req.Message)
	if err := validateRequest(&req); err != nil {
		respondWithError(w, chatRequestError(err))
		return
	}

	kContext := 0
	if req.KContext != nil {
		kContext = *req.KContext
	}

	answer, err := h.chat.Ask(r.Context(), req.Message, kContext)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toChatResponse(answer))
}

// chatRequestError rewrites validator output into the stable error strings
// clients of the chat endpoint match on.
func chatRequestError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "'Message'"):
		return fmt.Errorf("%w: Message cannot be empty", app_errors.ErrValidation)
	case strings.Contains(msg, "'KContext'"):
		return fmt.Errorf("%w: k_context must be a positive integer", app_errors.ErrValidation)
	}
	return err
}

// HandleStatus godoc
// @Summary      Get system status
// @Description  Reports readiness of the language model, the document pipeline, and the persisted index.
// @Tags         System
// @Produce      json
// @Success      200  {object}  SystemStatusResponse
// @Router       /status [get]
func (h *ChatHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, toStatusResponse(h.system.Status()))
}

// HandleReinitialize godoc
// @Summary      Rebuild the document pipeline
// @Description  Reloads the corpus and rebuilds the vector index. The response always carries the resulting system status, even when the rebuild fails.
// @Tags         System
// @Produce      json
// @Success      200  {object}  ReinitializeResponse
// @Router       /reinitialize [post]
func (h *ChatHandler) HandleReinitialize(w http.ResponseWriter, r *http.Request) {
	err := h.system.Reinitialize(r.Context())
	if err != nil {
		slog.Error("Reinitialization failed", "error", err)
	}

	respondWithJSON(w, http.StatusOK, ReinitializeResponse{
		Success: err == nil,
		Status:  toStatusResponse(h.system.Status()),
	})
}
