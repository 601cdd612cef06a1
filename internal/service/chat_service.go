package service

import (
	"context"
	"fmt"
	"log/slog"

	app_errors "docuchat/backend/internal/errors"
	"docuchat/backend/internal/metrics"
	"docuchat/backend/internal/model"
)

// ChatService orchestrates a single question/answer turn. It decides between
// RAG and LLM-only mode from the system state, delegates retrieval and
// generation, and assembles the answer payload.
type ChatService struct {
	system *SystemService
	rag    *RAGService
}

func NewChatService(system *SystemService, rag *RAGService) *ChatService {
	return &ChatService{system: system, rag: rag}
}

// Ask processes one chat turn. kContext overrides the configured retrieval
// depth when positive. The returned error wraps ErrUnavailable until
// initialization has brought the language model up; every failure after that
// point is reported inside the answer itself.
func (s *ChatService) Ask(ctx context.Context, message string, kContext int) (*model.Answer, error) {
	if !s.system.Available() {
		detail := s.system.InitError()
		if detail == "" {
			detail = "System not ready"
		}
		return nil, fmt.Errorf("%w: %s", app_errors.ErrUnavailable, detail)
	}

	var (
		contextText string
		contextInfo string
		sources     []model.Source
	)

	// Step 1: Retrieve context when the document pipeline is up.
	if s.system.RAGReady() {
		contextText, sources = s.rag.SearchSimilar(message, kContext)
		if contextText != "" {
			contextInfo = fmt.Sprintf("Used %d document sources", len(sources))
		} else {
			contextInfo = "No relevant documents found, using LLM-only mode"
		}
	} else {
		contextInfo = "LLM-only mode (no documents available)"
	}

	// Step 2: Generate the answer. Sources stay attached even when
	// generation fails, so the client can show what was retrieved.
	response, mode := s.rag.GenerateResponse(ctx, message, contextText)

	status := "ok"
	if mode == model.ModeUnavailable {
		status = "error"
	}
	metrics.RecordChatTurn(string(mode), status)

	slog.Info("Chat turn completed", "mode", mode, "sources", len(sources))

	return &model.Answer{
		Question:    message,
		Response:    response,
		ContextInfo: contextInfo,
		Sources:     sources,
		Mode:        mode,
	}, nil
}
