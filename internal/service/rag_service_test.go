package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docuchat/backend/internal/llm"
	"docuchat/backend/internal/llm/mocks"
	"docuchat/backend/internal/model"
	"docuchat/backend/internal/service"
	"docuchat/backend/internal/vectorstore"
)

func setupRAGService(t *testing.T) (*service.RAGService, *vectorstore.Store, *mocks.MockProvider) {
	store := vectorstore.New()
	store.Index([]model.Chunk{
		{ID: "chunk-a", SourceFile: "handbook.pdf", Page: 2, Content: "Solar panels convert sunlight into electricity using photovoltaic cells."},
		{ID: "chunk-b", SourceFile: "faq.txt", Page: 0, Content: "Wind turbines generate power from moving air."},
	})

	mockLLM := mocks.NewMockProvider(t)
	ragService := service.NewRAGService(mockLLM, store, 5, 5000)

	return ragService, store, mockLLM
}

func TestRAGService_SearchSimilar(t *testing.T) {
	t.Run("Success - Finds the matching chunk with source attribution", func(t *testing.T) {
		ragService, _, _ := setupRAGService(t)

		contextText, sources := ragService.SearchSimilar("solar panels electricity", 5)

		assert.Equal(t, "Solar panels convert sunlight into electricity using photovoltaic cells.", contextText)
		require.Len(t, sources, 1)
		assert.Equal(t, "handbook.pdf", sources[0].SourceFile)
		assert.Equal(t, "2", sources[0].Page)
		assert.Greater(t, sources[0].Score, 0.0)
		assert.LessOrEqual(t, sources[0].Score, 1.0)
	})

	t.Run("Success - Joins multiple chunks and orders by score", func(t *testing.T) {
		ragService, _, _ := setupRAGService(t)

		contextText, sources := ragService.SearchSimilar("power electricity generate", 5)

		require.Len(t, sources, 2)
		assert.Equal(t, "faq.txt", sources[0].SourceFile)
		assert.Equal(t, "N/A", sources[0].Page)
		assert.Equal(t, "handbook.pdf", sources[1].SourceFile)

		parts := strings.Split(contextText, "\n\n---\n\n")
		require.Len(t, parts, 2)
		assert.Equal(t, "Wind turbines generate power from moving air.", parts[0])
		assert.Equal(t, "Solar panels convert sunlight into electricity using photovoltaic cells.", parts[1])
	})

	t.Run("Success - Respects the requested result limit", func(t *testing.T) {
		ragService, _, _ := setupRAGService(t)

		_, sources := ragService.SearchSimilar("power electricity generate", 1)

		assert.Len(t, sources, 1)
	})

	t.Run("Success - Unrelated query yields no context", func(t *testing.T) {
		ragService, _, _ := setupRAGService(t)

		contextText, sources := ragService.SearchSimilar("medieval castle architecture", 5)

		assert.Empty(t, contextText)
		assert.Empty(t, sources)
	})

	t.Run("Success - Invalid query yields no context instead of an error", func(t *testing.T) {
		ragService, _, _ := setupRAGService(t)

		contextText, sources := ragService.SearchSimilar("   ", 5)

		assert.Empty(t, contextText)
		assert.Empty(t, sources)
	})

	t.Run("Success - Empty store yields no context", func(t *testing.T) {
		mockLLM := mocks.NewMockProvider(t)
		ragService := service.NewRAGService(mockLLM, vectorstore.New(), 5, 5000)

		contextText, sources := ragService.SearchSimilar("solar panels", 5)

		assert.Empty(t, contextText)
		assert.Empty(t, sources)
	})
}

func TestRAGService_GenerateResponse(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Wraps the question in the grounding prompt when context is present", func(t *testing.T) {
		ragService, _, mockLLM := setupRAGService(t)

		contextText := "Solar panels convert sunlight into electricity."
		query := "How do solar panels work?"

		mockLLM.On("Name").Return("ollama")
		mockLLM.On("Generate", mock.Anything, mock.MatchedBy(func(req *llm.GenerateRequest) bool {
			return strings.Contains(req.Prompt, "--- start of context ---") &&
				strings.Contains(req.Prompt, contextText) &&
				strings.Contains(req.Prompt, query) &&
				req.Temperature == 0.1
		})).Return(&llm.GenerateResponse{Model: "llama3", Response: "  They use photovoltaic cells.  \n"}, nil).Once()

		response, mode := ragService.GenerateResponse(ctx, query, contextText)

		assert.Equal(t, "They use photovoltaic cells.", response)
		assert.Equal(t, model.ModeRAG, mode)
	})

	t.Run("Success - Sends the bare question when no context is available", func(t *testing.T) {
		ragService, _, mockLLM := setupRAGService(t)

		query := "What is the capital of France?"

		mockLLM.On("Name").Return("ollama")
		mockLLM.On("Generate", mock.Anything, mock.MatchedBy(func(req *llm.GenerateRequest) bool {
			return req.Prompt == query
		})).Return(&llm.GenerateResponse{Model: "llama3", Response: "Paris"}, nil).Once()

		response, mode := ragService.GenerateResponse(ctx, query, "")

		assert.Equal(t, "Paris", response)
		assert.Equal(t, model.ModeLLMOnly, mode)
	})

	t.Run("Success - Empty completion is passed through as an empty answer", func(t *testing.T) {
		ragService, _, mockLLM := setupRAGService(t)

		mockLLM.On("Name").Return("ollama")
		mockLLM.On("Generate", mock.Anything, mock.Anything).
			Return(&llm.GenerateResponse{Model: "llama3", Response: "   "}, nil).Once()

		response, mode := ragService.GenerateResponse(ctx, "Anything new?", "")

		assert.Equal(t, "", response)
		assert.Equal(t, model.ModeLLMOnly, mode)
	})

	t.Run("Failure - Provider error returns the apology text", func(t *testing.T) {
		ragService, _, mockLLM := setupRAGService(t)

		mockLLM.On("Name").Return("ollama")
		mockLLM.On("Generate", mock.Anything, mock.Anything).
			Return(nil, errors.New("connection refused")).Once()

		response, mode := ragService.GenerateResponse(ctx, "How do solar panels work?", "")

		assert.Equal(t, "Sorry, an error occurred while generating the response", response)
		assert.Equal(t, model.ModeUnavailable, mode)
	})

	t.Run("Failure - Empty question is rejected before reaching the provider", func(t *testing.T) {
		ragService, _, mockLLM := setupRAGService(t)

		response, mode := ragService.GenerateResponse(ctx, "   ", "")

		assert.Equal(t, "Invalid input: input cannot be empty", response)
		assert.Equal(t, model.ModeUnavailable, mode)
		mockLLM.AssertNotCalled(t, "Generate")
	})

	t.Run("Failure - Suspicious question is rejected before reaching the provider", func(t *testing.T) {
		ragService, _, mockLLM := setupRAGService(t)

		response, mode := ragService.GenerateResponse(ctx, "<script>alert('hi')</script>", "")

		assert.Contains(t, response, "Invalid input:")
		assert.Equal(t, model.ModeUnavailable, mode)
		mockLLM.AssertNotCalled(t, "Generate")
	})
}
