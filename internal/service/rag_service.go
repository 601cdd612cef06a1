package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"docuchat/backend/internal/llm"
	"docuchat/backend/internal/metrics"
	"docuchat/backend/internal/model"
	"docuchat/backend/internal/textutil"
	"docuchat/backend/internal/vectorstore"
)

// generationTemperature keeps answers close to the retrieved material.
const generationTemperature = 0.1

// apologyText is returned in place of an answer when generation fails, so the
// conversation never carries technical detail to the user.
const apologyText = "Sorry, an error occurred while generating the response"

// ragPromptTemplate wraps the user's question with the retrieved context and
// the grounding rules the model must follow.
const ragPromptTemplate = `You are a helpful assistant with access to specific document context. Follow these guidelines:

1. **PRIMARY PRIORITY**: Use the information from the provided CONTEXT below to answer the question.
2. **SECONDARY PRIORITY**: If the context doesn't contain sufficient information, you may supplement with your general knowledge, but clearly indicate when you're doing so.
3. **TRANSPARENCY**: Always specify your sources:
   - For context-based info: "According to the provided documents..." or "Based on the context..."
   - For general knowledge: "Based on general knowledge..." or "Generally speaking..."
4. **ACCURACY**: Be factual and helpful. Don't make up specific details not found in either source.
5. **COMPLETENESS**: Provide comprehensive answers when possible.

CONTEXT FROM DOCUMENTS:
--- start of context ---
%s
--- end of context ---

QUESTION:
%s

HELPFUL RESPONSE (prioritizing context, supplementing with general knowledge when needed):`

// contextSeparator joins the retrieved chunks into a single context block.
const contextSeparator = "\n\n---\n\n"

// RAGService performs the two halves of a retrieval-augmented chat turn:
// finding the document chunks relevant to a question, and generating the
// answer with or without that context.
type RAGService struct {
	provider      llm.Provider
	store         *vectorstore.Store
	defaultK      int
	maxInputChars int
}

func NewRAGService(provider llm.Provider, store *vectorstore.Store, defaultK, maxInputChars int) *RAGService {
	return &RAGService{
		provider:      provider,
		store:         store,
		defaultK:      defaultK,
		maxInputChars: maxInputChars,
	}
}

// SearchSimilar finds the chunks closest to the query and returns their
// concatenated text along with source attributions for the response payload.
// An invalid query or an empty index yields no context rather than an error,
// which downgrades the turn to LLM-only mode.
func (s *RAGService) SearchSimilar(query string, k int) (string, []model.Source) {
	if err := textutil.ValidateInput(query, s.maxInputChars); err != nil {
		slog.Warn("Rejected search query", "error", err)
		return "", nil
	}
	if k <= 0 {
		k = s.defaultK
	}

	slog.Info("Searching for similar documents", "query", truncate(query, 50), "k", k)

	start := time.Now()
	hits := s.store.Search(query, k)
	metrics.RecordRetrieval(time.Since(start).Seconds())

	if len(hits) == 0 {
		slog.Info("No similar documents found")
		return "", nil
	}

	contents := make([]string, 0, len(hits))
	sources := make([]model.Source, 0, len(hits))
	for _, hit := range hits {
		contents = append(contents, hit.Content)
		sources = append(sources, model.Source{
			SourceFile: sourceName(hit.SourceFile),
			Page:       pageLabel(hit.Page),
			Score:      roundScore(hit.Score),
		})
	}

	slog.Info("Found similar documents", "count", len(hits))
	return strings.Join(contents, contextSeparator), sources
}

// GenerateResponse produces the answer text for a chat turn. When contextText
// is non-empty the question is wrapped in the grounding prompt and the turn
// runs in RAG mode, otherwise the question goes to the model as-is. Failures
// are reported in-band: the caller receives a fixed apology and the
// unavailable mode instead of an error.
func (s *RAGService) GenerateResponse(ctx context.Context, query, contextText string) (string, model.ChatMode) {
	if err := textutil.ValidateInput(query, s.maxInputChars); err != nil {
		return fmt.Sprintf("Invalid input: %v", err), model.ModeUnavailable
	}

	prompt := query
	mode := model.ModeLLMOnly
	if contextText != "" {
		prompt = fmt.Sprintf(ragPromptTemplate, contextText, query)
		mode = model.ModeRAG
	}

	slog.Info("Generating response", "mode", mode, "provider", s.provider.Name())

	start := time.Now()
	resp, err := s.provider.Generate(ctx, &llm.GenerateRequest{
		Prompt:      prompt,
		Temperature: generationTemperature,
	})
	metrics.RecordGeneration(s.provider.Name(), time.Since(start).Seconds())
	if err != nil {
		slog.Error("Failed to generate response", "provider", s.provider.Name(), "error", err)
		return apologyText, model.ModeUnavailable
	}

	return strings.TrimSpace(resp.Response), mode
}

// pageLabel formats a 1-based page number for source attribution. Documents
// without page structure carry page 0 and are reported as "N/A".
func pageLabel(page int) string {
	if page <= 0 {
		return "N/A"
	}
	return strconv.Itoa(page)
}

func sourceName(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}

// roundScore trims a similarity score to four decimal places so response
// payloads stay readable.
func roundScore(score float64) float64 {
	return math.Round(score*10000) / 10000
}

// truncate shortens a string to a specified number of runes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
