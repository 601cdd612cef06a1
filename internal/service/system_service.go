package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"docuchat/backend/internal/config"
	"docuchat/backend/internal/document"
	"docuchat/backend/internal/llm"
	"docuchat/backend/internal/metrics"
	"docuchat/backend/internal/model"
	"docuchat/backend/internal/repository"
	"docuchat/backend/internal/vectorstore"
)

// chunkingMetaKey is the index_meta key recording the chunking parameters the
// persisted index was built with. A parameter change forces a rebuild.
const chunkingMetaKey = "chunking"

// SystemService owns the lifecycle of the RAG pipeline: loading the document
// corpus, building or restoring the vector index, and reporting readiness.
// Chat keeps working in LLM-only mode when any part of the pipeline after the
// language model fails to come up.
type SystemService struct {
	cfg      *config.Config
	loader   *document.Loader
	splitter *document.Splitter
	store    *vectorstore.Store
	repo     repository.ChunkRepository
	provider llm.Provider

	mu        sync.RWMutex
	llmReady  bool
	ragReady  bool
	dbReady   bool
	filenames []string
	initErr   string
}

func NewSystemService(
	cfg *config.Config,
	loader *document.Loader,
	splitter *document.Splitter,
	store *vectorstore.Store,
	repo repository.ChunkRepository,
	provider llm.Provider,
) *SystemService {
	return &SystemService{
		cfg:      cfg,
		loader:   loader,
		splitter: splitter,
		store:    store,
		repo:     repo,
		provider: provider,
	}
}

// Initialize brings the pipeline up. Only an unreachable language model
// backend is fatal; every later failure is logged and degrades the system to
// LLM-only mode so chat stays usable.
func (s *SystemService) Initialize(ctx context.Context) error {
	s.reset()

	slog.Info("Initializing system", "provider", s.provider.Name())

	// Step 1: The language model is the one hard dependency.
	if err := s.provider.Ping(ctx); err != nil {
		msg := fmt.Sprintf("LLM initialization failed: %v", err)
		s.failInit(msg)
		return fmt.Errorf("LLM initialization failed: %w", err)
	}
	s.markLLMReady()
	slog.Info("LLM backend is reachable", "provider", s.provider.Name())

	// Step 2: Load the corpus. A missing or empty folder is not an error.
	docs, filenames, err := s.loader.Load()
	if err != nil {
		slog.Warn("Could not load document corpus, continuing in LLM-only mode", "error", err)
		return nil
	}
	s.setFilenames(filenames)
	if len(docs) == 0 {
		slog.Warn("Document corpus is empty, continuing in LLM-only mode", "dir", s.cfg.DocsDir)
		return nil
	}

	// Step 3: Split into chunks.
	chunks := s.splitter.Split(docs)
	if len(chunks) == 0 {
		slog.Warn("Corpus produced no chunks, continuing in LLM-only mode")
		return nil
	}
	slog.Info("Corpus prepared", "documents", len(docs), "chunks", len(chunks))

	// Step 4: Restore the persisted index or rebuild it from the chunks.
	persisted := s.restoreOrRebuild(ctx, chunks)
	metrics.SetIndexedChunks(s.store.Len())
	s.markRAGReady(persisted)

	slog.Info("System initialized", "chunks", s.store.Len(), "persisted", persisted)
	return nil
}

// Reinitialize tears the pipeline down and runs Initialize again. Like
// Initialize, only a dead language model backend yields an error, and even
// then the failure is captured in the status for clients to inspect.
func (s *SystemService) Reinitialize(ctx context.Context) error {
	slog.Info("Reinitializing system")
	s.store.Clear()
	metrics.SetIndexedChunks(0)
	return s.Initialize(ctx)
}

// restoreOrRebuild loads the persisted index when it still matches the
// current corpus, otherwise re-embeds everything and persists the result.
// The return value reports whether the persisted copy ended up in sync with
// the in-memory index.
func (s *SystemService) restoreOrRebuild(ctx context.Context, chunks []model.Chunk) bool {
	if s.canReuse(ctx, len(chunks)) {
		entries, err := s.repo.LoadAll(ctx)
		if err == nil && len(entries) == len(chunks) {
			s.store.Load(entries)
			slog.Info("Using existing vector store", "chunks", len(entries))
			return true
		}
		slog.Warn("Failed to load persisted index, rebuilding", "error", err)
	}

	entries := s.store.Index(chunks)
	slog.Info("Vector index rebuilt", "chunks", len(entries))

	if err := s.persist(ctx, entries); err != nil {
		slog.Warn("Vector index is held in memory only", "error", err)
		return false
	}
	return true
}

// canReuse reports whether the persisted index matches the current corpus:
// same chunk count and same chunking parameters.
func (s *SystemService) canReuse(ctx context.Context, chunkCount int) bool {
	count, err := s.repo.Count(ctx)
	if err != nil {
		slog.Warn("Could not inspect persisted index", "error", err)
		return false
	}
	if count != chunkCount {
		if count > 0 {
			slog.Info("Persisted index is stale", "persisted", count, "current", chunkCount)
		}
		return false
	}
	meta, err := s.repo.GetMeta(ctx, chunkingMetaKey)
	if err != nil || meta != s.chunkingFingerprint() {
		return false
	}
	return true
}

// persist replaces the persisted index with the freshly built entries. The
// clear is retried a few times because another connection may briefly hold
// the database locked.
func (s *SystemService) persist(ctx context.Context, entries []model.IndexedChunk) error {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.RebuildAttempts; attempt++ {
		lastErr = s.repo.Clear(ctx)
		if lastErr == nil {
			break
		}
		slog.Warn("Could not clear persisted index", "attempt", attempt, "error", lastErr)
		if attempt < s.cfg.RebuildAttempts {
			time.Sleep(s.cfg.RetryDelay)
		}
	}
	if lastErr != nil {
		return fmt.Errorf("could not clear persisted index: %w", lastErr)
	}

	if err := s.repo.ReplaceAll(ctx, entries); err != nil {
		return err
	}
	return s.repo.SetMeta(ctx, chunkingMetaKey, s.chunkingFingerprint())
}

// chunkingFingerprint identifies the splitter configuration of a persisted
// index.
func (s *SystemService) chunkingFingerprint() string {
	return fmt.Sprintf("%d/%d", s.cfg.ChunkSize, s.cfg.ChunkOverlap)
}

// Available reports whether chat can be served at all.
func (s *SystemService) Available() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.llmReady
}

// RAGReady reports whether retrieval is usable for answering.
func (s *SystemService) RAGReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ragReady
}

// InitError returns the fatal initialization error message, or "" when the
// last initialization got past the language model check.
func (s *SystemService) InitError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initErr
}

// Status returns a snapshot of pipeline readiness for the status endpoint.
func (s *SystemService) Status() *model.SystemStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := &model.SystemStatus{
		RAGReady:    s.ragReady,
		LLMReady:    s.llmReady,
		DBReady:     s.dbReady,
		LoadedFiles: append([]string(nil), s.filenames...),
		InitError:   s.initErr,
	}
	switch {
	case s.ragReady:
		st.Message = "System ready (RAG mode with documents)"
	case s.llmReady:
		st.Message = "System ready (LLM-only mode)"
	case s.initErr != "":
		st.Message = "System has issues"
	default:
		st.Message = "System not ready"
	}
	return st
}

func (s *SystemService) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.llmReady = false
	s.ragReady = false
	s.dbReady = false
	s.filenames = nil
	s.initErr = ""
}

func (s *SystemService) failInit(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initErr = msg
}

func (s *SystemService) markLLMReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.llmReady = true
}

func (s *SystemService) markRAGReady(persisted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ragReady = true
	s.dbReady = persisted
}

func (s *SystemService) setFilenames(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filenames = names
}
