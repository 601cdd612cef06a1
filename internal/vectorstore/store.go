// Package vectorstore keeps the embedded chunk index in memory and answers
// similarity queries over it. The index is rebuilt from the document corpus
// at startup and mirrored to SQLite so later starts can skip re-embedding.
package vectorstore

import (
	"sort"
	"sync"

	"docuchat/backend/internal/embedding"
	"docuchat/backend/internal/model"
)

type Store struct {
	mu      sync.RWMutex
	entries []model.IndexedChunk
}

func New() *Store {
	return &Store{}
}

// Index embeds the given chunks and replaces the store contents with them.
// The embedded entries are returned so the caller can persist them.
func (s *Store) Index(chunks []model.Chunk) []model.IndexedChunk {
	entries := make([]model.IndexedChunk, 0, len(chunks))
	for _, chunk := range chunks {
		entries = append(entries, model.IndexedChunk{
			Chunk:  chunk,
			Vector: embedding.Embed(chunk.Content),
		})
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	return entries
}

// Load replaces the store contents with entries that were embedded earlier,
// typically read back from the persisted index.
func (s *Store) Load(entries []model.IndexedChunk) {
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
}

// Search ranks the stored chunks against the query and returns up to k hits
// with a positive similarity, best first. Ties are broken by chunk ID so
// results are deterministic.
func (s *Store) Search(query string, k int) []model.ScoredChunk {
	if k <= 0 {
		return nil
	}

	queryVec := embedding.Embed(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]model.ScoredChunk, 0, len(s.entries))
	for _, entry := range s.entries {
		score := embedding.Cosine(queryVec, entry.Vector)
		if score <= 0 {
			continue
		}
		results = append(results, model.ScoredChunk{
			Chunk: entry.Chunk,
			Score: score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score == results[j].Score {
			return results[i].ID < results[j].ID
		}
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}

// Len reports how many chunks are currently indexed.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear drops the in-memory index.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
}
