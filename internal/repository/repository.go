package repository

import (
	"context"

	"docuchat/backend/internal/model"
)

// ChunkRepository defines the interface for persisting the embedded chunk
// index between runs. This interface makes it easy to switch database
// implementations.
type ChunkRepository interface {
	// ReplaceAll atomically swaps the persisted index for the given entries.
	ReplaceAll(ctx context.Context, entries []model.IndexedChunk) error
	// LoadAll returns every persisted entry with its embedding decoded.
	LoadAll(ctx context.Context) ([]model.IndexedChunk, error)
	// Count reports how many chunks are persisted.
	Count(ctx context.Context) (int, error)
	// Clear removes every persisted chunk.
	Clear(ctx context.Context) error

	// GetMeta and SetMeta store small key-value facts about the index, such
	// as the chunking parameters it was built with.
	GetMeta(ctx context.Context, key string) (string, error)
	SetMeta(ctx context.Context, key, value string) error
}
