package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"docuchat/backend/internal/model"
)

type sqliteChunkRepository struct {
	db *sql.DB
}

func NewSQLiteChunkRepository(db *sql.DB) ChunkRepository {
	return &sqliteChunkRepository{db: db}
}

// ReplaceAll rewrites the persisted index inside one transaction, so a crash
// mid-rebuild can never leave a half-written index behind.
func (r *sqliteChunkRepository) ReplaceAll(ctx context.Context, entries []model.IndexedChunk) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	// Ensure transaction is rolled back on error
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return fmt.Errorf("could not clear chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, source_file, page, start_index, content, vector)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("could not prepare chunk insert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		vector, err := json.Marshal(entry.Vector)
		if err != nil {
			return fmt.Errorf("could not encode vector for chunk %s: %w", entry.ID, err)
		}
		_, err = stmt.ExecContext(ctx,
			entry.ID,
			entry.SourceFile,
			entry.Page,
			entry.StartIndex,
			entry.Content,
			string(vector),
		)
		if err != nil {
			return fmt.Errorf("could not insert chunk %s: %w", entry.ID, err)
		}
	}

	return tx.Commit()
}

func (r *sqliteChunkRepository) LoadAll(ctx context.Context) ([]model.IndexedChunk, error) {
	query := `
		SELECT id, source_file, page, start_index, content, vector
		FROM chunks
		ORDER BY source_file, page, start_index
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.IndexedChunk
	for rows.Next() {
		var entry model.IndexedChunk
		var vector string
		if err := rows.Scan(&entry.ID, &entry.SourceFile, &entry.Page, &entry.StartIndex, &entry.Content, &vector); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(vector), &entry.Vector); err != nil {
			return nil, fmt.Errorf("could not decode vector for chunk %s: %w", entry.ID, err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *sqliteChunkRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&count)
	return count, err
}

func (r *sqliteChunkRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM chunks")
	return err
}

func (r *sqliteChunkRepository) GetMeta(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM index_meta WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *sqliteChunkRepository) SetMeta(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO index_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	_, err := r.db.ExecContext(ctx, query, key, value)
	return err
}
