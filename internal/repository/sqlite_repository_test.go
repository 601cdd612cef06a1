package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuchat/backend/internal/model"
	"docuchat/backend/internal/repository"
)

func setupRepo(t *testing.T) (repository.ChunkRepository, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return repository.NewSQLiteChunkRepository(db), mockDB
}

func sampleEntries() []model.IndexedChunk {
	return []model.IndexedChunk{
		{
			Chunk:  model.Chunk{ID: "c1", SourceFile: "a.pdf", Page: 1, StartIndex: 0, Content: "alpha"},
			Vector: map[string]float64{"alpha": 1},
		},
		{
			Chunk:  model.Chunk{ID: "c2", SourceFile: "a.pdf", Page: 2, StartIndex: 10, Content: "beta"},
			Vector: map[string]float64{"beta": 1},
		},
	}
}

func TestSQLiteChunkRepository_ReplaceAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mockDB := setupRepo(t)

		mockDB.ExpectBegin()
		mockDB.ExpectExec("DELETE FROM chunks").WillReturnResult(sqlmock.NewResult(0, 0))
		mockDB.ExpectPrepare("INSERT INTO chunks")
		mockDB.ExpectExec("INSERT INTO chunks").
			WithArgs("c1", "a.pdf", 1, 0, "alpha", `{"alpha":1}`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mockDB.ExpectExec("INSERT INTO chunks").
			WithArgs("c2", "a.pdf", 2, 10, "beta", `{"beta":1}`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mockDB.ExpectCommit()

		err := repo.ReplaceAll(ctx, sampleEntries())

		assert.NoError(t, err)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - insert fails and rolls back", func(t *testing.T) {
		repo, mockDB := setupRepo(t)

		mockDB.ExpectBegin()
		mockDB.ExpectExec("DELETE FROM chunks").WillReturnResult(sqlmock.NewResult(0, 0))
		mockDB.ExpectPrepare("INSERT INTO chunks")
		mockDB.ExpectExec("INSERT INTO chunks").
			WithArgs("c1", "a.pdf", 1, 0, "alpha", `{"alpha":1}`).
			WillReturnError(errors.New("disk I/O error"))
		mockDB.ExpectRollback()

		err := repo.ReplaceAll(ctx, sampleEntries())

		assert.ErrorContains(t, err, "could not insert chunk")
		require.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - cannot clear previous index", func(t *testing.T) {
		repo, mockDB := setupRepo(t)

		mockDB.ExpectBegin()
		mockDB.ExpectExec("DELETE FROM chunks").WillReturnError(errors.New("database is locked"))
		mockDB.ExpectRollback()

		err := repo.ReplaceAll(ctx, sampleEntries())

		assert.ErrorContains(t, err, "could not clear chunks")
		require.NoError(t, mockDB.ExpectationsWereMet())
	})
}

func TestSQLiteChunkRepository_LoadAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, mockDB := setupRepo(t)

		rows := sqlmock.NewRows([]string{"id", "source_file", "page", "start_index", "content", "vector"}).
			AddRow("c1", "a.pdf", 1, 0, "alpha", `{"alpha":1}`).
			AddRow("c2", "a.pdf", 2, 10, "beta", `{"beta":0.5}`)
		mockDB.ExpectQuery("SELECT id, source_file, page, start_index, content, vector").WillReturnRows(rows)

		entries, err := repo.LoadAll(ctx)

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "c1", entries[0].ID)
		assert.Equal(t, 1.0, entries[0].Vector["alpha"])
		assert.Equal(t, 0.5, entries[1].Vector["beta"])
		require.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - corrupted vector column", func(t *testing.T) {
		repo, mockDB := setupRepo(t)

		rows := sqlmock.NewRows([]string{"id", "source_file", "page", "start_index", "content", "vector"}).
			AddRow("c1", "a.pdf", 1, 0, "alpha", "not-json")
		mockDB.ExpectQuery("SELECT id, source_file, page, start_index, content, vector").WillReturnRows(rows)

		_, err := repo.LoadAll(ctx)

		assert.ErrorContains(t, err, "could not decode vector")
	})
}

func TestSQLiteChunkRepository_Count(t *testing.T) {
	ctx := context.Background()
	repo, mockDB := setupRepo(t)

	mockDB.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.Count(ctx)

	require.NoError(t, err)
	assert.Equal(t, 42, count)
}

func TestSQLiteChunkRepository_Clear(t *testing.T) {
	ctx := context.Background()
	repo, mockDB := setupRepo(t)

	mockDB.ExpectExec("DELETE FROM chunks").WillReturnResult(sqlmock.NewResult(0, 42))

	assert.NoError(t, repo.Clear(ctx))
	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestSQLiteChunkRepository_Meta(t *testing.T) {
	ctx := context.Background()

	t.Run("GetMeta returns stored value", func(t *testing.T) {
		repo, mockDB := setupRepo(t)

		mockDB.ExpectQuery("SELECT value FROM index_meta").
			WithArgs("chunking").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("1000/200"))

		value, err := repo.GetMeta(ctx, "chunking")

		require.NoError(t, err)
		assert.Equal(t, "1000/200", value)
	})

	t.Run("GetMeta maps missing key to ErrNotFound", func(t *testing.T) {
		repo, mockDB := setupRepo(t)

		mockDB.ExpectQuery("SELECT value FROM index_meta").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetMeta(ctx, "missing")

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("SetMeta upserts", func(t *testing.T) {
		repo, mockDB := setupRepo(t)

		mockDB.ExpectExec("INSERT INTO index_meta").
			WithArgs("chunking", "1000/200").
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, repo.SetMeta(ctx, "chunking", "1000/200"))
		require.NoError(t, mockDB.ExpectationsWereMet())
	})
}
