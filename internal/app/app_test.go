package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuchat/backend/internal/config"
)

// fakeOllama answers the two endpoints the provider uses: the model list for
// the readiness check and the completion endpoint for generation.
func fakeOllama(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/tags":
			_, _ = w.Write([]byte(`{"models": [{"name": "llama3"}]}`))
		case "/api/generate":
			_, _ = w.Write([]byte(`{"model": "llama3", "response": "` + reply + `", "done": true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func testAppConfig(t *testing.T, ollamaURL string) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		AppPort:         5001,
		LogLevel:        "DEBUG",
		DocsDir:         filepath.Join(dir, "content"),
		VectorDBPath:    filepath.Join(dir, "vector_store", "index.db"),
		LLMProvider:     config.ProviderOllama,
		OllamaURL:       ollamaURL,
		OllamaModel:     "llama3",
		ChunkSize:       500,
		ChunkOverlap:    50,
		RetrievalK:      5,
		MaxInputChars:   5000,
		CORSOrigin:      "*",
		RebuildAttempts: 1,
		RetryDelay:      time.Millisecond,
	}
}

func TestNewApp(t *testing.T) {
	ollamaServer := fakeOllama(t, "hello")
	cfg := testAppConfig(t, ollamaServer.URL)

	application, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, application)

	defer func() { require.NoError(t, application.DB.Close()) }()

	assert.NotNil(t, application.DB)
	assert.NotNil(t, application.System)
	assert.NotNil(t, application.Server)
	assert.Equal(t, ":5001", application.Server.Addr)
}

// TestApp_ServesChat drives a full chat turn through the assembled HTTP
// stack: router, handler, services, vector store, and a fake model backend.
func TestApp_ServesChat(t *testing.T) {
	ctx := context.Background()
	ollamaServer := fakeOllama(t, "Sunlight becomes electricity.")

	cfg := testAppConfig(t, ollamaServer.URL)
	require.NoError(t, os.MkdirAll(cfg.DocsDir, 0o750))
	require.NoError(t, os.WriteFile(
		filepath.Join(cfg.DocsDir, "guide.txt"),
		[]byte("Solar panels convert sunlight into electricity using photovoltaic cells."),
		0o644,
	))

	application, err := NewApp(ctx, cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, application.DB.Close()) }()

	require.NoError(t, application.System.Initialize(ctx))

	srv := httptest.NewServer(application.Server.Handler)
	defer srv.Close()

	t.Run("Chat turn is grounded in the corpus", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/chat", "application/json",
			strings.NewReader(`{"message": "How do solar panels work?"}`))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"mode":"RAG"`)
		assert.Contains(t, string(body), "Sunlight becomes electricity.")
		assert.Contains(t, string(body), `"source_file":"guide.txt"`)
	})

	t.Run("Status reports a ready pipeline", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/status")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"rag_pipeline_ready":true`)
		assert.Contains(t, string(body), `"loaded_pdfs":["guide.txt"]`)
	})
}
