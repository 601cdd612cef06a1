// Package client implements the terminal chat client: a thin HTTP client for
// the service API and a conversation session that owns the transcript.
package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// chatRequest is the wire form of a chat question.
type chatRequest struct {
	Message string `json:"message"`
}

// chatReply is the subset of the chat payload the client consumes. The
// response field is a pointer so a missing key can be told apart from an
// empty answer, which is a valid reply.
type chatReply struct {
	Response *string `json:"response"`
	Mode     string  `json:"mode"`
}

// StatusReply is the wire form of the status endpoint.
type StatusReply struct {
	RAGReady   bool     `json:"rag_pipeline_ready"`
	LLMReady   bool     `json:"llm_ready"`
	DBReady    bool     `json:"db_ready"`
	LoadedPDFs []string `json:"loaded_pdfs"`
	Message    string   `json:"message"`
}

// APIClient talks to the chat service over HTTP.
type APIClient struct {
	http *resty.Client
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("User-Agent", "docuchat-cli")
	return &APIClient{http: httpClient}
}

// Send submits one question and returns the assistant's reply text. A
// transport error, a non-2xx status, or a payload without a response field
// is returned as an error; an empty reply text is a valid success.
func (c *APIClient) Send(ctx context.Context, message string) (string, error) {
	var reply chatReply
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{Message: message}).
		SetResult(&reply).
		Post("/api/chat")
	if err != nil {
		return "", fmt.Errorf("could not reach chat service: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("chat service answered %s", resp.Status())
	}
	if reply.Response == nil {
		return "", fmt.Errorf("chat service answered without a response field")
	}
	return *reply.Response, nil
}

// Status fetches the service readiness snapshot.
func (c *APIClient) Status(ctx context.Context) (*StatusReply, error) {
	var status StatusReply
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&status).
		Get("/api/status")
	if err != nil {
		return nil, fmt.Errorf("could not reach chat service: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("chat service answered %s", resp.Status())
	}
	return &status, nil
}
