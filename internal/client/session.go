package client

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the conversation transcript.
type Message struct {
	Role      Role
	Content   string
	CreatedAt time.Time
}

// ChatAPI is the part of the service client a session needs.
type ChatAPI interface {
	Send(ctx context.Context, message string) (string, error)
}

// DefaultFallbackText is shown in place of an assistant reply when the
// service cannot be reached or answers with anything unusable.
const DefaultFallbackText = "Sorry, something went wrong while contacting the assistant. Please try again."

// Session holds an append-only conversation transcript and submits questions
// to the service one turn at a time. The user's message is appended before
// the request is sent, and every turn ends with an assistant message: the
// service's reply on success, a fixed fallback on any failure. The transcript
// itself never carries technical error detail.
type Session struct {
	api      ChatAPI
	fallback string

	mu         sync.Mutex
	busy       bool
	transcript []Message
}

// NewSession wires a session to a service client. An empty fallbackText
// selects DefaultFallbackText.
func NewSession(api ChatAPI, fallbackText string) *Session {
	if fallbackText == "" {
		fallbackText = DefaultFallbackText
	}
	return &Session{api: api, fallback: fallbackText}
}

// Submit runs one conversation turn and reports whether it ran. Blank input
// and input submitted while a previous turn is still in flight are ignored.
func (s *Session) Submit(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return false
	}
	s.busy = true
	s.transcript = append(s.transcript, Message{
		Role:      RoleUser,
		Content:   text,
		CreatedAt: time.Now(),
	})
	s.mu.Unlock()

	reply, err := s.api.Send(ctx, text)
	if err != nil {
		slog.Warn("Chat request failed", "error", err)
		reply = s.fallback
	}

	s.mu.Lock()
	s.transcript = append(s.transcript, Message{
		Role:      RoleAssistant,
		Content:   reply,
		CreatedAt: time.Now(),
	})
	s.busy = false
	s.mu.Unlock()

	return true
}

// Busy reports whether a turn is currently in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Transcript returns a copy of the conversation so far, oldest first.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Last returns the newest transcript message, if any.
func (s *Session) Last() (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.transcript) == 0 {
		return Message{}, false
	}
	return s.transcript[len(s.transcript)-1], true
}
