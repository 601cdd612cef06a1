package interfaces

import (
	"context"

	"docuchat/backend/internal/model"
)

// This file defines the interfaces for our core services.
// Depending on these interfaces, instead of concrete implementations, allows for
// decoupling (e.g., API layer from Service layer) and easier testing via mocking.

// ChatService defines the contract for answering chat turns.
type ChatService interface {
	Ask(ctx context.Context, message string, kContext int) (*model.Answer, error)
}

// SystemService defines the contract for pipeline readiness and maintenance.
type SystemService interface {
	Status() *model.SystemStatus
	Reinitialize(ctx context.Context) error
}
