package service

import (
	"context"

	"mortgagemind/internal/memory/aggregator"
	"mortgagemind/internal/models"
	"mortgagemind/pkg/logger"
)

// Gateway is the store boundary the service depends on. The production
// implementation lives in internal/memory/gateway; tests substitute fakes.
type Gateway interface {
	// FetchFacts returns the facts known about userID, or an empty slice
	// when the store has none or cannot be reached.
	FetchFacts(ctx context.Context, userID string) ([]models.Fact, error)
	// RecordTurn persists one conversation turn and returns the episode
	// identifier the store assigned.
	RecordTurn(ctx context.Context, userID, role, message, speakerName string) (string, error)
}

// MemoryService exposes the two operations of the user-memory engine:
// deriving a profile from stored facts and recording a new turn.
type MemoryService struct {
	gateway Gateway
	logger  *logger.Logger
}

// NewMemoryService creates a new MemoryService.
func NewMemoryService(gateway Gateway, log *logger.Logger) *MemoryService {
	return &MemoryService{gateway: gateway, logger: log}
}

// GetProfile recomputes the user's profile from the facts the store
// currently returns. There is no local cache: every call reads through to
// the store so the profile is never stale, a deliberate trade of latency
// for correctness at this call volume.
func (s *MemoryService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	facts, err := s.gateway.FetchFacts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return aggregator.Aggregate(userID, facts), nil
}

// RecordTurn forwards one conversation turn to the store. Role defaults
// to "user" when empty.
func (s *MemoryService) RecordTurn(ctx context.Context, turn *models.TurnEvent) (string, error) {
	role := turn.Role
	if role == "" {
		role = "user"
	}
	episodeID, err := s.gateway.RecordTurn(ctx, turn.UserID, role, turn.Message, turn.Name)
	if err != nil {
		return "", err
	}
	s.logger.WithPayload(map[string]interface{}{
		"user_id":    turn.UserID,
		"episode_id": episodeID,
	}).Debug("conversation turn recorded")
	return episodeID, nil
}
