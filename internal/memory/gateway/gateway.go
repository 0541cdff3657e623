// Package gateway mediates all reads and writes against the external
// graph-memory store. Reads degrade to an empty fact set on any failure;
// writes surface their errors to the caller.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"mortgagemind/internal/database/zep"
	"mortgagemind/internal/models"
	"mortgagemind/pkg/logger"
)

const (
	// factQuery is the fixed natural-language hint used for profile
	// searches, tuned to the mortgage domain.
	factQuery = "user name mortgage property budget first-time buyer"

	// factLimit caps how many facts one search may return.
	factLimit = 20

	// DefaultGraphID is the namespace under which all users'
	// conversational memory lives.
	DefaultGraphID = "mortgage_calculator"
)

// ZepGateway implements the store boundary on top of the ZepClient.
type ZepGateway struct {
	client  *zep.ZepClient
	graphID string
	logger  *logger.Logger
}

// NewZepGateway creates a gateway scoped to graphID. An empty graphID
// falls back to the application default.
func NewZepGateway(client *zep.ZepClient, graphID string, log *logger.Logger) *ZepGateway {
	if graphID == "" {
		graphID = DefaultGraphID
	}
	return &ZepGateway{client: client, graphID: graphID, logger: log}
}

// FetchFacts returns the edge-level facts the store holds for userID.
// A store failure or an unknown user both yield an empty slice: profile
// retrieval must never fail the caller, it degrades to an anonymous
// profile instead. The one exception is a missing credential, which is
// surfaced so the caller can report the misconfiguration.
func (g *ZepGateway) FetchFacts(ctx context.Context, userID string) ([]models.Fact, error) {
	resp, err := g.client.SearchGraph(ctx, &zep.GraphSearchRequest{
		GraphID: g.graphID,
		UserID:  userID,
		Query:   factQuery,
		Limit:   factLimit,
		Scope:   zep.ScopeEdges,
	})
	if err != nil {
		if errors.Is(err, zep.ErrNotConfigured) {
			return nil, err
		}
		g.logger.WithError(models.ErrorInfo{Message: err.Error(), Type: "store_error"}).
			Warn("no facts found for user, serving default profile")
		return []models.Fact{}, nil
	}
	if resp.Edges == nil {
		return []models.Fact{}, nil
	}
	return resp.Edges, nil
}

// RecordTurn ensures the user identity exists, formats the message with
// speaker attribution and appends it to the user's graph. The store
// extracts facts from the episode on its own. Unlike reads, any failure
// here is returned: a dropped write is lost conversational context.
func (g *ZepGateway) RecordTurn(ctx context.Context, userID, role, message, speakerName string) (string, error) {
	// Get-or-create is deliberately not serialized across concurrent
	// callers; the store rejects duplicate creates harmlessly.
	if err := g.client.GetUser(ctx, userID); err != nil {
		if errors.Is(err, zep.ErrNotConfigured) {
			return "", err
		}
		if err := g.client.AddUser(ctx, userID); err != nil {
			return "", fmt.Errorf("failed to create user identity: %w", err)
		}
	}

	formatted := fmt.Sprintf("%s: %s", role, message)
	if speakerName != "" {
		formatted = fmt.Sprintf("%s (%s): %s", speakerName, role, message)
	}

	episode, err := g.client.AddEpisode(ctx, &zep.GraphAddRequest{
		GraphID: g.graphID,
		UserID:  userID,
		Type:    "message",
		Data:    formatted,
	})
	if err != nil {
		return "", fmt.Errorf("failed to append episode: %w", err)
	}
	return episode.UUID, nil
}
