package zep

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"mortgagemind/internal/config"
	"mortgagemind/internal/models"
	"mortgagemind/pkg/httpclient"
)

const (
	// DefaultBaseURL is the hosted graph-memory API endpoint.
	DefaultBaseURL = "https://api.getzep.com/api/v2"

	// ScopeEdges restricts graph searches to edge-level facts.
	ScopeEdges = "edges"
)

var (
	// ErrNotConfigured is returned when no API key is available. Retrying
	// cannot fix a missing credential, so callers surface it directly.
	ErrNotConfigured = errors.New("ZEP_API_KEY not configured")

	// ErrNotFound is returned when the store reports that the requested
	// resource does not exist.
	ErrNotFound = errors.New("not found")
)

// ZepClient talks to the hosted graph-memory store over its REST API.
// The store ingests raw conversation text and extracts facts server-side;
// this client only moves data across that boundary.
type ZepClient struct {
	apiKey     string
	baseURL    string
	httpClient *httpclient.Client
}

var (
	client  *ZepClient
	once    sync.Once
	initErr error
)

// GetClient initializes and returns the singleton ZepClient. The
// connection settings are fixed for the lifetime of the process.
func GetClient(cfg *config.ZepConfig, cbCfg config.CircuitBreakerConfig) (*ZepClient, error) {
	once.Do(func() {
		client, initErr = NewClient(cfg, cbCfg)
	})
	return client, initErr
}

// NewClient creates a ZepClient from the given configuration. Most code
// should use GetClient; tests construct clients against a local fake.
func NewClient(cfg *config.ZepConfig, cbCfg config.CircuitBreakerConfig) (*ZepClient, error) {
	httpClient, err := httpclient.NewClient(cbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create http client: %w", err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &ZepClient{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// GraphSearchRequest is a scoped search against one user's subgraph.
type GraphSearchRequest struct {
	GraphID string `json:"graph_id"`
	UserID  string `json:"user_id,omitempty"`
	Query   string `json:"query"`
	Limit   int    `json:"limit,omitempty"`
	Scope   string `json:"scope,omitempty"`
}

// GraphSearchResponse holds the edge-level facts a search returned.
type GraphSearchResponse struct {
	Edges []models.Fact `json:"edges"`
}

// GraphAddRequest appends one piece of data to a user's graph.
type GraphAddRequest struct {
	GraphID string `json:"graph_id"`
	UserID  string `json:"user_id,omitempty"`
	Type    string `json:"type"`
	Data    string `json:"data"`
}

// Episode is the store's acknowledgment of an appended conversation turn.
type Episode struct {
	UUID string `json:"uuid"`
}

// GetUser checks that a user identity exists in the store.
func (c *ZepClient) GetUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodGet, "/users/"+userID, nil, nil)
}

// AddUser creates a user identity in the store. The store treats
// duplicate creates for the same id as harmless.
func (c *ZepClient) AddUser(ctx context.Context, userID string) error {
	body := map[string]string{"user_id": userID}
	return c.do(ctx, http.MethodPost, "/users", body, nil)
}

// SearchGraph issues a scoped search and returns the matching facts.
func (c *ZepClient) SearchGraph(ctx context.Context, req *GraphSearchRequest) (*GraphSearchResponse, error) {
	var resp GraphSearchResponse
	if err := c.do(ctx, http.MethodPost, "/graph/search", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddEpisode appends data to a user's graph and returns the episode the
// store assigned to it.
func (c *ZepClient) AddEpisode(ctx context.Context, req *GraphAddRequest) (*Episode, error) {
	var episode Episode
	if err := c.do(ctx, http.MethodPost, "/graph", req, &episode); err != nil {
		return nil, err
	}
	return &episode, nil
}

// GetGraph checks that the graph namespace exists.
func (c *ZepClient) GetGraph(ctx context.Context, graphID string) error {
	return c.do(ctx, http.MethodGet, "/graph/"+graphID, nil, nil)
}

// CreateGraph creates the graph namespace.
func (c *ZepClient) CreateGraph(ctx context.Context, graphID string) error {
	body := map[string]string{"graph_id": graphID}
	return c.do(ctx, http.MethodPost, "/graph/create", body, nil)
}

// do executes one API call, decoding the response into out when out is
// non-nil.
func (c *ZepClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Api-Key "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to graph store failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("graph store returned status %d: %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
