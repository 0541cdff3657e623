package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mortgagemind/internal/config"
	"mortgagemind/internal/database/zep"
	"mortgagemind/pkg/logger"
)

// fakeStore is a minimal in-process stand-in for the hosted graph store.
type fakeStore struct {
	mux *http.ServeMux

	knownUsers   map[string]bool
	addedUsers   []string
	addedData    []string
	searchStatus int
	addStatus    int
}

func newFakeStore() *fakeStore {
	f := &fakeStore{
		mux:        http.NewServeMux(),
		knownUsers: map[string]bool{},
	}

	f.mux.HandleFunc("GET /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !f.knownUsers[r.PathValue("id")] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	f.mux.HandleFunc("POST /users", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		f.addedUsers = append(f.addedUsers, body["user_id"])
		f.knownUsers[body["user_id"]] = true
		w.WriteHeader(http.StatusCreated)
	})

	f.mux.HandleFunc("POST /graph/search", func(w http.ResponseWriter, r *http.Request) {
		if f.searchStatus != 0 {
			w.WriteHeader(f.searchStatus)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"edges": []map[string]string{
				{"fact": "name is alice"},
				{"fact": "budget is £350,000"},
			},
		})
	})

	f.mux.HandleFunc("POST /graph", func(w http.ResponseWriter, r *http.Request) {
		if f.addStatus != 0 {
			w.WriteHeader(f.addStatus)
			return
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		f.addedData = append(f.addedData, body["data"])
		json.NewEncoder(w).Encode(map[string]string{"uuid": "episode-123"})
	})

	return f
}

func newTestGateway(t *testing.T, f *fakeStore, apiKey string) *ZepGateway {
	t.Helper()

	ts := httptest.NewServer(f.mux)
	t.Cleanup(ts.Close)

	client, err := zep.NewClient(
		&config.ZepConfig{APIKey: apiKey, BaseURL: ts.URL},
		config.CircuitBreakerConfig{Enabled: false},
	)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	return NewZepGateway(client, "", logger.New("gateway_test", "", ""))
}

func TestFetchFactsReturnsStoreEdges(t *testing.T) {
	g := newTestGateway(t, newFakeStore(), "test-key")

	facts, err := g.FetchFacts(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("FetchFacts() error = %v", err)
	}
	if len(facts) != 2 {
		t.Fatalf("expected 2 facts, got %d", len(facts))
	}
	if facts[0].Text != "name is alice" {
		t.Errorf("unexpected first fact %q", facts[0].Text)
	}
}

func TestFetchFactsDegradesOnStoreFailure(t *testing.T) {
	f := newFakeStore()
	f.searchStatus = http.StatusInternalServerError
	g := newTestGateway(t, f, "test-key")

	facts, err := g.FetchFacts(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected read failure to be swallowed, got error %v", err)
	}
	if len(facts) != 0 {
		t.Errorf("expected empty fact set, got %d", len(facts))
	}
}

func TestFetchFactsSurfacesMissingCredential(t *testing.T) {
	g := newTestGateway(t, newFakeStore(), "")

	_, err := g.FetchFacts(context.Background(), "user-1")
	if !errors.Is(err, zep.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestRecordTurnFormatsSpeakerAttribution(t *testing.T) {
	f := newFakeStore()
	f.knownUsers["user-1"] = true
	g := newTestGateway(t, f, "test-key")

	episodeID, err := g.RecordTurn(context.Background(), "user-1", "agent", "Hello", "Assistant")
	if err != nil {
		t.Fatalf("RecordTurn() error = %v", err)
	}
	if episodeID != "episode-123" {
		t.Errorf("expected episode id 'episode-123', got %q", episodeID)
	}
	if len(f.addedData) != 1 || f.addedData[0] != "Assistant (agent): Hello" {
		t.Errorf("unexpected stored data %v", f.addedData)
	}
	if len(f.addedUsers) != 0 {
		t.Errorf("expected no user creation for a known user, got %v", f.addedUsers)
	}
}

func TestRecordTurnOmitsAttributionWithoutName(t *testing.T) {
	f := newFakeStore()
	f.knownUsers["user-1"] = true
	g := newTestGateway(t, f, "test-key")

	if _, err := g.RecordTurn(context.Background(), "user-1", "user", "Hi there", ""); err != nil {
		t.Fatalf("RecordTurn() error = %v", err)
	}
	if len(f.addedData) != 1 || f.addedData[0] != "user: Hi there" {
		t.Errorf("unexpected stored data %v", f.addedData)
	}
}

func TestRecordTurnCreatesUnknownUser(t *testing.T) {
	f := newFakeStore()
	g := newTestGateway(t, f, "test-key")

	if _, err := g.RecordTurn(context.Background(), "new-user", "user", "Hello", ""); err != nil {
		t.Fatalf("RecordTurn() error = %v", err)
	}
	if len(f.addedUsers) != 1 || f.addedUsers[0] != "new-user" {
		t.Errorf("expected identity creation for 'new-user', got %v", f.addedUsers)
	}
}

func TestRecordTurnSurfacesWriteFailure(t *testing.T) {
	f := newFakeStore()
	f.knownUsers["user-1"] = true
	f.addStatus = http.StatusInternalServerError
	g := newTestGateway(t, f, "test-key")

	if _, err := g.RecordTurn(context.Background(), "user-1", "user", "Hello", ""); err == nil {
		t.Fatal("expected write failure to surface, got nil error")
	}
}
