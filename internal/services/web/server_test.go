package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/caoslabs/caos/internal/app"
	"github.com/caoslabs/caos/internal/catalog"
	"github.com/caoslabs/caos/internal/catalog/loader"
	"github.com/caoslabs/caos/internal/session"
	"github.com/caoslabs/caos/internal/session/storage"
)

type memStore struct {
	record *storage.Record
}

func (s *memStore) Get(ctx context.Context) (storage.Record, error) {
	if s.record == nil {
		return storage.Record{}, storage.ErrNotFound
	}
	return *s.record, nil
}

func (s *memStore) Put(ctx context.Context, record storage.Record) error {
	s.record = &record
	return nil
}

func (s *memStore) Clear(ctx context.Context) error {
	s.record = nil
	return nil
}

func startServer(t *testing.T) *Server {
	t.Helper()

	logger := log.New(io.Discard, "", 0)
	sessions, err := session.NewManager(session.Config{Store: &memStore{}, Logger: logger})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	provider := catalog.ProviderFunc(func(ctx context.Context, category string) ([]catalog.Listing, error) {
		return []catalog.Listing{{ID: "l1", Kind: catalog.KindEvent, Title: "Listing l1"}}, nil
	})

	orchestrator, err := app.New(app.Config{
		Sessions: sessions,
		Loader:   loader.New(loader.Config{}),
		Provider: provider,
		Logger:   logger,
	})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = orchestrator.Run(ctx) }()

	server, err := NewServer(Config{
		HTTPAddr: "localhost:0",
		App:      orchestrator,
		Logger:   logger,
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return server
}

func getState(t *testing.T, server *Server) StateView {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/state status = %d, want %d", rec.Code, http.StatusOK)
	}

	var state StateView
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return state
}

func postIntent(t *testing.T, server *Server, name string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/intents/"+name, &body)
	req.Header.Set("Content-Type", "application/json")
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func waitForState(t *testing.T, server *Server, describe string, cond func(StateView) bool) StateView {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for {
		state := getState(t, server)
		if cond(state) {
			return state
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s; view = %s", describe, state.View)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewServerRequiresAddrAndApp(t *testing.T) {
	if _, err := NewServer(Config{App: nil, HTTPAddr: "localhost:0"}); err == nil {
		t.Fatal("NewServer() error = nil, want error")
	}
	if _, err := NewServer(Config{HTTPAddr: " "}); err == nil {
		t.Fatal("NewServer() error = nil, want error")
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := startServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestStateEndpointShape(t *testing.T) {
	server := startServer(t)

	state := waitForState(t, server, "ready", func(s StateView) bool { return s.Ready })
	if state.View != "HOME" {
		t.Fatalf("view = %q, want HOME", state.View)
	}
	if len(state.Catalog.Categories) != 10 {
		t.Fatalf("categories = %d, want 10", len(state.Catalog.Categories))
	}
	if state.Catalog.Selected != catalog.CategoryAll {
		t.Fatalf("selected = %q, want %q", state.Catalog.Selected, catalog.CategoryAll)
	}
	if state.Session != nil {
		t.Fatal("session present while unauthenticated")
	}
}

func TestRegisterIntentFlowsIntoOnboarding(t *testing.T) {
	server := startServer(t)
	waitForState(t, server, "ready", func(s StateView) bool { return s.Ready })

	rec := postIntent(t, server, "submitRegister", map[string]string{"email": "a@b.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST submitRegister status = %d, want %d", rec.Code, http.StatusOK)
	}

	state := waitForState(t, server, "onboarding", func(s StateView) bool {
		return s.View == "ONBOARDING"
	})
	if state.Session == nil || state.Session.Handle != "@a" {
		t.Fatalf("session = %+v, want handle @a", state.Session)
	}
	if state.Session.JoinedLabel == "" {
		t.Fatal("joined label is empty")
	}
	if state.Wizard == nil {
		t.Fatal("wizard missing in onboarding view")
	}
	if len(state.Wizard.DisciplineTags) != 10 {
		t.Fatalf("discipline tags = %d, want 10", len(state.Wizard.DisciplineTags))
	}
}

func TestSelectCategoryIntent(t *testing.T) {
	server := startServer(t)
	waitForState(t, server, "initial listings", func(s StateView) bool {
		return !s.Catalog.IsLoading && len(s.Catalog.Listings) == 1
	})

	rec := postIntent(t, server, "selectCategory", map[string]string{"key": "music"})
	if rec.Code != http.StatusOK {
		t.Fatalf("POST selectCategory status = %d, want %d", rec.Code, http.StatusOK)
	}

	state := waitForState(t, server, "music listings", func(s StateView) bool {
		return s.Catalog.Selected == "music" && !s.Catalog.IsLoading
	})
	if len(state.Catalog.Listings) != 1 {
		t.Fatalf("listings = %d, want 1", len(state.Catalog.Listings))
	}
}

func TestUnknownIntentRejected(t *testing.T) {
	server := startServer(t)

	rec := postIntent(t, server, "explode", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("POST explode status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestInvalidCategoryRejected(t *testing.T) {
	server := startServer(t)

	rec := postIntent(t, server, "selectCategory", map[string]string{"key": "bogus"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("POST selectCategory status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestMalformedPayloadRejected(t *testing.T) {
	server := startServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/intents/selectCategory", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
