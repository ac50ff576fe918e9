package sessions_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/beadreader/internal/interpret"
	"github.com/JaimeStill/beadreader/internal/sessions"
)

type mockSystem struct {
	createFn func(ctx context.Context, cmd sessions.CreateCommand) (*sessions.Session, error)
	findFn   func(ctx context.Context, id uuid.UUID) (*sessions.Session, error)
	closeFn  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSystem) Handler() *sessions.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) Create(ctx context.Context, cmd sessions.CreateCommand) (*sessions.Session, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*sessions.Session, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Record(_ context.Context, _ uuid.UUID, _ interpret.Outcome) (*sessions.Session, error) {
	return nil, fmt.Errorf("not used")
}

func (m *mockSystem) Close(ctx context.Context, id uuid.UUID) error {
	return m.closeFn(ctx, id)
}

func newTestHandler(sys sessions.System) *sessions.Handler {
	return sessions.NewHandler(sys, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupMux(h *sessions.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

var sampleID = uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

func sampleSession() *sessions.Session {
	return &sessions.Session{
		ID:        sampleID,
		Source:    sessions.SourceCamera,
		History:   []interpret.Color{interpret.Primary, interpret.Neutral},
		Strip:     "A E",
		Advisory:  "💎 BEADREADER SIGNAL:\n\n🚀 ENTRY: BLUE",
		Status:    interpret.StatusOK,
		Analyses:  3,
		CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 1, 15, 10, 5, 0, 0, time.UTC),
	}
}

func TestHandlerCreate(t *testing.T) {
	t.Run("creates session", func(t *testing.T) {
		var captured sessions.CreateCommand
		sys := &mockSystem{
			createFn: func(_ context.Context, cmd sessions.CreateCommand) (*sessions.Session, error) {
				captured = cmd
				return &sessions.Session{ID: sampleID, Source: cmd.Source}, nil
			},
		}
		mux := setupMux(sys.Handler())

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/sessions", strings.NewReader(`{"source":"screen"}`))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if captured.Source != sessions.SourceScreen {
			t.Errorf("source = %s, want screen", captured.Source)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		mux := setupMux(newTestHandler(&mockSystem{}))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/sessions", strings.NewReader(`{`))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("invalid source", func(t *testing.T) {
		sys := &mockSystem{
			createFn: func(_ context.Context, cmd sessions.CreateCommand) (*sessions.Session, error) {
				return nil, fmt.Errorf("%w: %q", sessions.ErrInvalidSource, cmd.Source)
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/sessions", strings.NewReader(`{"source":"webcam"}`))
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerFind(t *testing.T) {
	sys := &mockSystem{
		findFn: func(_ context.Context, id uuid.UUID) (*sessions.Session, error) {
			if id != sampleID {
				return nil, sessions.ErrNotFound
			}
			return sampleSession(), nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	t.Run("returns session with strip", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/sessions/"+sampleID.String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var got sessions.Session
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Strip != "A E" {
			t.Errorf("strip = %q, want %q", got.Strip, "A E")
		}
		if len(got.History) != 2 || got.History[1] != interpret.Neutral {
			t.Errorf("history = %v", got.History)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/sessions/"+uuid.NewString(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/sessions/not-a-uuid", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerClose(t *testing.T) {
	var closed uuid.UUID
	sys := &mockSystem{
		closeFn: func(_ context.Context, id uuid.UUID) error {
			if id != sampleID {
				return sessions.ErrNotFound
			}
			closed = id
			return nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	t.Run("closes session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/sessions/"+sampleID.String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		if closed != sampleID {
			t.Errorf("closed = %v, want %v", closed, sampleID)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/sessions/"+uuid.NewString(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}
