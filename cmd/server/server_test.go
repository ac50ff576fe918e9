package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/beadreader/internal/infrastructure"
	"github.com/JaimeStill/beadreader/pkg/lifecycle"
)

type stubDatabase struct {
	ready bool
}

func (s *stubDatabase) Connection() *sql.DB                   { return nil }
func (s *stubDatabase) Ready() bool                           { return s.ready }
func (s *stubDatabase) Check(context.Context) error           { return nil }
func (s *stubDatabase) Start(lc *lifecycle.Coordinator) error { return nil }

func TestProbes(t *testing.T) {
	db := &stubDatabase{}
	infra := &infrastructure.Infrastructure{Lifecycle: lifecycle.New(), Database: db}
	router := buildRouter(infra)

	probe := func(path string) (int, string) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))

		var body map[string]string
		json.NewDecoder(rec.Body).Decode(&body)
		return rec.Code, body["status"]
	}

	if code, status := probe("/healthz"); code != http.StatusOK || status != "ok" {
		t.Errorf("healthz = %d %q", code, status)
	}

	if code, status := probe("/readyz"); code != http.StatusServiceUnavailable || status != "not ready" {
		t.Errorf("readyz before startup = %d %q", code, status)
	}

	infra.Lifecycle.WaitForStartup()

	if code, status := probe("/readyz"); code != http.StatusServiceUnavailable || status != "database unavailable" {
		t.Errorf("readyz with database down = %d %q", code, status)
	}

	db.ready = true

	if code, status := probe("/readyz"); code != http.StatusOK || status != "ready" {
		t.Errorf("readyz after startup = %d %q", code, status)
	}
}
