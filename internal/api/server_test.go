package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/manwithacat/dazzle-sub005/pkg/layout"
	"github.com/manwithacat/dazzle-sub005/pkg/pipeline"
	"github.com/manwithacat/dazzle-sub005/pkg/store"
)

const manifestBody = `{
  "workspaces": [
    {
      "id": "ops",
      "regions": [
        {"name": "health", "source": "orders", "aggregates": ["count"]},
        {"name": "inbox", "source": "tickets", "filter": "open", "limit": 10}
      ]
    }
  ]
}`

func testServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	archive := store.NewMemoryStore()
	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard))
	return NewServer(runner, archive, log.New(io.Discard)), archive
}

func TestHealthAndVersion(t *testing.T) {
	s, _ := testServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /health = %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/version")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var version map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&version); err != nil {
		t.Fatal(err)
	}
	if version["engine_version"] != layout.EngineVersion {
		t.Errorf("engine_version = %q", version["engine_version"])
	}
}

func TestComputePlans(t *testing.T) {
	s, archive := testServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/v1/plans", "application/json", strings.NewReader(manifestBody))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("POST /api/v1/plans = %d: %s", resp.StatusCode, body)
	}

	var result struct {
		Plans map[string]*layout.LayoutPlan `json:"plans"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	plan, ok := result.Plans["ops"]
	if !ok {
		t.Fatalf("response missing ops plan: %+v", result)
	}
	if plan.Archetype == "" || len(plan.Surfaces) == 0 {
		t.Errorf("plan = %+v", plan)
	}

	// Plans are archived as a side effect.
	entries, err := archive.ListByWorkspace(context.Background(), "ops", 0)
	if err != nil || len(entries) != 1 {
		t.Errorf("archive entries = %v, %v", entries, err)
	}
}

func TestComputePlansRejectsBadManifest(t *testing.T) {
	s, _ := testServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	tests := []struct {
		name string
		body string
		code string
	}{
		{"malformed json", "{not json", "INVALID_MANIFEST"},
		{"no workspaces", `{"workspaces": []}`, "INVALID_MANIFEST"},
		{
			"unknown hint",
			`{"workspaces": [{"id": "ops", "engine_hint": "mosaic", "regions": [{"name": "a"}]}]}`,
			"INVALID_HINT",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/v1/plans", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			var errResp struct {
				Code string `json:"code"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
				t.Fatal(err)
			}
			if errResp.Code != tt.code {
				t.Errorf("code = %q, want %q", errResp.Code, tt.code)
			}
		})
	}
}

func TestGetPlanByFingerprint(t *testing.T) {
	s, _ := testServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/v1/plans", "application/json", strings.NewReader(manifestBody))
	if err != nil {
		t.Fatal(err)
	}
	var result struct {
		Plans map[string]*layout.LayoutPlan `json:"plans"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	fingerprint := result.Plans["ops"].Metadata.Fingerprint

	resp, err = http.Get(srv.URL + "/api/v1/plans/" + fingerprint)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET plan = %d", resp.StatusCode)
	}
	var entry store.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		t.Fatal(err)
	}
	if entry.WorkspaceID != "ops" || entry.Fingerprint != fingerprint {
		t.Errorf("entry = %+v", entry)
	}
}

func TestGetPlanNotFound(t *testing.T) {
	s, _ := testServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/plans/deadbeef")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestListPlansEmpty(t *testing.T) {
	s, _ := testServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/workspaces/ops/plans")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var listing struct {
		Entries []store.Entry `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		t.Fatal(err)
	}
	if len(listing.Entries) != 0 {
		t.Errorf("entries = %+v, want empty", listing.Entries)
	}
}
