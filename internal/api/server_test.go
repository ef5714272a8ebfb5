package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zhenglier/eo/internal/infra/config"
	"github.com/zhenglier/eo/internal/infra/store"
)

func setupServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	db, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := config.DefaultConfig()
	cfg.GA.PopSize = 8
	cfg.GA.BudgetFloorMS = 20

	s := NewServer(db, cfg)
	return s, httptest.NewServer(s.Handler())
}

func TestHealth(t *testing.T) {
	_, ts := setupServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestCreateAndGetSchedule(t *testing.T) {
	_, ts := setupServer(t)
	defer ts.Close()

	body, _ := json.Marshal(scheduleRequest{
		Input: "1\n0 0 10 5\n1 1 0 10 5\n2 1 0 10 5\n3 2 1 2 10 5\n",
	})
	resp, err := http.Post(ts.URL+"/v1/schedules/", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /v1/schedules: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var created scheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a non-empty run id")
	}
	if len(created.Schedule) != 4 {
		t.Errorf("len(Schedule) = %d, want 4", len(created.Schedule))
	}

	getResp, err := http.Get(ts.URL + "/v1/schedules/" + created.ID)
	if err != nil {
		t.Fatalf("GET /v1/schedules/%s: %v", created.ID, err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", getResp.StatusCode)
	}

	var fetched scheduleResponse
	if err := json.NewDecoder(getResp.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode get response: %v", err)
	}
	if fetched.Makespan != created.Makespan {
		t.Errorf("fetched makespan %d != created makespan %d", fetched.Makespan, created.Makespan)
	}
}

func TestGetSchedule_NotFound(t *testing.T) {
	_, ts := setupServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/schedules/does-not-exist")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestCreateSchedule_InvalidInput(t *testing.T) {
	_, ts := setupServer(t)
	defer ts.Close()

	body, _ := json.Marshal(scheduleRequest{Input: "not a valid graph"})
	resp, err := http.Post(ts.URL+"/v1/schedules/", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
