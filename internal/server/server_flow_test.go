package server

import (
	"net/http"
	"testing"
)

func TestBuzzFlow(t *testing.T) {
	srv := newBuzzerServer("4321")
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	status, body := doRequest(t, ts, http.MethodPost, "/api/buzz", map[string]any{"name": "Alice"})
	if status != http.StatusOK || body["outcome"] != "winner" {
		t.Fatalf("expected Alice to win, got %d %v", status, body)
	}
	firstRound := body["round_id"]

	status, body = doRequest(t, ts, http.MethodPost, "/api/buzz", map[string]any{"name": "Bob"})
	if status != http.StatusOK || body["outcome"] != "too_late" {
		t.Fatalf("expected Bob too late, got %d %v", status, body)
	}
	if body["sequence"] != float64(2) || body["winner_name"] != "Alice" {
		t.Fatalf("expected sequence 2 with winner Alice, got %v", body)
	}

	status, body = doRequest(t, ts, http.MethodGet, "/api/status", nil)
	if status != http.StatusOK || body["status"] != "locked" {
		t.Fatalf("expected locked status, got %d %v", status, body)
	}
	winner, ok := body["winner"].(map[string]any)
	if !ok || winner["participant"] != "Alice" || winner["sequence"] != float64(1) {
		t.Fatalf("expected winner Alice at sequence 1, got %v", body["winner"])
	}
	buzzes, ok := body["buzzes"].([]any)
	if !ok || len(buzzes) != 2 {
		t.Fatalf("expected 2 buzzes, got %v", body["buzzes"])
	}

	status, body = doRequest(t, ts, http.MethodPost, "/api/reset", map[string]any{"pin": "4321"})
	if status != http.StatusOK {
		t.Fatalf("expected reset to succeed, got %d %v", status, body)
	}
	if body["round_id"] == firstRound {
		t.Fatalf("expected a new round id, got %v twice", firstRound)
	}

	status, body = doRequest(t, ts, http.MethodGet, "/api/status", nil)
	if status != http.StatusOK || body["status"] != "open" {
		t.Fatalf("expected open round after reset, got %d %v", status, body)
	}
	if buzzes, ok := body["buzzes"].([]any); !ok || len(buzzes) != 0 {
		t.Fatalf("expected empty round after reset, got %v", body["buzzes"])
	}

	status, body = doRequest(t, ts, http.MethodPost, "/api/buzz", map[string]any{"name": "Bob"})
	if status != http.StatusOK || body["outcome"] != "winner" {
		t.Fatalf("expected Bob to win the new round, got %d %v", status, body)
	}
}

func TestBuzzRejectsBlankName(t *testing.T) {
	srv := newBuzzerServer("4321")
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	status, body := doRequest(t, ts, http.MethodPost, "/api/buzz", map[string]any{"name": "   "})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank name, got %d %v", status, body)
	}

	status, body = doRequest(t, ts, http.MethodGet, "/api/status", nil)
	if status != http.StatusOK {
		t.Fatalf("status: %d %v", status, body)
	}
	if buzzes, ok := body["buzzes"].([]any); !ok || len(buzzes) != 0 {
		t.Fatalf("blank buzz was recorded: %v", body["buzzes"])
	}
}

func TestBuzzRejectsUnknownFields(t *testing.T) {
	srv := newBuzzerServer("4321")
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	status, body := doRequest(t, ts, http.MethodPost, "/api/buzz", map[string]any{"name": "Ada", "extra": true})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d %v", status, body)
	}
}

func TestResetRequiresPIN(t *testing.T) {
	srv := newBuzzerServer("4321")
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	before, beforeBody := doRequest(t, ts, http.MethodGet, "/api/status", nil)
	if before != http.StatusOK {
		t.Fatalf("status: %d", before)
	}

	status, body := doRequest(t, ts, http.MethodPost, "/api/reset", map[string]any{"pin": "wrong"})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong pin, got %d %v", status, body)
	}

	after, afterBody := doRequest(t, ts, http.MethodGet, "/api/status", nil)
	if after != http.StatusOK || afterBody["round_id"] != beforeBody["round_id"] {
		t.Fatalf("rejected reset changed round: %v vs %v", beforeBody["round_id"], afterBody["round_id"])
	}
}

func TestViewsRender(t *testing.T) {
	srv := newBuzzerServer("4321")
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)

	for _, path := range []string{"/", "/host", "/display"} {
		resp, err := ts.Client().Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}
