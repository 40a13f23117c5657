package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mindhaven/internal/core/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Options{BaseURL: server.URL, CSRFToken: "token-123"})
}

func TestSubmitCheckInSendsPayloadAndToken(t *testing.T) {
	var gotToken string
	var gotPayload map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: got %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/therapy/checkins/" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		gotToken = r.Header.Get("X-CSRFToken")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "message": "saved"}`))
	})

	checkIn := model.CheckIn{
		ClientID:  "abc",
		Emotion:   model.EmotionCalm,
		Intensity: model.IntensityModerate,
		Page:      "/dashboard/",
		CreatedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
	if err := client.SubmitCheckIn(context.Background(), checkIn); err != nil {
		t.Fatalf("SubmitCheckIn failed: %v", err)
	}

	if gotToken != "token-123" {
		t.Errorf("csrf token: got %q", gotToken)
	}
	if gotPayload["emotion"] != "calm" {
		t.Errorf("emotion: got %v", gotPayload["emotion"])
	}
	if gotPayload["intensity"] != float64(3) {
		t.Errorf("intensity: got %v", gotPayload["intensity"])
	}
	if gotPayload["timestamp"] != "2026-03-14T09:26:53Z" {
		t.Errorf("timestamp: got %v", gotPayload["timestamp"])
	}
	if gotPayload["page"] != "/dashboard/" {
		t.Errorf("page: got %v", gotPayload["page"])
	}
}

func TestStrategiesBuildsFilterQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if got := query.Get("strategy_type"); got != "breathing" {
			t.Errorf("strategy_type: got %q", got)
		}
		if got := query.Get("emotion"); got != "anxious" {
			t.Errorf("emotion: got %q", got)
		}
		if got := query.Get("duration"); got != "10" {
			t.Errorf("duration: got %q", got)
		}
		w.Write([]byte(`{"success": true, "results": [
			{"id": 7, "name": "Box Breathing", "strategy_type": "breathing", "estimated_minutes": 2}
		]}`))
	})

	strategies, err := client.Strategies(context.Background(), model.StrategyFilter{
		Type:       model.StrategyBreathing,
		Emotion:    model.EmotionAnxious,
		MaxMinutes: 10,
	})
	if err != nil {
		t.Fatalf("Strategies failed: %v", err)
	}
	if len(strategies) != 1 {
		t.Fatalf("strategies: got %d, want 1", len(strategies))
	}
	if strategies[0].ID != 7 || strategies[0].Name != "Box Breathing" {
		t.Errorf("strategy: got %+v", strategies[0])
	}
	if strategies[0].Type != model.StrategyBreathing {
		t.Errorf("type: got %q", strategies[0].Type)
	}
}

func TestMarkStrategyTriedPostsByID(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"success": true}`))
	})
	if err := client.MarkStrategyTried(context.Background(), 42); err != nil {
		t.Fatalf("MarkStrategyTried failed: %v", err)
	}
	if gotPath != "/api/therapy/strategies/42/mark_tried/" {
		t.Errorf("path: got %q", gotPath)
	}
}

func TestNonSuccessStatusBecomesStatusError(t *testing.T) {
	cases := []int{401, 403, 500, 502}
	for _, status := range cases {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})
		err := client.TrackActivity(context.Background(), "/learn/", 5, "reading")
		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("status %d: got %v, want StatusError", status, err)
		}
		if statusErr.Status != status {
			t.Errorf("status: got %d, want %d", statusErr.Status, status)
		}
	}
}

func TestEnvelopeFailureBecomesStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "message": "intensity out of range"}`))
	})
	err := client.SubmitCheckIn(context.Background(), model.CheckIn{
		Emotion:   model.EmotionCalm,
		Intensity: model.IntensityModerate,
		CreatedAt: time.Now(),
	})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("got %v, want StatusError", err)
	}
	if statusErr.Message != "intensity out of range" {
		t.Errorf("message: got %q", statusErr.Message)
	}
}
