package formclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"thesisdesk/internal/model"
)

// recordingServer tracks which paths were hit, in order
type recordingServer struct {
	mu    sync.Mutex
	hits  []string
	serve func(w http.ResponseWriter, r *http.Request)
}

func (rs *recordingServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.mu.Lock()
		rs.hits = append(rs.hits, r.Method+" "+r.URL.Path)
		rs.mu.Unlock()
		rs.serve(w, r)
	})
}

func (rs *recordingServer) paths() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]string(nil), rs.hits...)
}

func newTestClient(baseURL string) *Client {
	return NewClient(Config{BaseURL: baseURL, Token: "test-token"})
}

func TestFetchSchemaFirstEndpointWins(t *testing.T) {
	rs := &recordingServer{serve: func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"title":     "Defense Feedback",
			"questions": []interface{}{},
		})
	}}
	srv := httptest.NewServer(rs.handler())
	defer srv.Close()

	raw, err := newTestClient(srv.URL).FetchSchema(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if raw["title"] != "Defense Feedback" {
		t.Errorf("title = %v", raw["title"])
	}
	if got := rs.paths(); len(got) != 1 || got[0] != "GET /v3/feedback/schema" {
		t.Errorf("hits = %v, want only the first candidate", got)
	}
}

func TestFetchSchemaFallsBackInOrder(t *testing.T) {
	rs := &recordingServer{serve: func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v3/feedback/schema":
			http.Error(w, "gone", http.StatusNotFound)
		case "/v2/forms/defense-feedback":
			// Success status but unparseable body also counts as failure
			w.Write([]byte("<html>not json</html>"))
		case "/api/feedback-form":
			json.NewEncoder(w).Encode(map[string]interface{}{"title": "Legacy"})
		}
	}}
	srv := httptest.NewServer(rs.handler())
	defer srv.Close()

	raw, err := newTestClient(srv.URL).FetchSchema(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if raw["title"] != "Legacy" {
		t.Errorf("title = %v", raw["title"])
	}

	want := []string{
		"GET /v3/feedback/schema",
		"GET /v2/forms/defense-feedback",
		"GET /api/feedback-form",
	}
	got := rs.paths()
	if len(got) != len(want) {
		t.Fatalf("hits = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("hit %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestFetchSchemaAllFailNoRetry(t *testing.T) {
	rs := &recordingServer{serve: func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}}
	srv := httptest.NewServer(rs.handler())
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchSchema(context.Background())
	var ingestErr *IngestionError
	if !errors.As(err, &ingestErr) {
		t.Fatalf("err = %v, want IngestionError", err)
	}
	if ingestErr.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", ingestErr.Attempts)
	}
	if ingestErr.LastErr == nil {
		t.Error("LastErr must carry the final failure")
	}
	// One ordered pass: each endpoint tried exactly once
	if got := rs.paths(); len(got) != 3 {
		t.Errorf("hits = %v, want exactly 3 with no retries", got)
	}
}

func TestFetchSchemaUnwrapsEnvelope(t *testing.T) {
	rs := &recordingServer{serve: func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"schema": map[string]interface{}{
				"title": "Wrapped",
				// Inner envelope key must not be unwrapped again
				"data": map[string]interface{}{"nested": true},
			},
		})
	}}
	srv := httptest.NewServer(rs.handler())
	defer srv.Close()

	raw, err := newTestClient(srv.URL).FetchSchema(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if raw["title"] != "Wrapped" {
		t.Errorf("title = %v, want envelope unwrapped once", raw["title"])
	}
	if _, ok := raw["data"]; !ok {
		t.Error("inner data key lost; envelope unwrap must not recurse")
	}
}

func TestFetchItemDefaults(t *testing.T) {
	rs := &recordingServer{serve: func(w http.ResponseWriter, r *http.Request) {
		// No id, status, or answers in the payload
		json.NewEncoder(w).Encode(map[string]interface{}{
			"item": map[string]interface{}{"scheduleId": "sched-9"},
		})
	}}
	srv := httptest.NewServer(rs.handler())
	defer srv.Close()

	item, err := newTestClient(srv.URL).FetchItem(context.Background(), "item-42")
	if err != nil {
		t.Fatal(err)
	}
	if item.ID != "item-42" {
		t.Errorf("ID = %q, want requested id backfilled", item.ID)
	}
	if item.Status != model.ItemStatusPending {
		t.Errorf("Status = %s, want pending default", item.Status)
	}
	if item.Answers == nil {
		t.Error("Answers must default to an empty map")
	}
	if item.ScheduleID != "sched-9" {
		t.Errorf("ScheduleID = %q", item.ScheduleID)
	}
}

func TestFetchItemSubstitutesID(t *testing.T) {
	rs := &recordingServer{serve: func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "item-7", "status": "pending"})
	}}
	srv := httptest.NewServer(rs.handler())
	defer srv.Close()

	if _, err := newTestClient(srv.URL).FetchItem(context.Background(), "item-7"); err != nil {
		t.Fatal(err)
	}
	if got := rs.paths(); len(got) != 1 || got[0] != "GET /v3/feedback/items/item-7" {
		t.Errorf("hits = %v", got)
	}
}

func TestSaveAnswersStatusOnly(t *testing.T) {
	var gotBody map[string]interface{}
	rs := &recordingServer{}
	rs.serve = func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		// Non-JSON body with a success status is still a success
		w.WriteHeader(http.StatusNoContent)
	}
	srv := httptest.NewServer(rs.handler())
	defer srv.Close()

	answers := model.AnswerMap{"q1": "v"}
	if err := newTestClient(srv.URL).SaveAnswers(context.Background(), "item-1", answers); err != nil {
		t.Fatal(err)
	}

	inner, ok := gotBody["answers"].(map[string]interface{})
	if !ok || inner["q1"] != "v" {
		t.Errorf("request body = %v, want answers wrapper", gotBody)
	}
	if got := rs.paths(); len(got) != 1 || got[0] != "PATCH /v3/feedback/items/item-1" {
		t.Errorf("hits = %v", got)
	}
}

func TestSubmitItemAdoptsReturnedRecord(t *testing.T) {
	rs := &recordingServer{serve: func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"result": map[string]interface{}{
				"id":     "item-1",
				"status": "submitted",
			},
		})
	}}
	srv := httptest.NewServer(rs.handler())
	defer srv.Close()

	item, err := newTestClient(srv.URL).SubmitItem(context.Background(), "item-1", model.AnswerMap{})
	if err != nil {
		t.Fatal(err)
	}
	if item == nil || item.Status != model.ItemStatusSubmitted {
		t.Fatalf("item = %+v, want submitted record adopted", item)
	}
}

func TestSubmitItemIgnoresStatuslessBody(t *testing.T) {
	rs := &recordingServer{serve: func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true})
	}}
	srv := httptest.NewServer(rs.handler())
	defer srv.Close()

	item, err := newTestClient(srv.URL).SubmitItem(context.Background(), "item-1", model.AnswerMap{})
	if err != nil {
		t.Fatal(err)
	}
	if item != nil {
		t.Errorf("item = %+v, want nil so the caller synthesizes the transition", item)
	}
}

func TestAuthorizationHeaderSent(t *testing.T) {
	var gotAuth string
	rs := &recordingServer{}
	rs.serve = func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"title": "x", "questions": []interface{}{}})
	}
	srv := httptest.NewServer(rs.handler())
	defer srv.Close()

	if _, err := newTestClient(srv.URL).FetchSchema(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}
