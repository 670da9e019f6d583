package comms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brieflyhq/briefly/pkg/config"
)

func testClient(baseURL string) *Client {
	return NewClient(&config.CommsConfig{
		BaseURL: baseURL,
		Token:   "test-token",
		Timeout: 5 * time.Second,
	})
}

func TestClient_FetchTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/calls/call-123/transcript" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected auth header: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "call-123", "subject": "Kickoff", "transcript": "hello world"}`))
	}))
	defer srv.Close()

	record, err := testClient(srv.URL).FetchTranscript(context.Background(), "call-123")
	if err != nil {
		t.Fatalf("FetchTranscript failed: %v", err)
	}
	if record.Subject != "Kickoff" {
		t.Errorf("unexpected subject: %s", record.Subject)
	}
	if record.Transcript != "hello world" {
		t.Errorf("unexpected transcript: %s", record.Transcript)
	}
}

func TestClient_FetchTranscriptNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).FetchTranscript(context.Background(), "missing"); err == nil {
		t.Fatal("expected an error for a missing call")
	}
}

func TestClient_FetchTranscriptEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "call-9", "subject": "Silent call", "transcript": ""}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).FetchTranscript(context.Background(), "call-9"); err == nil {
		t.Fatal("expected an error for an empty transcript")
	}
}

func TestClient_NotConfigured(t *testing.T) {
	c := NewClient(nil)
	if c.Configured() {
		t.Fatal("client without a base URL must report unconfigured")
	}
	if _, err := c.FetchTranscript(context.Background(), "any"); err == nil {
		t.Fatal("expected an error when unconfigured")
	}
}
