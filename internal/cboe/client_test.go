package cboe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

const chainPayload = `{
	"data": {
		"close": 4500.25,
		"options": [
			{"option": "SPX240315C04500000", "iv": 0.14, "open_interest": 2000, "bid": 10.5, "ask": 11.0},
			{"option": "SPX240315P04500000", "iv": 0.16, "open_interest": 2500, "bid": 9.0, "ask": 9.5}
		]
	}
}`

func TestFetchChain_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expectedPath := "/api/global/delayed_quotes/options/_SPX.json"
		if r.URL.Path != expectedPath {
			t.Errorf("expected path %s, got %s", expectedPath, r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chainPayload))
	}))
	defer server.Close()

	logger, _ := zap.NewDevelopment()
	client := NewClient(server.URL, 10, 30*time.Second, 1*time.Second, 3, logger)

	ch, raw, err := client.FetchChain(context.Background(), "SPX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ch.Spot != 4500.25 {
		t.Errorf("expected spot 4500.25, got %v", ch.Spot)
	}
	if len(ch.Quotes) != 2 {
		t.Errorf("expected 2 quotes, got %d", len(ch.Quotes))
	}
	if ch.Quotes[0].Option != "SPX240315C04500000" {
		t.Errorf("unexpected first symbol: %s", ch.Quotes[0].Option)
	}
	if len(raw) == 0 {
		t.Error("expected raw payload for snapshot caching")
	}
}

func TestFetchChain_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	logger, _ := zap.NewDevelopment()
	client := NewClient(server.URL, 10, 30*time.Second, 1*time.Second, 0, logger)

	_, _, err := client.FetchChain(context.Background(), "ZZZZ")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchChain_RetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(chainPayload))
	}))
	defer server.Close()

	logger, _ := zap.NewDevelopment()
	client := NewClient(server.URL, 10, 30*time.Second, 10*time.Millisecond, 3, logger)

	ch, _, err := client.FetchChain(context.Background(), "SPX")
	if err != nil {
		t.Fatalf("expected recovery after retries, got %v", err)
	}
	if ch.Spot != 4500.25 {
		t.Errorf("unexpected spot after retry: %v", ch.Spot)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestDecodeChain_EmptyPayloadRejected(t *testing.T) {
	if _, err := DecodeChain([]byte(`{"data":{"close":0,"options":[]}}`), "SPX"); err == nil {
		t.Error("expected error for missing spot")
	}
	if _, err := DecodeChain([]byte(`not json`), "SPX"); err == nil {
		t.Error("expected error for malformed payload")
	}
}
