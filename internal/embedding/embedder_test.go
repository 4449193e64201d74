package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newEmbeddingServer(t *testing.T, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		if r.URL.Path != "/embeddings" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Unexpected auth header: %q", auth)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"embedding": []float32{0.1, 0.2, 0.3}},
			},
		})
	}))
}

func TestEmbedder_Embed(t *testing.T) {
	calls := 0
	server := newEmbeddingServer(t, &calls)
	defer server.Close()

	embedder, err := NewEmbedder(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewEmbedder failed: %v", err)
	}

	vector, err := embedder.Embed(context.Background(), "什么是 goroutine？")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vector) != 3 {
		t.Fatalf("Expected 3 dimensions, got %d", len(vector))
	}
	if vector[0] != 0.1 {
		t.Errorf("Unexpected first dimension: %v", vector[0])
	}
}

func TestEmbedder_Embed_CachesRepeats(t *testing.T) {
	calls := 0
	server := newEmbeddingServer(t, &calls)
	defer server.Close()

	embedder, err := NewEmbedder(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewEmbedder failed: %v", err)
	}

	for range 3 {
		if _, err := embedder.Embed(context.Background(), "相同的文本"); err != nil {
			t.Fatalf("Embed failed: %v", err)
		}
	}

	if calls != 1 {
		t.Errorf("Expected 1 API call for repeated text, got %d", calls)
	}
}

func TestEmbedder_Embed_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer server.Close()

	embedder, err := NewEmbedder(Config{APIKey: "bad-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewEmbedder failed: %v", err)
	}

	if _, err := embedder.Embed(context.Background(), "文本"); err == nil {
		t.Fatal("Expected an error for a failing endpoint")
	}
}
