package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTavilyClient_Search(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("Failed to decode request body: %v", err)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"query": "goroutine scheduling",
			"results": []map[string]any{
				{
					"title":          "Go scheduler",
					"url":            "https://go.dev/blog/scheduler",
					"content":        "GMP model explained",
					"score":          0.91,
					"published_date": "2024-01-10",
				},
			},
		})
	}))
	defer server.Close()

	client := NewTavilyClientWithBaseURL("test-key", server.URL)
	results, err := client.Search(context.Background(), "goroutine scheduling", DepthAdvanced, 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Title != "Go scheduler" || results[0].Score != 0.91 {
		t.Errorf("Unexpected result: %+v", results[0])
	}
	if results[0].PublishedDate != "2024-01-10" {
		t.Errorf("Unexpected published date: %q", results[0].PublishedDate)
	}

	if gotBody["api_key"] != "test-key" {
		t.Errorf("Expected api_key in body, got %v", gotBody["api_key"])
	}
	if gotBody["search_depth"] != "advanced" {
		t.Errorf("Expected advanced depth, got %v", gotBody["search_depth"])
	}
	if gotBody["max_results"] != float64(5) {
		t.Errorf("Expected max_results 5, got %v", gotBody["max_results"])
	}
}

func TestTavilyClient_Search_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewTavilyClientWithBaseURL("test-key", server.URL)
	if _, err := client.Search(context.Background(), "query", DepthBasic, 3); err == nil {
		t.Fatal("Expected an error for a non-200 status")
	}
}

func TestTavilyClient_Search_MissingAPIKey(t *testing.T) {
	client := NewTavilyClient("")
	if _, err := client.Search(context.Background(), "query", DepthBasic, 3); err == nil {
		t.Fatal("Expected an error for a missing API key")
	}
}
