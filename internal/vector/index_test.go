package vector

import (
	"context"
	"testing"
)

func seedIndex(t *testing.T) Index {
	t.Helper()
	index, err := NewIndex(Config{})
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}

	cases := []CaseVector{
		{ID: "case-a", Embedding: []float32{1, 0, 0}, UserID: "u1", Difficulty: "medium", QualityScore: 9},
		{ID: "case-b", Embedding: []float32{0.8, 0.6, 0}, UserID: "u1", Difficulty: "medium", QualityScore: 8},
		{ID: "case-c", Embedding: []float32{0.6, 0.8, 0}, UserID: "u1", Difficulty: "medium", QualityScore: 6},
		{ID: "case-d", Embedding: []float32{0, 1, 0}, UserID: "u1", Difficulty: "medium", QualityScore: 5},
	}
	if err := index.Add(context.Background(), cases); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	return index
}

func TestIndex_Search_QualityFloor(t *testing.T) {
	index := seedIndex(t)

	matches, err := index.Search(context.Background(), []float32{1, 0, 0}, 2, CaseFilter{
		UserID:     "u1",
		MinQuality: 7,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].ID != "case-a" {
		t.Errorf("Expected the closest case first, got %q", matches[0].ID)
	}
	if matches[1].ID != "case-b" {
		t.Errorf("Expected case-b second (case-c is below the quality floor), got %q", matches[1].ID)
	}
	if matches[0].Score < matches[1].Score {
		t.Error("Expected matches in descending score order")
	}
}

func TestIndex_Search_EmptyIndex(t *testing.T) {
	index, err := NewIndex(Config{})
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}

	matches, err := index.Search(context.Background(), []float32{1, 0, 0}, 3, CaseFilter{})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if matches != nil {
		t.Errorf("Expected no matches, got %+v", matches)
	}
}

func TestIndex_Count(t *testing.T) {
	index := seedIndex(t)
	if got := index.Count(); got != 4 {
		t.Errorf("Expected 4 cases, got %d", got)
	}
}
