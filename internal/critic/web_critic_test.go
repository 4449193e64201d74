package critic

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yinterview/forum-agent/internal/search"
)

type fakeSearcher struct {
	results  []search.Result
	err      error
	gotQuery string
	gotDepth search.Depth
}

func (f *fakeSearcher) Search(ctx context.Context, query string, depth search.Depth, maxResults int) ([]search.Result, error) {
	f.gotQuery = query
	f.gotDepth = depth
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func TestWebCritic_Critique_Success(t *testing.T) {
	mockLLM := &MockLLMClient{ResponseToReturn: `{
		"relevance_score": 8,
		"timeliness_score": 6,
		"practicality_score": 7,
		"overall_score": 1.0,
		"industry_trends": ["泛型已成主流"]
	}`}
	searcher := &fakeSearcher{results: []search.Result{
		{Title: "Go 1.22 release notes", Content: "...", URL: "https://go.dev", Score: 0.9},
	}}

	critic := NewWebCritic(mockLLM, searcher, 5, newTestLogger())
	comment, err := critic.Critique(context.Background(), testState())
	if err != nil {
		t.Fatalf("Critique failed: %v", err)
	}

	if comment.OverallScore != 7.0 {
		t.Errorf("Expected overall 7.0, got %v", comment.OverallScore)
	}
	if searcher.gotQuery != "什么是 goroutine？" {
		t.Errorf("Expected the question as query, got %q", searcher.gotQuery)
	}
	if searcher.gotDepth != search.DepthAdvanced {
		t.Errorf("Expected advanced search depth, got %q", searcher.gotDepth)
	}
}

func TestWebCritic_Critique_SearchFailureDegrades(t *testing.T) {
	mockLLM := &MockLLMClient{ResponseToReturn: `{"relevance_score": 5, "timeliness_score": 5, "practicality_score": 5}`}
	searcher := &fakeSearcher{err: errors.New("tavily unavailable")}

	critic := NewWebCritic(mockLLM, searcher, 5, newTestLogger())
	comment, err := critic.Critique(context.Background(), testState())
	if err != nil {
		t.Fatalf("Expected degraded critique, got error: %v", err)
	}
	if comment.Error != "" {
		t.Errorf("Expected a normal critique, got error tag %q", comment.Error)
	}

	// the model is told the search failed instead of being skipped
	prompt := mockLLM.GotRequest.Messages[len(mockLLM.GotRequest.Messages)-1].Content
	if !strings.Contains(prompt, "搜索失败") {
		t.Errorf("Expected the prompt to mention the failed search, got: %s", prompt)
	}
}

func TestWebCritic_Critique_UnparsableTranscript(t *testing.T) {
	critic := NewWebCritic(&MockLLMClient{}, &fakeSearcher{}, 5, newTestLogger())

	state := testState()
	state.Message = "没有说话人标记的文本"

	comment, err := critic.Critique(context.Background(), state)
	if err != nil {
		t.Fatalf("Critique failed: %v", err)
	}
	if comment.Error != ErrUnparsableTranscript {
		t.Errorf("Expected error tag %q, got %q", ErrUnparsableTranscript, comment.Error)
	}
}

func TestWebCritic_Critique_UndecodableOutput(t *testing.T) {
	mockLLM := &MockLLMClient{ResponseToReturn: "无法评分"}

	critic := NewWebCritic(mockLLM, &fakeSearcher{}, 5, newTestLogger())
	comment, err := critic.Critique(context.Background(), testState())
	if err != nil {
		t.Fatalf("Critique failed: %v", err)
	}
	if comment.Error != "LLM 返回的 JSON 格式不正确" {
		t.Errorf("Unexpected error tag: %q", comment.Error)
	}
	if comment.RawResponse != "无法评分" {
		t.Errorf("Expected raw response to be kept, got %q", comment.RawResponse)
	}
}

func TestWebCritic_Critique_CancellationAborts(t *testing.T) {
	searcher := &fakeSearcher{err: context.Canceled}

	critic := NewWebCritic(&MockLLMClient{}, searcher, 5, newTestLogger())
	_, err := critic.Critique(context.Background(), testState())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}
