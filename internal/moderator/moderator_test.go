package moderator

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yinterview/forum-agent/internal/llm"
	"github.com/yinterview/forum-agent/internal/models"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

type MockLLMClient struct {
	ResponseToReturn string
	ErrorToReturn    error
	Calls            int
}

func (m *MockLLMClient) Invoke(ctx context.Context, request llm.Request) (*llm.Response, error) {
	return m.InvokeWithRetry(ctx, request)
}

func (m *MockLLMClient) InvokeWithRetry(ctx context.Context, request llm.Request) (*llm.Response, error) {
	m.Calls++
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	return &llm.Response{Content: m.ResponseToReturn}, nil
}

func stateWithBothComments(round, maxRounds int) *models.DiscussionState {
	state := models.NewDiscussionState("forum_test", "user_1", "面试官：问题\n用户：回答", nil, maxRounds)
	state.CurrentRound = round
	state.RAGComment = &models.RAGComment{OverallScore: 8.0}
	state.WebComment = &models.WebComment{OverallScore: 4.0}
	return state
}

func TestDecideNextStep_RoutesToRAGCriticFirst(t *testing.T) {
	mockLLM := &MockLLMClient{}
	mod := New(mockLLM, newTestLogger())

	state := models.NewDiscussionState("forum_test", "user_1", "msg", nil, 3)
	if err := mod.DecideNextStep(context.Background(), state); err != nil {
		t.Fatalf("DecideNextStep failed: %v", err)
	}

	if state.NextStep != models.StepRAGCritic {
		t.Errorf("Expected %q, got %q", models.StepRAGCritic, state.NextStep)
	}
	if mockLLM.Calls != 0 {
		t.Errorf("Expected no LLM call, got %d", mockLLM.Calls)
	}
}

func TestDecideNextStep_RoutesToWebCriticSecond(t *testing.T) {
	mod := New(&MockLLMClient{}, newTestLogger())

	state := models.NewDiscussionState("forum_test", "user_1", "msg", nil, 3)
	state.RAGComment = &models.RAGComment{OverallScore: 7}

	if err := mod.DecideNextStep(context.Background(), state); err != nil {
		t.Fatalf("DecideNextStep failed: %v", err)
	}
	if state.NextStep != models.StepWebCritic {
		t.Errorf("Expected %q, got %q", models.StepWebCritic, state.NextStep)
	}
}

func TestDecideNextStep_RoundCapConvergesWithoutLLM(t *testing.T) {
	mockLLM := &MockLLMClient{ErrorToReturn: errors.New("should not be called")}
	mod := New(mockLLM, newTestLogger())

	state := stateWithBothComments(3, 3)
	if err := mod.DecideNextStep(context.Background(), state); err != nil {
		t.Fatalf("DecideNextStep failed: %v", err)
	}

	if state.ShouldContinue {
		t.Error("Expected ShouldContinue=false at the round cap")
	}
	if state.NextStep != models.StepModeratorSummarize {
		t.Errorf("Expected %q, got %q", models.StepModeratorSummarize, state.NextStep)
	}
	if mockLLM.Calls != 0 {
		t.Errorf("Expected no LLM call at the round cap, got %d", mockLLM.Calls)
	}
}

func TestDecideNextStep_ContinueStartsNewRound(t *testing.T) {
	mockLLM := &MockLLMClient{ResponseToReturn: `{"should_continue": true, "next_step": "rag_critic", "reason": "分歧较大"}`}
	mod := New(mockLLM, newTestLogger())

	state := stateWithBothComments(1, 3)
	if err := mod.DecideNextStep(context.Background(), state); err != nil {
		t.Fatalf("DecideNextStep failed: %v", err)
	}

	if state.CurrentRound != 2 {
		t.Errorf("Expected round 2, got %d", state.CurrentRound)
	}
	if len(state.DiscussionHistory) != 1 {
		t.Fatalf("Expected 1 history entry, got %d", len(state.DiscussionHistory))
	}
	if state.DiscussionHistory[0].Round != 1 {
		t.Errorf("Expected history for round 1, got %d", state.DiscussionHistory[0].Round)
	}
	if state.RAGComment != nil || state.WebComment != nil {
		t.Error("Expected comments to be cleared for the new round")
	}
	if state.NextStep != models.StepRAGCritic {
		t.Errorf("Expected %q, got %q", models.StepRAGCritic, state.NextStep)
	}
}

func TestDecideNextStep_ConvergeKeepsComments(t *testing.T) {
	mockLLM := &MockLLMClient{ResponseToReturn: `{"should_continue": false, "next_step": "moderator_summarize", "reason": "意见一致"}`}
	mod := New(mockLLM, newTestLogger())

	state := stateWithBothComments(1, 3)
	if err := mod.DecideNextStep(context.Background(), state); err != nil {
		t.Fatalf("DecideNextStep failed: %v", err)
	}

	if state.ShouldContinue {
		t.Error("Expected ShouldContinue=false")
	}
	if state.NextStep != models.StepModeratorSummarize {
		t.Errorf("Expected %q, got %q", models.StepModeratorSummarize, state.NextStep)
	}
	if state.RAGComment == nil || state.WebComment == nil {
		t.Error("Expected comments to survive convergence for the summary")
	}
	if len(state.DiscussionHistory) != 0 {
		t.Errorf("Expected no history entry on convergence, got %d", len(state.DiscussionHistory))
	}
}

func TestDecideNextStep_FailureConvergesToSummary(t *testing.T) {
	mockLLM := &MockLLMClient{ErrorToReturn: errors.New("throttled")}
	mod := New(mockLLM, newTestLogger())

	state := stateWithBothComments(1, 3)
	if err := mod.DecideNextStep(context.Background(), state); err != nil {
		t.Fatalf("Expected fail-soft decision, got error: %v", err)
	}

	if state.ShouldContinue {
		t.Error("Expected ShouldContinue=false after a failed decision")
	}
	if state.NextStep != models.StepModeratorSummarize {
		t.Errorf("Expected fallback to %q, got %q", models.StepModeratorSummarize, state.NextStep)
	}
}

func TestDecideNextStep_CancellationAborts(t *testing.T) {
	mockLLM := &MockLLMClient{ErrorToReturn: context.Canceled}
	mod := New(mockLLM, newTestLogger())

	state := stateWithBothComments(1, 3)
	err := mod.DecideNextStep(context.Background(), state)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}

func TestGenerateFinalEvaluation_DerivesOverallFromDimensions(t *testing.T) {
	mockLLM := &MockLLMClient{ResponseToReturn: `{
		"overall_score": 1,
		"dimensions": {"completeness": 80, "accuracy": 70, "depth": 60, "relevance": 90, "timeliness": 75, "practicality": 85},
		"strengths": ["概念清晰"],
		"improvements": ["补充准确性论据"],
		"summary": "整体良好。"
	}`}
	mod := New(mockLLM, newTestLogger())

	state := stateWithBothComments(2, 3)
	if err := mod.GenerateFinalEvaluation(context.Background(), state); err != nil {
		t.Fatalf("GenerateFinalEvaluation failed: %v", err)
	}

	if state.FinalEvaluation == nil {
		t.Fatal("Expected a final evaluation")
	}
	if state.FinalEvaluation.OverallScore != 77 {
		t.Errorf("Expected overall 77, got %v", state.FinalEvaluation.OverallScore)
	}
	if state.NextStep != models.StepSave {
		t.Errorf("Expected %q, got %q", models.StepSave, state.NextStep)
	}
}

func TestGenerateFinalEvaluation_FailureTagsEvaluation(t *testing.T) {
	mockLLM := &MockLLMClient{ResponseToReturn: "乱码输出"}
	mod := New(mockLLM, newTestLogger())

	state := stateWithBothComments(1, 3)
	if err := mod.GenerateFinalEvaluation(context.Background(), state); err != nil {
		t.Fatalf("Expected fail-soft evaluation, got error: %v", err)
	}

	if state.FinalEvaluation == nil {
		t.Fatal("Expected an error-tagged evaluation")
	}
	if state.FinalEvaluation.Error != "LLM 返回的 JSON 格式不正确" {
		t.Errorf("Unexpected error tag: %q", state.FinalEvaluation.Error)
	}
	if state.FinalEvaluation.RawResponse != "乱码输出" {
		t.Errorf("Expected raw response to be kept, got %q", state.FinalEvaluation.RawResponse)
	}
	if state.NextStep != models.StepSave {
		t.Errorf("Expected %q, got %q", models.StepSave, state.NextStep)
	}
}

func TestComputeTrend(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   models.PerformanceTrend
	}{
		{"improving", []float64{50, 55, 70, 75}, models.TrendImproving},
		{"declining", []float64{80, 75, 60, 55}, models.TrendDeclining},
		{"stable", []float64{70, 72, 71, 69}, models.TrendStable},
		{"single score", []float64{60}, models.TrendStable},
		{"empty", nil, models.TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeTrend(tt.scores); got != tt.want {
				t.Errorf("ComputeTrend(%v) = %q, want %q", tt.scores, got, tt.want)
			}
		})
	}
}

func TestGenerateOverallEvaluation_OverridesTrend(t *testing.T) {
	mockLLM := &MockLLMClient{ResponseToReturn: `{
		"overall_score": 7.5,
		"performance_trend": "declining",
		"summary": "表现稳步提升。"
	}`}
	mod := New(mockLLM, newTestLogger())

	qaEvaluations := []models.QAEvaluation{
		{Evaluation: &models.FinalEvaluation{OverallScore: 50}},
		{Evaluation: &models.FinalEvaluation{OverallScore: 55}},
		{Evaluation: &models.FinalEvaluation{OverallScore: 70}},
		{Evaluation: &models.FinalEvaluation{OverallScore: 80}},
	}

	evaluation, err := mod.GenerateOverallEvaluation(context.Background(), qaEvaluations, nil)
	if err != nil {
		t.Fatalf("GenerateOverallEvaluation failed: %v", err)
	}

	// the computed trend wins over the model's claim
	if evaluation.PerformanceTrend != models.TrendImproving {
		t.Errorf("Expected computed trend %q, got %q", models.TrendImproving, evaluation.PerformanceTrend)
	}
}

func TestGenerateOverallEvaluation_FailureDegrades(t *testing.T) {
	mockLLM := &MockLLMClient{ErrorToReturn: errors.New("throttled")}
	mod := New(mockLLM, newTestLogger())

	qaEvaluations := []models.QAEvaluation{
		{Evaluation: &models.FinalEvaluation{OverallScore: 60}},
		{Evaluation: &models.FinalEvaluation{OverallScore: 70}},
	}

	evaluation, err := mod.GenerateOverallEvaluation(context.Background(), qaEvaluations, nil)
	if err != nil {
		t.Fatalf("Expected fail-soft evaluation, got error: %v", err)
	}
	if evaluation.Error == "" {
		t.Error("Expected an error tag")
	}
	if evaluation.OverallScore != 6.5 {
		t.Errorf("Expected average 6.5, got %v", evaluation.OverallScore)
	}
	if evaluation.PerformanceTrend != models.TrendImproving {
		t.Errorf("Expected improving trend, got %q", evaluation.PerformanceTrend)
	}
}
