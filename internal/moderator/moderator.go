package moderator

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/yinterview/forum-agent/internal/critic"
	"github.com/yinterview/forum-agent/internal/llm"
	"github.com/yinterview/forum-agent/internal/models"
)

const (
	decisionMaxTokens   = 512
	summaryMaxTokens    = 2048
	overallMaxTokens    = 4096
	decisionTemperature = 0.1
	summaryTemperature  = 0.3

	// trendThreshold is the minimum first-half/second-half average gap, on a
	// 0-10 scale, that counts as a real trend.
	trendThreshold = 1.0
)

// Moderator routes the discussion between critics, decides when it has
// converged and produces the final merged evaluation.
type Moderator struct {
	llmClient *llm.StructuredClient
	logger    *zerolog.Logger
}

func New(client llm.Client, logger *zerolog.Logger) *Moderator {
	return &Moderator{
		llmClient: llm.NewStructuredClient(client),
		logger:    logger,
	}
}

// DecideNextStep mutates the state's routing fields. A missing critique is
// routed to the owning critic before any LLM call; with both critiques in
// hand the round cap converges deterministically and everything else is the
// model's call, clamped so that an over-cap continue can never slip through.
// Decision failures converge to the summarize step; only caller cancellation
// aborts.
func (m *Moderator) DecideNextStep(ctx context.Context, state *models.DiscussionState) error {
	if state.RAGComment == nil {
		state.NextStep = models.StepRAGCritic
		state.CurrentSpeaker = models.SpeakerRAGCritic
		state.ShouldContinue = true
		return nil
	}
	if state.WebComment == nil {
		state.NextStep = models.StepWebCritic
		state.CurrentSpeaker = models.SpeakerWebCritic
		state.ShouldContinue = true
		return nil
	}

	if state.CurrentRound >= state.MaxRounds {
		m.converge(state, "已达最大轮次")
		return nil
	}

	divergence := math.Abs(state.RAGComment.OverallScore - state.WebComment.OverallScore)

	request := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: moderatorSystemPrompt},
			{Role: llm.RoleUser, Content: buildDecisionPrompt(state, divergence)},
		},
		MaxTokens:   decisionMaxTokens,
		Temperature: decisionTemperature,
	}

	var decision models.Decision
	if _, err := m.llmClient.InvokeStructured(ctx, request, &decision); err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		m.logger.Warn().Err(err).Str("session", state.SessionID).Msg("moderator decision failed, converging to summary")
		m.converge(state, "决策失败，转入总结")
		return nil
	}

	if decision.ShouldContinue && state.CurrentRound < state.MaxRounds {
		m.continueDiscussion(state, decision.Reason, divergence)
		return nil
	}
	m.converge(state, decision.Reason)
	return nil
}

func (m *Moderator) continueDiscussion(state *models.DiscussionState, reason string, divergence float64) {
	state.DiscussionHistory = append(state.DiscussionHistory, models.RoundRecord{
		Round:      state.CurrentRound,
		RAGComment: state.RAGComment,
		WebComment: state.WebComment,
		Timestamp:  time.Now(),
	})

	m.logger.Info().
		Str("session", state.SessionID).
		Int("round", state.CurrentRound).
		Float64("divergence", divergence).
		Str("reason", reason).
		Msg("discussion continues into next round")

	state.CurrentRound++
	state.RAGComment = nil
	state.WebComment = nil
	state.ShouldContinue = true
	state.NextStep = models.StepRAGCritic
	state.CurrentSpeaker = models.SpeakerRAGCritic
}

func (m *Moderator) converge(state *models.DiscussionState, reason string) {
	m.logger.Info().
		Str("session", state.SessionID).
		Int("round", state.CurrentRound).
		Str("reason", reason).
		Msg("discussion converged")

	state.ShouldContinue = false
	state.NextStep = models.StepModeratorSummarize
	state.CurrentSpeaker = models.SpeakerModerator
}

// GenerateFinalEvaluation merges both critiques into the state's final
// evaluation and routes to the save step. An undecodable or failed LLM call
// yields an error-tagged evaluation rather than a missing one; only caller
// cancellation aborts.
func (m *Moderator) GenerateFinalEvaluation(ctx context.Context, state *models.DiscussionState) error {
	now := time.Now()
	question, userAnswer := critic.ParseTranscript(state.Message)

	request := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: moderatorSystemPrompt},
			{Role: llm.RoleUser, Content: buildFinalEvaluationPrompt(question, userAnswer, state)},
		},
		MaxTokens:   summaryMaxTokens,
		Temperature: summaryTemperature,
	}

	var evaluation models.FinalEvaluation
	resp, err := m.llmClient.InvokeStructured(ctx, request, &evaluation)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		m.logger.Error().Err(err).Str("session", state.SessionID).Msg("final evaluation generation failed")
		tagged := &models.FinalEvaluation{Error: "生成最终评价时发生错误"}
		if resp != nil {
			tagged.Error = "LLM 返回的 JSON 格式不正确"
			tagged.RawResponse = resp.Content
		}
		state.FinalEvaluation = tagged
		state.NextStep = models.StepSave
		state.CurrentSpeaker = models.SpeakerModerator
		return nil
	}

	// The overall score is derived from the six dimensions by contract.
	evaluation.OverallScore = evaluation.Dimensions.Average()

	state.FinalEvaluation = &evaluation
	state.NextStep = models.StepSave
	state.CurrentSpeaker = models.SpeakerModerator

	m.logger.Info().
		Str("session", state.SessionID).
		Float64("overall", evaluation.OverallScore).
		Int("rounds", state.CurrentRound).
		Dur("duration", time.Since(now)).
		Msg("final evaluation complete")
	return nil
}

// GenerateOverallEvaluation aggregates per-question evaluations into a
// session-level report. The performance trend is computed locally and
// overrides whatever the model returns. Failures degrade into an error-tagged
// report carrying the computed trend and average.
func (m *Moderator) GenerateOverallEvaluation(
	ctx context.Context,
	qaEvaluations []models.QAEvaluation,
	interviewContext map[string]string,
) (*models.OverallEvaluation, error) {
	averageScore := averageOverallScore(qaEvaluations)
	trend := ComputeTrend(evaluationScores(qaEvaluations))

	request := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildOverallEvaluationPrompt(qaEvaluations, interviewContext, averageScore, trend)},
		},
		MaxTokens:   overallMaxTokens,
		Temperature: summaryTemperature,
	}

	var evaluation models.OverallEvaluation
	resp, err := m.llmClient.InvokeStructured(ctx, request, &evaluation)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		m.logger.Error().Err(err).Msg("overall evaluation generation failed")
		tagged := &models.OverallEvaluation{
			OverallScore:     averageScore,
			PerformanceTrend: trend,
			Error:            "生成总体评价时发生错误",
		}
		if resp != nil {
			tagged.Error = "LLM 返回的 JSON 格式不正确"
			tagged.RawResponse = resp.Content
		}
		return tagged, nil
	}

	evaluation.PerformanceTrend = trend
	return &evaluation, nil
}

// ComputeTrend compares the first and second half of the per-question scores
// (0-100 scale) on their 0-10 equivalents. A gap under the threshold, or
// fewer than two scores, reads as stable.
func ComputeTrend(scores []float64) models.PerformanceTrend {
	if len(scores) < 2 {
		return models.TrendStable
	}
	half := len(scores) / 2
	diff := (mean(scores[half:]) - mean(scores[:half])) / 10
	switch {
	case diff >= trendThreshold:
		return models.TrendImproving
	case diff <= -trendThreshold:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

func evaluationScores(qaEvaluations []models.QAEvaluation) []float64 {
	scores := make([]float64, 0, len(qaEvaluations))
	for _, qa := range qaEvaluations {
		if qa.Evaluation != nil && qa.Evaluation.Error == "" {
			scores = append(scores, qa.Evaluation.OverallScore)
		}
	}
	return scores
}

// averageOverallScore is on a 0-10 scale, rounded to one decimal.
func averageOverallScore(qaEvaluations []models.QAEvaluation) float64 {
	scores := evaluationScores(qaEvaluations)
	if len(scores) == 0 {
		return 0
	}
	return math.Round(mean(scores)) / 10
}

func mean(scores []float64) float64 {
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
