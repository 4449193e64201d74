package critic

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/yinterview/forum-agent/internal/llm"
	"github.com/yinterview/forum-agent/internal/models"
	"github.com/yinterview/forum-agent/internal/search"
)

const defaultMaxSearchResults = 5

// WebCritic scores an answer against current practice found via web search.
type WebCritic struct {
	llmClient  *llm.StructuredClient
	searcher   search.Searcher
	maxResults int
	logger     *zerolog.Logger
}

func NewWebCritic(client llm.Client, searcher search.Searcher, maxResults int, logger *zerolog.Logger) *WebCritic {
	if maxResults <= 0 {
		maxResults = defaultMaxSearchResults
	}
	return &WebCritic{
		llmClient:  llm.NewStructuredClient(client),
		searcher:   searcher,
		maxResults: maxResults,
		logger:     logger,
	}
}

// Critique produces a structured critique grounded in web search results.
// A failed search still yields a critique: the model is invoked with an
// explicit "search failed" context instead of skipping the step.
func (c *WebCritic) Critique(ctx context.Context, state *models.DiscussionState) (*models.WebComment, error) {
	now := time.Now()

	question, userAnswer := ParseTranscript(state.Message)
	if question == "" || userAnswer == "" {
		c.logger.Warn().Str("session", state.SessionID).Msg("transcript yields no question/answer pair")
		return &models.WebComment{
			Error:   ErrUnparsableTranscript,
			Message: state.Message,
		}, nil
	}

	results, searchErr := c.searcher.Search(ctx, question, search.DepthAdvanced, c.maxResults)
	if searchErr != nil {
		if errors.Is(searchErr, context.Canceled) {
			return nil, searchErr
		}
		c.logger.Warn().Err(searchErr).Str("session", state.SessionID).Msg("web search failed, critiquing with degraded context")
	} else {
		c.logger.Info().
			Str("session", state.SessionID).
			Int("round", state.CurrentRound).
			Int("results", len(results)).
			Dur("search", time.Since(now)).
			Msg("web search complete")
	}

	request := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: webCriticSystemPrompt},
			{Role: llm.RoleUser, Content: buildWebCommentPrompt(question, userAnswer, formatSearchResults(results, searchErr))},
		},
		MaxTokens:   criticMaxTokens,
		Temperature: criticTemperature,
	}

	var comment models.WebComment
	resp, err := c.llmClient.InvokeStructured(ctx, request, &comment)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		c.logger.Error().Err(err).Str("session", state.SessionID).Msg("web comment generation failed")
		tagged := &models.WebComment{Error: "生成评论时发生错误"}
		if resp != nil {
			tagged.Error = "LLM 返回的 JSON 格式不正确"
			tagged.RawResponse = resp.Content
		}
		return tagged, nil
	}

	comment.OverallScore = models.WebOverallScore(comment.RelevanceScore, comment.TimelinessScore, comment.PracticalityScore)

	c.logger.Info().
		Str("session", state.SessionID).
		Float64("overall", comment.OverallScore).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Dur("duration", time.Since(now)).
		Msg("web critique complete")

	return &comment, nil
}
