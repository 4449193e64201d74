package critic

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/yinterview/forum-agent/internal/embedding"
	"github.com/yinterview/forum-agent/internal/llm"
	"github.com/yinterview/forum-agent/internal/memory"
	"github.com/yinterview/forum-agent/internal/models"
	"github.com/yinterview/forum-agent/internal/vector"
)

const (
	defaultTopK       = 3
	minCaseQuality    = 7
	criticMaxTokens   = 1024
	criticTemperature = 0.2
)

// RAGCritic scores an answer against retrieved historical interview cases.
type RAGCritic struct {
	llmClient *llm.StructuredClient
	embedder  embedding.Embedder
	index     vector.Index
	repo      memory.Repository
	topK      int
	logger    *zerolog.Logger
}

func NewRAGCritic(
	client llm.Client,
	embedder embedding.Embedder,
	index vector.Index,
	repo memory.Repository,
	topK int,
	logger *zerolog.Logger,
) *RAGCritic {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &RAGCritic{
		llmClient: llm.NewStructuredClient(client),
		embedder:  embedder,
		index:     index,
		repo:      repo,
		topK:      topK,
		logger:    logger,
	}
}

// Critique produces a structured critique for the state's transcript. Parse,
// retrieval and LLM decode failures all degrade into error-tagged comments so
// the discussion can still reach moderation; only caller cancellation aborts.
func (c *RAGCritic) Critique(ctx context.Context, state *models.DiscussionState) (*models.RAGComment, error) {
	now := time.Now()

	question, userAnswer := ParseTranscript(state.Message)
	if question == "" || userAnswer == "" {
		c.logger.Warn().Str("session", state.SessionID).Msg("transcript yields no question/answer pair")
		return &models.RAGComment{
			Error:   ErrUnparsableTranscript,
			Message: state.Message,
		}, nil
	}

	cases, err := c.searchSimilarCases(ctx, question, state)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		// Degrade to a zero-case critique; accuracy/depth can still be judged
		// from general knowledge.
		c.logger.Warn().Err(err).Str("session", state.SessionID).Msg("case retrieval failed, continuing without references")
		cases = nil
	}

	c.logger.Info().
		Str("session", state.SessionID).
		Int("round", state.CurrentRound).
		Int("cases", len(cases)).
		Dur("retrieval", time.Since(now)).
		Msg("similar cases retrieved")

	request := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: ragCriticSystemPrompt},
			{Role: llm.RoleUser, Content: buildRAGCommentPrompt(question, userAnswer, cases)},
		},
		MaxTokens:   criticMaxTokens,
		Temperature: criticTemperature,
	}

	var comment models.RAGComment
	resp, err := c.llmClient.InvokeStructured(ctx, request, &comment)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		c.logger.Error().Err(err).Str("session", state.SessionID).Msg("RAG comment generation failed")
		tagged := &models.RAGComment{Error: "生成评论时发生错误"}
		if resp != nil {
			tagged.Error = "LLM 返回的 JSON 格式不正确"
			tagged.RawResponse = resp.Content
		}
		return tagged, nil
	}

	// The weighting is a fixed contract; never trust the model's arithmetic.
	comment.OverallScore = models.RAGOverallScore(comment.CompletenessScore, comment.AccuracyScore, comment.DepthScore)
	comment.ReferenceCases = referenceCases(cases)

	c.logger.Info().
		Str("session", state.SessionID).
		Float64("overall", comment.OverallScore).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Dur("duration", time.Since(now)).
		Msg("RAG critique complete")

	return &comment, nil
}

func (c *RAGCritic) searchSimilarCases(ctx context.Context, question string, state *models.DiscussionState) ([]models.EpisodicCase, error) {
	queryEmbedding, err := c.embedder.Embed(ctx, question)
	if err != nil {
		return nil, err
	}

	filter := vector.CaseFilter{
		UserID:     state.UserID,
		MinQuality: minCaseQuality,
	}
	if difficulty, ok := state.InterviewContext["difficulty"]; ok {
		filter.Difficulty = difficulty
	}

	matches, err := c.index.Search(ctx, queryEmbedding, c.topK, filter)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(matches))
	scores := make(map[string]float64, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
		scores[m.ID] = m.Score
	}

	cases, err := c.repo.ResolveCases(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range cases {
		cases[i].Similarity = scores[cases[i].ID]
	}
	return cases, nil
}

func referenceCases(cases []models.EpisodicCase) []models.ReferenceCase {
	if len(cases) == 0 {
		return nil
	}
	refs := make([]models.ReferenceCase, 0, len(cases))
	for _, c := range cases {
		refs = append(refs, models.ReferenceCase{
			CaseID:     c.ID,
			Similarity: c.Similarity,
			KeyPoints:  c.KeyPoints,
		})
	}
	return refs
}
