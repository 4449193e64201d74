// Package forum drives the multi-critic discussion loop: RAG critic, web
// critic, moderator decision, then either another round or the final
// evaluation and a durable save.
package forum

import (
	"context"

	"github.com/yinterview/forum-agent/internal/models"
)

// RAGCritic critiques an answer against historical interview cases.
type RAGCritic interface {
	Critique(ctx context.Context, state *models.DiscussionState) (*models.RAGComment, error)
}

// WebCritic critiques an answer against current web search results.
type WebCritic interface {
	Critique(ctx context.Context, state *models.DiscussionState) (*models.WebComment, error)
}

// Moderator decides discussion routing and produces evaluations.
type Moderator interface {
	DecideNextStep(ctx context.Context, state *models.DiscussionState) error
	GenerateFinalEvaluation(ctx context.Context, state *models.DiscussionState) error
	GenerateOverallEvaluation(ctx context.Context, qaEvaluations []models.QAEvaluation, interviewContext map[string]string) (*models.OverallEvaluation, error)
}

// DiscussionStore persists finished discussions.
type DiscussionStore interface {
	SaveDiscussion(ctx context.Context, record *models.DiscussionRecord) (string, error)
}
