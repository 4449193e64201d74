package memory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yinterview/forum-agent/internal/embedding"
	"github.com/yinterview/forum-agent/internal/models"
	"github.com/yinterview/forum-agent/internal/vector"
)

// Ingestor writes a case to the system-of-record store and mirrors it into
// the retrieval index. The question text is the retrieval key.
type Ingestor struct {
	repo     Repository
	embedder embedding.Embedder
	index    vector.Index
	logger   *zerolog.Logger
}

func NewIngestor(repo Repository, embedder embedding.Embedder, index vector.Index, logger *zerolog.Logger) *Ingestor {
	return &Ingestor{
		repo:     repo,
		embedder: embedder,
		index:    index,
		logger:   logger,
	}
}

// IngestCase persists the case and indexes it. The store is written first;
// an indexing failure after a successful write returns the id alongside the
// error so the caller can retry indexing without duplicating the record.
func (i *Ingestor) IngestCase(ctx context.Context, c *models.EpisodicCase) (string, error) {
	id, err := i.repo.SaveCase(ctx, c)
	if err != nil {
		return "", fmt.Errorf("save case: %w", err)
	}
	c.ID = id

	queryEmbedding, err := i.embedder.Embed(ctx, c.Question)
	if err != nil {
		return id, fmt.Errorf("embed case %s: %w", id, err)
	}

	err = i.index.Add(ctx, []vector.CaseVector{{
		ID:           id,
		Embedding:    queryEmbedding,
		UserID:       c.UserID,
		Difficulty:   c.Difficulty,
		QualityScore: c.QualityScore,
	}})
	if err != nil {
		return id, fmt.Errorf("index case %s: %w", id, err)
	}

	i.logger.Info().
		Str("case", id).
		Str("user", c.UserID).
		Int("quality", c.QualityScore).
		Msg("case ingested")
	return id, nil
}
