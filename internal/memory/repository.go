package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/yinterview/forum-agent/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Repository is the system-of-record store: full case content and durable
// discussion records.
type Repository interface {
	ResolveCases(ctx context.Context, ids []string) ([]models.EpisodicCase, error)
	SaveCase(ctx context.Context, c *models.EpisodicCase) (string, error)
	SaveDiscussion(ctx context.Context, record *models.DiscussionRecord) (string, error)
}

type repository struct {
	db *gorm.DB
}

func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := db.AutoMigrate(&EpisodicMemory{}, &ForumDiscussion{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ResolveCases looks up full case records for the given ids and returns them
// in the callers' id order. The database does not guarantee result order, so
// the retrieval engine's ranking is restored here.
func (r *repository) ResolveCases(ctx context.Context, ids []string) ([]models.EpisodicCase, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []EpisodicMemory
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("resolve cases: %w", err)
	}

	cases := make([]models.EpisodicCase, 0, len(rows))
	for _, row := range rows {
		cases = append(cases, toEpisodicCase(row))
	}

	return SortByIDOrder(cases, ids), nil
}

// SortByIDOrder re-sorts resolved cases into the ranked id order; ids with no
// matching record are skipped.
func SortByIDOrder(cases []models.EpisodicCase, ids []string) []models.EpisodicCase {
	byID := make(map[string]models.EpisodicCase, len(cases))
	for _, c := range cases {
		byID[c.ID] = c
	}

	sorted := make([]models.EpisodicCase, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			sorted = append(sorted, c)
		}
	}
	return sorted
}

func (r *repository) SaveCase(ctx context.Context, c *models.EpisodicCase) (string, error) {
	keyPoints, err := json.Marshal(c.KeyPoints)
	if err != nil {
		return "", fmt.Errorf("marshal key points: %w", err)
	}

	row := EpisodicMemory{
		UserId:       c.UserID,
		Question:     c.Question,
		Answer:       c.Answer,
		KeyPoints:    keyPoints,
		Company:      c.Company,
		Difficulty:   c.Difficulty,
		QualityScore: c.QualityScore,
	}
	if c.ID != "" {
		id, err := uuid.Parse(c.ID)
		if err != nil {
			return "", fmt.Errorf("parse case id: %w", err)
		}
		row.Id = id
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("insert case: %w", err)
	}

	return row.Id.String(), nil
}

// SaveDiscussion durably stores a finished discussion and returns its
// generated identifier. Failures propagate: a discussion without a durable
// record is a hard failure of the whole run.
func (r *repository) SaveDiscussion(ctx context.Context, record *models.DiscussionRecord) (string, error) {
	row := ForumDiscussion{
		SessionId:   record.SessionID,
		UserId:      record.UserID,
		Question:    record.Question,
		UserAnswer:  record.UserAnswer,
		TotalRounds: record.TotalRounds,
	}

	var err error
	if row.RagComment, err = marshalJSON(record.RAGComment); err != nil {
		return "", err
	}
	if row.WebComment, err = marshalJSON(record.WebComment); err != nil {
		return "", err
	}
	if row.FinalEvaluation, err = marshalJSON(record.FinalEvaluation); err != nil {
		return "", err
	}
	if row.DiscussionHistory, err = marshalJSON(record.DiscussionHistory); err != nil {
		return "", err
	}

	metadata := map[string]any{
		"interview_context": record.InterviewContext,
		"max_rounds":        record.MaxRounds,
	}
	if row.Metadata, err = marshalJSON(metadata); err != nil {
		return "", err
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("insert discussion: %w", err)
	}

	return row.Id.String(), nil
}

func marshalJSON(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal discussion field: %w", err)
	}
	return data, nil
}

func toEpisodicCase(row EpisodicMemory) models.EpisodicCase {
	var keyPoints []string
	if len(row.KeyPoints) > 0 {
		_ = json.Unmarshal(row.KeyPoints, &keyPoints)
	}

	return models.EpisodicCase{
		ID:           row.Id.String(),
		UserID:       row.UserId,
		Question:     row.Question,
		Answer:       row.Answer,
		KeyPoints:    keyPoints,
		Company:      row.Company,
		Difficulty:   row.Difficulty,
		QualityScore: row.QualityScore,
	}
}
