package vector

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	chromem "github.com/philippgille/chromem-go"
)

// The index stores vectors and identifiers only; full case content lives in
// the system-of-record store and is resolved separately. That keeps the index
// small and leaves mutable fields consistent in one place.

// Config holds vector index configuration.
type Config struct {
	PersistPath string
	Collection  string
}

// CaseVector is one indexed interview case.
type CaseVector struct {
	ID           string
	Embedding    []float32
	UserID       string
	Difficulty   string
	QualityScore int
}

// Match is a ranked search hit: identifier plus similarity score.
type Match struct {
	ID    string
	Score float64
}

// CaseFilter narrows a search to one user's case set, an optional difficulty,
// and a minimum quality score.
type CaseFilter struct {
	UserID     string
	Difficulty string
	MinQuality int
}

// Index is the retrieval contract consumed by the RAG critic.
type Index interface {
	Add(ctx context.Context, cases []CaseVector) error
	Search(ctx context.Context, queryEmbedding []float32, topK int, filter CaseFilter) ([]Match, error)
	Count() int
}

type chromemIndex struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// NewIndex creates a chromem-backed case index.
func NewIndex(config Config) (Index, error) {
	if config.Collection == "" {
		config.Collection = "episodic_memory_vectors"
	}

	var db *chromem.DB
	var err error

	if config.PersistPath != "" {
		persistFile := filepath.Join(config.PersistPath, "chromem.gob")
		db, err = chromem.NewPersistentDB(persistFile, false)
		if err != nil {
			return nil, fmt.Errorf("create persistent DB: %w", err)
		}
	} else {
		db = chromem.NewDB()
	}

	// Embeddings are always supplied by the caller, so no embedding func.
	collection, err := db.GetOrCreateCollection(config.Collection, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &chromemIndex{db: db, collection: collection}, nil
}

func (i *chromemIndex) Add(ctx context.Context, cases []CaseVector) error {
	for _, c := range cases {
		err := i.collection.AddDocument(ctx, chromem.Document{
			ID:        c.ID,
			Embedding: c.Embedding,
			Metadata: map[string]string{
				"user_id":       c.UserID,
				"difficulty":    c.Difficulty,
				"quality_score": strconv.Itoa(c.QualityScore),
			},
		})
		if err != nil {
			return fmt.Errorf("add case %s: %w", c.ID, err)
		}
	}
	return nil
}

func (i *chromemIndex) Search(ctx context.Context, queryEmbedding []float32, topK int, filter CaseFilter) ([]Match, error) {
	count := i.collection.Count()
	if count == 0 {
		return nil, nil
	}

	// chromem's where clause is equality-only, so the quality floor is applied
	// as a post-filter; over-fetch to compensate.
	where := map[string]string{}
	if filter.UserID != "" {
		where["user_id"] = filter.UserID
	}
	if filter.Difficulty != "" {
		where["difficulty"] = filter.Difficulty
	}
	if len(where) == 0 {
		where = nil
	}

	fetch := topK * 4
	if fetch > count {
		fetch = count
	}

	results, err := i.collection.QueryEmbedding(ctx, queryEmbedding, fetch, where, nil)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	matches := make([]Match, 0, topK)
	for _, res := range results {
		if filter.MinQuality > 0 {
			quality, err := strconv.Atoi(res.Metadata["quality_score"])
			if err != nil || quality < filter.MinQuality {
				continue
			}
		}
		matches = append(matches, Match{ID: res.ID, Score: float64(res.Similarity)})
		if len(matches) == topK {
			break
		}
	}

	return matches, nil
}

func (i *chromemIndex) Count() int {
	return i.collection.Count()
}
