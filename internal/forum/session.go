package forum

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/yinterview/forum-agent/internal/models"
)

// QAPair is one extracted question/answer turn from an interview transcript.
type QAPair struct {
	Question string
	Answer   string
}

// SessionEvaluator runs a full discussion per question/answer pair of an
// interview session, then aggregates the results into one report.
type SessionEvaluator struct {
	coordinator *Coordinator
	moderator   Moderator
	logger      *zerolog.Logger
}

func NewSessionEvaluator(coordinator *Coordinator, moderator Moderator, logger *zerolog.Logger) *SessionEvaluator {
	return &SessionEvaluator{
		coordinator: coordinator,
		moderator:   moderator,
		logger:      logger,
	}
}

// Evaluate scores every question/answer pair in the chat history and produces
// the session report. Per-pair failures degrade into error-tagged
// evaluations; the session keeps going unless the caller cancels.
func (e *SessionEvaluator) Evaluate(
	ctx context.Context,
	userID string,
	chatHistory []models.ChatMessage,
	interviewContext map[string]string,
) (*models.SessionReport, error) {
	pairs := ExtractQAPairs(chatHistory)
	if len(pairs) == 0 {
		return nil, fmt.Errorf("chat history contains no question/answer pairs")
	}

	sessionID := "session_" + compactUUID()[:12]
	e.logger.Info().
		Str("session", sessionID).
		Str("user", userID).
		Int("pairs", len(pairs)).
		Msg("session evaluation started")

	started := time.Now()
	qaEvaluations := make([]models.QAEvaluation, 0, len(pairs))
	for i, pair := range pairs {
		qaStart := time.Now()
		qa := models.QAEvaluation{
			QAIndex:  i + 1,
			Question: pair.Question,
			Answer:   pair.Answer,
		}

		state, err := e.coordinator.Run(ctx, userID, pair.Question, pair.Answer, interviewContext)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			e.logger.Error().Err(err).Str("session", sessionID).Int("qa_index", i+1).Msg("question evaluation failed")
			qa.Evaluation = &models.FinalEvaluation{Error: "评估问答时发生错误"}
		} else {
			qa.RAGComment = state.RAGComment
			qa.WebComment = state.WebComment
			qa.Evaluation = state.FinalEvaluation
		}
		qa.Duration = time.Since(qaStart)
		qaEvaluations = append(qaEvaluations, qa)
	}

	overall, err := e.moderator.GenerateOverallEvaluation(ctx, qaEvaluations, interviewContext)
	if err != nil {
		return nil, err
	}

	report := &models.SessionReport{
		SessionID:         sessionID,
		QAEvaluations:     qaEvaluations,
		OverallEvaluation: overall,
		Statistics:        sessionStatistics(qaEvaluations, time.Since(started)),
	}

	e.logger.Info().
		Str("session", sessionID).
		Float64("average_score", report.Statistics.AverageScore).
		Dur("duration", time.Since(started)).
		Msg("session evaluation finished")
	return report, nil
}

// ExtractQAPairs pairs each candidate turn with the most recent interviewer
// question, so follow-up answers stay attached to the question that prompted
// them. Candidate turns before any question are dropped.
func ExtractQAPairs(chatHistory []models.ChatMessage) []QAPair {
	var pairs []QAPair
	var question string
	for _, msg := range chatHistory {
		switch msg.Role {
		case "interviewer":
			question = msg.Content
		case "candidate":
			if question == "" || msg.Content == "" {
				continue
			}
			pairs = append(pairs, QAPair{Question: question, Answer: msg.Content})
		}
	}
	return pairs
}

func sessionStatistics(qaEvaluations []models.QAEvaluation, elapsed time.Duration) models.SessionStatistics {
	var sum float64
	var scored int
	for _, qa := range qaEvaluations {
		if qa.Evaluation != nil && qa.Evaluation.Error == "" {
			sum += qa.Evaluation.OverallScore / 10
			scored++
		}
	}
	var average float64
	if scored > 0 {
		average = math.Round(sum/float64(scored)*100) / 100
	}
	return models.SessionStatistics{
		TotalQuestions: len(qaEvaluations),
		AverageScore:   average,
		TotalTime:      math.Round(elapsed.Seconds()*100) / 100,
	}
}
