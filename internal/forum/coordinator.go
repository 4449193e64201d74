package forum

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yinterview/forum-agent/internal/critic"
	"github.com/yinterview/forum-agent/internal/models"
)

const (
	// maxGraphSteps is a circuit breaker against routing bugs; a legitimate
	// discussion takes a handful of steps per round.
	maxGraphSteps = 500

	defaultMaxRounds   = 3
	defaultStepTimeout = 120 * time.Second
)

// Coordinator owns one discussion's state machine and executes its steps in
// order until the end step is reached.
type Coordinator struct {
	ragCritic RAGCritic
	webCritic WebCritic
	moderator Moderator
	store     DiscussionStore

	maxRounds   int
	stepTimeout time.Duration
	logger      *zerolog.Logger
}

func NewCoordinator(
	ragCritic RAGCritic,
	webCritic WebCritic,
	moderator Moderator,
	store DiscussionStore,
	maxRounds int,
	stepTimeout time.Duration,
	logger *zerolog.Logger,
) *Coordinator {
	if maxRounds < 1 {
		maxRounds = defaultMaxRounds
	}
	if stepTimeout <= 0 {
		stepTimeout = defaultStepTimeout
	}
	return &Coordinator{
		ragCritic:   ragCritic,
		webCritic:   webCritic,
		moderator:   moderator,
		store:       store,
		maxRounds:   maxRounds,
		stepTimeout: stepTimeout,
		logger:      logger,
	}
}

// Run evaluates one question/answer pair and returns the finished state,
// including the final evaluation and the persisted discussion id. The
// returned error is non-nil only for caller cancellation, persistence
// failures and routing bugs; model and tool failures surface as error-tagged
// fields inside the state instead.
func (c *Coordinator) Run(ctx context.Context, userID, question, answer string, interviewContext map[string]string) (*models.DiscussionState, error) {
	if userID == "" {
		userID = newUserID()
	}
	sessionID := newSessionID()
	message := critic.FormatTranscript(question, answer)
	state := models.NewDiscussionState(sessionID, userID, message, interviewContext, c.maxRounds)

	c.logger.Info().
		Str("session", sessionID).
		Str("user", userID).
		Int("max_rounds", c.maxRounds).
		Msg("discussion started")

	for step := 0; step < maxGraphSteps; step++ {
		if state.NextStep == models.StepEnd {
			c.logger.Info().
				Str("session", sessionID).
				Str("discussion", state.DiscussionID).
				Int("rounds", state.CurrentRound).
				Int("steps", step).
				Msg("discussion finished")
			return state, nil
		}
		if err := c.executeStep(ctx, state); err != nil {
			return nil, fmt.Errorf("step %s: %w", state.NextStep, err)
		}
	}
	return nil, fmt.Errorf("discussion %s exceeded %d steps without reaching the end state", sessionID, maxGraphSteps)
}

// RunRequest is the intake-layer entrypoint over Run.
func (c *Coordinator) RunRequest(ctx context.Context, req models.DiscussionRequest) (*models.DiscussionState, error) {
	return c.Run(ctx, req.UserID, req.Question, req.Answer, req.InterviewContext())
}

func (c *Coordinator) executeStep(ctx context.Context, state *models.DiscussionState) error {
	// A blown step deadline reads as DeadlineExceeded inside the step, which
	// the critics and moderator degrade on; only caller cancellation aborts.
	stepCtx, cancel := context.WithTimeout(ctx, c.stepTimeout)
	defer cancel()

	switch state.NextStep {
	case models.StepRAGCritic:
		comment, err := c.ragCritic.Critique(stepCtx, state)
		if err != nil {
			return err
		}
		state.RAGComment = comment
		state.CurrentSpeaker = models.SpeakerRAGCritic
		state.NextStep = models.StepWebCritic
		return nil

	case models.StepWebCritic:
		comment, err := c.webCritic.Critique(stepCtx, state)
		if err != nil {
			return err
		}
		state.WebComment = comment
		state.CurrentSpeaker = models.SpeakerWebCritic
		state.NextStep = models.StepModeratorDecide
		return nil

	case models.StepModeratorDecide:
		return c.moderator.DecideNextStep(stepCtx, state)

	case models.StepModeratorSummarize:
		return c.moderator.GenerateFinalEvaluation(stepCtx, state)

	case models.StepSave:
		return c.save(stepCtx, state)

	default:
		return fmt.Errorf("unknown step %q", state.NextStep)
	}
}

// save persists the finished discussion. Unlike critique and evaluation
// failures, a persistence failure is a hard error.
func (c *Coordinator) save(ctx context.Context, state *models.DiscussionState) error {
	question, userAnswer := critic.ParseTranscript(state.Message)
	record := &models.DiscussionRecord{
		SessionID:         state.SessionID,
		UserID:            state.UserID,
		Question:          question,
		UserAnswer:        userAnswer,
		RAGComment:        state.RAGComment,
		WebComment:        state.WebComment,
		FinalEvaluation:   state.FinalEvaluation,
		DiscussionHistory: state.DiscussionHistory,
		TotalRounds:       state.CurrentRound,
		InterviewContext:  state.InterviewContext,
		MaxRounds:         state.MaxRounds,
	}

	id, err := c.store.SaveDiscussion(ctx, record)
	if err != nil {
		return fmt.Errorf("save discussion: %w", err)
	}
	state.DiscussionID = id
	state.NextStep = models.StepEnd

	c.logger.Info().
		Str("session", state.SessionID).
		Str("discussion", id).
		Msg("discussion persisted")
	return nil
}

func newUserID() string {
	return "user_" + compactUUID()[:8]
}

func newSessionID() string {
	return "forum_" + compactUUID()[:12]
}

func compactUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
