package models

import (
	"math"
	"time"
)

type Speaker string

const (
	SpeakerRAGCritic Speaker = "rag_critic"
	SpeakerWebCritic Speaker = "web_critic"
	SpeakerModerator Speaker = "moderator"
)

// Step is the control tag consumed by the forum graph router.
type Step string

const (
	StepRAGCritic          Step = "rag_critic"
	StepWebCritic          Step = "web_critic"
	StepModeratorDecide    Step = "moderator_decide"
	StepModeratorSummarize Step = "moderator_summarize"
	StepSave               Step = "save"
	StepEnd                Step = "end"
)

// DiscussionState is the shared state threaded through one forum discussion.
// It is owned by the coordinator and never shared across discussions.
type DiscussionState struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`

	// Message is the serialized question+answer transcript under evaluation.
	Message          string            `json:"message"`
	InterviewContext map[string]string `json:"interview_context,omitempty"`

	CurrentRound   int     `json:"current_round"`
	MaxRounds      int     `json:"max_rounds"`
	CurrentSpeaker Speaker `json:"current_speaker"`

	RAGComment *RAGComment `json:"rag_critic_comment,omitempty"`
	WebComment *WebComment `json:"web_critic_comment,omitempty"`

	// DiscussionHistory holds one snapshot per completed (non-final) round,
	// appended in strict round order.
	DiscussionHistory []RoundRecord `json:"discussion_history"`

	// FinalEvaluation is set exactly once, by the moderator's summarize step.
	FinalEvaluation *FinalEvaluation `json:"final_evaluation,omitempty"`

	NextStep       Step `json:"next_step"`
	ShouldContinue bool `json:"should_continue"`

	// DiscussionID is filled in by the save step.
	DiscussionID string `json:"discussion_id,omitempty"`
}

func NewDiscussionState(sessionID, userID, message string, interviewContext map[string]string, maxRounds int) *DiscussionState {
	if maxRounds < 1 {
		maxRounds = 1
	}
	return &DiscussionState{
		SessionID:         sessionID,
		UserID:            userID,
		Message:           message,
		InterviewContext:  interviewContext,
		CurrentRound:      1,
		MaxRounds:         maxRounds,
		DiscussionHistory: []RoundRecord{},
		NextStep:          StepRAGCritic,
		ShouldContinue:    true,
	}
}

// RoundRecord is an immutable snapshot of one completed discussion round.
type RoundRecord struct {
	Round      int         `json:"round"`
	RAGComment *RAGComment `json:"rag_comment"`
	WebComment *WebComment `json:"web_comment"`
	Timestamp  time.Time   `json:"timestamp"`
}

// RAGComment is the RAG critic's structured critique. Error is non-empty for
// the fail-soft paths (unparseable transcript, undecodable LLM output); the
// raw material is kept alongside for diagnosis.
type RAGComment struct {
	CompletenessScore float64 `json:"completeness_score"`
	AccuracyScore     float64 `json:"accuracy_score"`
	DepthScore        float64 `json:"depth_score"`
	OverallScore      float64 `json:"overall_score"`

	MissingPoints   []string `json:"missing_points"`
	IncorrectPoints []string `json:"incorrect_points"`
	Strengths       []string `json:"strengths"`
	Suggestions     []string `json:"suggestions"`

	ReferenceCases []ReferenceCase `json:"reference_cases,omitempty"`

	Error       string `json:"error,omitempty"`
	RawResponse string `json:"raw_response,omitempty"`
	Message     string `json:"message,omitempty"`
}

type ReferenceCase struct {
	CaseID     string   `json:"case_id"`
	Similarity float64  `json:"similarity"`
	KeyPoints  []string `json:"key_points,omitempty"`
}

// WebComment is the web critic's structured critique.
type WebComment struct {
	RelevanceScore    float64 `json:"relevance_score"`
	TimelinessScore   float64 `json:"timeliness_score"`
	PracticalityScore float64 `json:"practicality_score"`
	OverallScore      float64 `json:"overall_score"`

	IndustryTrends []string `json:"industry_trends"`
	BestPractices  []string `json:"best_practices"`
	OutdatedPoints []string `json:"outdated_points"`
	Strengths      []string `json:"strengths"`
	Suggestions    []string `json:"suggestions"`

	Error       string `json:"error,omitempty"`
	RawResponse string `json:"raw_response,omitempty"`
	Message     string `json:"message,omitempty"`
}

// Decision is the moderator's continue-vs-converge verdict.
type Decision struct {
	ShouldContinue bool   `json:"should_continue"`
	NextStep       Step   `json:"next_step"`
	Reason         string `json:"reason"`
	CurrentSpeaker string `json:"current_speaker"`
}

// Dimensions holds the six per-dimension scores of a final evaluation, on a
// 0-100 scale (critic scores times ten).
type Dimensions struct {
	Completeness float64 `json:"completeness"`
	Accuracy     float64 `json:"accuracy"`
	Depth        float64 `json:"depth"`
	Relevance    float64 `json:"relevance"`
	Timeliness   float64 `json:"timeliness"`
	Practicality float64 `json:"practicality"`
}

// Average returns the overall score implied by the six dimensions, rounded to
// the nearest integer.
func (d Dimensions) Average() float64 {
	sum := d.Completeness + d.Accuracy + d.Depth + d.Relevance + d.Timeliness + d.Practicality
	return math.Round(sum / 6)
}

// FinalEvaluation merges both critics' critiques into one verdict.
type FinalEvaluation struct {
	OverallScore float64    `json:"overall_score"`
	Dimensions   Dimensions `json:"dimensions"`
	Strengths    []string   `json:"strengths"`
	Improvements []string   `json:"improvements"`
	Summary      string     `json:"summary"`

	Error       string `json:"error,omitempty"`
	RawResponse string `json:"raw_response,omitempty"`
}

// QAEvaluation is one question/answer pair's result inside a session report.
type QAEvaluation struct {
	QAIndex    int              `json:"qa_index"`
	Question   string           `json:"question"`
	Answer     string           `json:"answer"`
	RAGComment *RAGComment      `json:"rag_comment,omitempty"`
	WebComment *WebComment      `json:"web_comment,omitempty"`
	Evaluation *FinalEvaluation `json:"evaluation,omitempty"`
	Duration   time.Duration    `json:"duration_ns"`
}

type PerformanceTrend string

const (
	TrendImproving PerformanceTrend = "improving"
	TrendStable    PerformanceTrend = "stable"
	TrendDeclining PerformanceTrend = "declining"
)

type TopicScore struct {
	Score   float64 `json:"score"`
	Comment string  `json:"comment"`
}

type ImprovementSuggestion struct {
	Priority   string `json:"priority"`
	Suggestion string `json:"suggestion"`
}

// OverallEvaluation is the session-level aggregation across many QA rounds.
type OverallEvaluation struct {
	OverallScore           float64                 `json:"overall_score"`
	Strengths              []string                `json:"strengths"`
	Weaknesses             []string                `json:"weaknesses"`
	KnowledgeGaps          []string                `json:"knowledge_gaps"`
	PerformanceTrend       PerformanceTrend        `json:"performance_trend"`
	TrendAnalysis          string                  `json:"trend_analysis"`
	TopicAnalysis          map[string]TopicScore   `json:"topic_analysis"`
	ImprovementSuggestions []ImprovementSuggestion `json:"improvement_suggestions"`
	Summary                string                  `json:"summary"`

	Error       string `json:"error,omitempty"`
	RawResponse string `json:"raw_response,omitempty"`
}

// SessionStatistics summarizes a whole interview-session evaluation.
type SessionStatistics struct {
	TotalQuestions int     `json:"total_questions"`
	AverageScore   float64 `json:"average_score"`
	TotalTime      float64 `json:"total_time"`
}

type SessionReport struct {
	SessionID         string             `json:"session_id"`
	QAEvaluations     []QAEvaluation     `json:"qa_evaluations"`
	OverallEvaluation *OverallEvaluation `json:"overall_evaluation"`
	Statistics        SessionStatistics  `json:"statistics"`
}

// ChatMessage is one turn of an interview transcript handed to the session
// evaluator. Role is "interviewer" or "candidate".
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// DiscussionRequest is the intake payload accepted by the API, the stream
// consumer and the MCP tool.
type DiscussionRequest struct {
	UserID     string `json:"user_id,omitempty"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Company    string `json:"company,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// InterviewContext builds the optional context map from the request fields.
func (r DiscussionRequest) InterviewContext() map[string]string {
	ctx := map[string]string{}
	if r.Company != "" {
		ctx["company"] = r.Company
	}
	if r.Difficulty != "" {
		ctx["difficulty"] = r.Difficulty
	}
	if len(ctx) == 0 {
		return nil
	}
	return ctx
}

// EpisodicCase is a full historical interview case from the system-of-record
// store. The retrieval index only knows its ID.
type EpisodicCase struct {
	ID           string   `json:"id"`
	UserID       string   `json:"user_id"`
	Question     string   `json:"question"`
	Answer       string   `json:"answer"`
	KeyPoints    []string `json:"key_points"`
	Company      string   `json:"company,omitempty"`
	Difficulty   string   `json:"difficulty,omitempty"`
	QualityScore int      `json:"quality_score"`

	// Similarity is the retrieval engine's score, attached after resolution.
	Similarity float64 `json:"similarity,omitempty"`
}

// DiscussionRecord is the durable form of a finished discussion.
type DiscussionRecord struct {
	SessionID         string            `json:"session_id"`
	UserID            string            `json:"user_id"`
	Question          string            `json:"question"`
	UserAnswer        string            `json:"user_answer"`
	RAGComment        *RAGComment       `json:"rag_comment,omitempty"`
	WebComment        *WebComment       `json:"web_comment,omitempty"`
	FinalEvaluation   *FinalEvaluation  `json:"final_evaluation,omitempty"`
	DiscussionHistory []RoundRecord     `json:"discussion_history"`
	TotalRounds       int               `json:"total_rounds"`
	InterviewContext  map[string]string `json:"interview_context,omitempty"`
	MaxRounds         int               `json:"max_rounds"`
}

// RAGOverallScore applies the fixed RAG critique weighting, rounded to one
// decimal: 0.4*completeness + 0.4*accuracy + 0.2*depth.
func RAGOverallScore(completeness, accuracy, depth float64) float64 {
	return round1(0.4*completeness + 0.4*accuracy + 0.2*depth)
}

// WebOverallScore applies the fixed web critique weighting, rounded to one
// decimal: 0.35*relevance + 0.35*timeliness + 0.30*practicality.
func WebOverallScore(relevance, timeliness, practicality float64) float64 {
	return round1(0.35*relevance + 0.35*timeliness + 0.30*practicality)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
