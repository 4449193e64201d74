package mcpadapter

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/yinterview/forum-agent/internal/forum"
	"github.com/yinterview/forum-agent/internal/memory"
	"github.com/yinterview/forum-agent/internal/models"
)

// EvaluateAnswerInput is the MCP tool input schema (matches HTTP API field names).
type EvaluateAnswerInput struct {
	UserID     string `json:"user_id,omitempty" jsonschema:"optional stable user identifier"`
	Question   string `json:"question" jsonschema:"the interview question"`
	Answer     string `json:"answer" jsonschema:"the candidate's answer to evaluate"`
	Company    string `json:"company,omitempty" jsonschema:"optional target company"`
	Difficulty string `json:"difficulty,omitempty" jsonschema:"optional question difficulty"`
}

// EvaluateSessionInput is the MCP tool input schema for whole-session evaluation.
type EvaluateSessionInput struct {
	UserID      string               `json:"user_id,omitempty" jsonschema:"optional stable user identifier"`
	ChatHistory []models.ChatMessage `json:"chat_history" jsonschema:"interview transcript, roles interviewer/candidate"`
	Company     string               `json:"company,omitempty" jsonschema:"optional target company"`
	Difficulty  string               `json:"difficulty,omitempty" jsonschema:"optional question difficulty"`
}

// NewEvaluateAnswerHandler returns a tool handler that runs one forum
// discussion. Pass the returned function to mcp.AddTool.
func NewEvaluateAnswerHandler(coordinator *forum.Coordinator) func(context.Context, *mcp.CallToolRequest, EvaluateAnswerInput) (*mcp.CallToolResult, models.DiscussionState, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input EvaluateAnswerInput) (*mcp.CallToolResult, models.DiscussionState, error) {
		if input.Question == "" || input.Answer == "" {
			return nil, models.DiscussionState{}, fmt.Errorf("question and answer are required")
		}

		state, err := coordinator.RunRequest(ctx, models.DiscussionRequest{
			UserID:     input.UserID,
			Question:   input.Question,
			Answer:     input.Answer,
			Company:    input.Company,
			Difficulty: input.Difficulty,
		})
		if err != nil {
			return nil, models.DiscussionState{}, err
		}
		return nil, *state, nil
	}
}

// AddCaseInput is the MCP tool input schema for episodic case ingestion.
type AddCaseInput struct {
	UserID       string   `json:"user_id" jsonschema:"stable user identifier"`
	Question     string   `json:"question" jsonschema:"the interview question"`
	Answer       string   `json:"answer" jsonschema:"a reference answer"`
	KeyPoints    []string `json:"key_points,omitempty" jsonschema:"key points the answer should cover"`
	Company      string   `json:"company,omitempty" jsonschema:"optional company the question came from"`
	Difficulty   string   `json:"difficulty,omitempty" jsonschema:"optional question difficulty"`
	QualityScore int      `json:"quality_score" jsonschema:"case quality, 1-10"`
}

type AddCaseOutput struct {
	ID string `json:"id"`
}

// NewAddCaseHandler returns a tool handler that stores and indexes one
// historical case. Pass the returned function to mcp.AddTool.
func NewAddCaseHandler(ingestor *memory.Ingestor) func(context.Context, *mcp.CallToolRequest, AddCaseInput) (*mcp.CallToolResult, AddCaseOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AddCaseInput) (*mcp.CallToolResult, AddCaseOutput, error) {
		if input.UserID == "" || input.Question == "" || input.Answer == "" {
			return nil, AddCaseOutput{}, fmt.Errorf("user_id, question and answer are required")
		}
		if input.QualityScore < 1 || input.QualityScore > 10 {
			return nil, AddCaseOutput{}, fmt.Errorf("quality_score must be between 1 and 10")
		}

		id, err := ingestor.IngestCase(ctx, &models.EpisodicCase{
			UserID:       input.UserID,
			Question:     input.Question,
			Answer:       input.Answer,
			KeyPoints:    input.KeyPoints,
			Company:      input.Company,
			Difficulty:   input.Difficulty,
			QualityScore: input.QualityScore,
		})
		if err != nil {
			return nil, AddCaseOutput{}, err
		}
		return nil, AddCaseOutput{ID: id}, nil
	}
}

// NewEvaluateSessionHandler returns a tool handler that scores a whole
// interview transcript. Pass the returned function to mcp.AddTool.
func NewEvaluateSessionHandler(evaluator *forum.SessionEvaluator) func(context.Context, *mcp.CallToolRequest, EvaluateSessionInput) (*mcp.CallToolResult, models.SessionReport, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input EvaluateSessionInput) (*mcp.CallToolResult, models.SessionReport, error) {
		interviewContext := models.DiscussionRequest{
			Company:    input.Company,
			Difficulty: input.Difficulty,
		}.InterviewContext()

		report, err := evaluator.Evaluate(ctx, input.UserID, input.ChatHistory, interviewContext)
		if err != nil {
			return nil, models.SessionReport{}, err
		}
		return nil, *report, nil
	}
}
