package api

import (
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
	"github.com/yinterview/forum-agent/internal/api/middleware"
	"github.com/yinterview/forum-agent/internal/forum"
	"github.com/yinterview/forum-agent/internal/memory"
	"github.com/yinterview/forum-agent/internal/models"
)

type Handler struct {
	coordinator *forum.Coordinator
	evaluator   *forum.SessionEvaluator
	ingestor    *memory.Ingestor
	logger      *zerolog.Logger
}

func NewHandler(coordinator *forum.Coordinator, evaluator *forum.SessionEvaluator, ingestor *memory.Ingestor, logger *zerolog.Logger) *Handler {
	return &Handler{
		coordinator: coordinator,
		evaluator:   evaluator,
		ingestor:    ingestor,
		logger:      logger,
	}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// SessionEvaluateRequest asks for a whole interview transcript to be scored.
type SessionEvaluateRequest struct {
	UserID      string               `json:"user_id,omitempty"`
	ChatHistory []models.ChatMessage `json:"chat_history"`
	Company     string               `json:"company,omitempty"`
	Difficulty  string               `json:"difficulty,omitempty"`
}

// POST /api/v1/discussions
// Body: models.DiscussionRequest
// Returns: models.DiscussionState
func (h *Handler) CreateDiscussion(req *restful.Request, resp *restful.Response) {
	var discussionReq models.DiscussionRequest
	if err := req.ReadEntity(&discussionReq); err != nil {
		h.logger.Error().Err(err).Msg("failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}
	if discussionReq.Question == "" || discussionReq.Answer == "" {
		middleware.HandleError(resp, errors.New("question and answer are required"), http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("user", discussionReq.UserID).
		Msg("discussion requested")

	ctx := req.Request.Context()
	state, err := h.coordinator.RunRequest(ctx, discussionReq)
	if err != nil {
		h.logger.Error().Err(err).Msg("discussion failed")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, state)
}

// POST /api/v1/sessions/evaluate
// Body: SessionEvaluateRequest
// Returns: models.SessionReport
func (h *Handler) EvaluateSession(req *restful.Request, resp *restful.Response) {
	var sessionReq SessionEvaluateRequest
	if err := req.ReadEntity(&sessionReq); err != nil {
		h.logger.Error().Err(err).Msg("failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}
	if len(sessionReq.ChatHistory) == 0 {
		middleware.HandleError(resp, errors.New("chat_history is required"), http.StatusBadRequest)
		return
	}

	interviewContext := models.DiscussionRequest{
		Company:    sessionReq.Company,
		Difficulty: sessionReq.Difficulty,
	}.InterviewContext()

	h.logger.Info().
		Str("user", sessionReq.UserID).
		Int("messages", len(sessionReq.ChatHistory)).
		Msg("session evaluation requested")

	ctx := req.Request.Context()
	report, err := h.evaluator.Evaluate(ctx, sessionReq.UserID, sessionReq.ChatHistory, interviewContext)
	if err != nil {
		h.logger.Error().Err(err).Msg("session evaluation failed")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, report)
}

// CreateCaseRequest adds one historical interview case to the episodic store.
type CreateCaseRequest struct {
	UserID       string   `json:"user_id"`
	Question     string   `json:"question"`
	Answer       string   `json:"answer"`
	KeyPoints    []string `json:"key_points,omitempty"`
	Company      string   `json:"company,omitempty"`
	Difficulty   string   `json:"difficulty,omitempty"`
	QualityScore int      `json:"quality_score"`
}

type CreateCaseResponse struct {
	ID string `json:"id"`
}

// POST /api/v1/cases
// Body: CreateCaseRequest
// Returns: CreateCaseResponse
func (h *Handler) CreateCase(req *restful.Request, resp *restful.Response) {
	var caseReq CreateCaseRequest
	if err := req.ReadEntity(&caseReq); err != nil {
		h.logger.Error().Err(err).Msg("failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}
	if caseReq.UserID == "" || caseReq.Question == "" || caseReq.Answer == "" {
		middleware.HandleError(resp, errors.New("user_id, question and answer are required"), http.StatusBadRequest)
		return
	}
	if caseReq.QualityScore < 1 || caseReq.QualityScore > 10 {
		middleware.HandleError(resp, errors.New("quality_score must be between 1 and 10"), http.StatusBadRequest)
		return
	}

	id, err := h.ingestor.IngestCase(req.Request.Context(), &models.EpisodicCase{
		UserID:       caseReq.UserID,
		Question:     caseReq.Question,
		Answer:       caseReq.Answer,
		KeyPoints:    caseReq.KeyPoints,
		Company:      caseReq.Company,
		Difficulty:   caseReq.Difficulty,
		QualityScore: caseReq.QualityScore,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("case ingestion failed")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusCreated, CreateCaseResponse{ID: id})
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	})
}
