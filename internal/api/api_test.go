package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
	"github.com/yinterview/forum-agent/internal/api"
	"github.com/yinterview/forum-agent/internal/api/middleware"
	"github.com/yinterview/forum-agent/internal/forum"
	"github.com/yinterview/forum-agent/internal/forum/mocks"
	"github.com/yinterview/forum-agent/internal/memory"
	"github.com/yinterview/forum-agent/internal/models"
	"github.com/yinterview/forum-agent/internal/vector"
	"go.uber.org/mock/gomock"
)

type stubRepo struct{}

func (stubRepo) ResolveCases(ctx context.Context, ids []string) ([]models.EpisodicCase, error) {
	return nil, nil
}

func (stubRepo) SaveCase(ctx context.Context, c *models.EpisodicCase) (string, error) {
	return "case-id-1", nil
}

func (stubRepo) SaveDiscussion(ctx context.Context, record *models.DiscussionRecord) (string, error) {
	return "", nil
}

type stubEmbedder struct{}

func (stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

type stubIndex struct{}

func (stubIndex) Add(ctx context.Context, cases []vector.CaseVector) error { return nil }

func (stubIndex) Search(ctx context.Context, queryEmbedding []float32, topK int, filter vector.CaseFilter) ([]vector.Match, error) {
	return nil, nil
}

func (stubIndex) Count() int { return 0 }

func setupTestAPI(t *testing.T, ctrl *gomock.Controller, configure func(rag *mocks.MockRAGCritic, web *mocks.MockWebCritic, mod *mocks.MockModerator, store *mocks.MockDiscussionStore)) *restful.Container {
	t.Helper()
	logger := zerolog.Nop()

	mockRAG := mocks.NewMockRAGCritic(ctrl)
	mockWeb := mocks.NewMockWebCritic(ctrl)
	mockMod := mocks.NewMockModerator(ctrl)
	mockStore := mocks.NewMockDiscussionStore(ctrl)
	if configure != nil {
		configure(mockRAG, mockWeb, mockMod, mockStore)
	}

	coordinator := forum.NewCoordinator(mockRAG, mockWeb, mockMod, mockStore, 3, time.Minute, &logger)
	evaluator := forum.NewSessionEvaluator(coordinator, mockMod, &logger)
	ingestor := memory.NewIngestor(stubRepo{}, stubEmbedder{}, stubIndex{}, &logger)

	handler := api.NewHandler(coordinator, evaluator, ingestor, &logger)
	container := restful.NewContainer()
	api.RegisterRoutes(container, handler)
	return container
}

func TestAPI_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	container := setupTestAPI(t, ctrl, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", recorder.Code)
	}

	var response api.HealthResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", response.Status)
	}
}

func TestAPI_CreateDiscussion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	container := setupTestAPI(t, ctrl, func(rag *mocks.MockRAGCritic, web *mocks.MockWebCritic, mod *mocks.MockModerator, store *mocks.MockDiscussionStore) {
		rag.EXPECT().Critique(gomock.Any(), gomock.Any()).Return(&models.RAGComment{OverallScore: 7}, nil)
		web.EXPECT().Critique(gomock.Any(), gomock.Any()).Return(&models.WebComment{OverallScore: 7}, nil)
		mod.EXPECT().DecideNextStep(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, state *models.DiscussionState) error {
				state.NextStep = models.StepModeratorSummarize
				return nil
			})
		mod.EXPECT().GenerateFinalEvaluation(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, state *models.DiscussionState) error {
				state.FinalEvaluation = &models.FinalEvaluation{OverallScore: 70, Summary: "良好"}
				state.NextStep = models.StepSave
				return nil
			})
		store.EXPECT().SaveDiscussion(gomock.Any(), gomock.Any()).Return("discussion-id-1", nil)
	})

	body, _ := json.Marshal(models.DiscussionRequest{
		UserID:   "user_1",
		Question: "什么是接口？",
		Answer:   "接口定义行为契约。",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/discussions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var state models.DiscussionState
	if err := json.Unmarshal(recorder.Body.Bytes(), &state); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if state.DiscussionID != "discussion-id-1" {
		t.Errorf("Expected discussion id, got %q", state.DiscussionID)
	}
	if state.FinalEvaluation == nil || state.FinalEvaluation.OverallScore != 70 {
		t.Errorf("Unexpected final evaluation: %+v", state.FinalEvaluation)
	}
}

func TestAPI_CreateDiscussion_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	container := setupTestAPI(t, ctrl, nil)

	body, _ := json.Marshal(models.DiscussionRequest{UserID: "user_1"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/discussions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", recorder.Code)
	}

	var errResp middleware.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("Failed to parse error response: %v", err)
	}
	if errResp.Status != http.StatusBadRequest {
		t.Errorf("Expected error status 400, got %d", errResp.Status)
	}
}

func TestAPI_CreateCase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	container := setupTestAPI(t, ctrl, nil)

	body, _ := json.Marshal(api.CreateCaseRequest{
		UserID:       "user_1",
		Question:     "什么是 channel？",
		Answer:       "channel 用于 goroutine 间通信。",
		QualityScore: 8,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cases", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var response api.CreateCaseResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.ID != "case-id-1" {
		t.Errorf("Expected case id, got %q", response.ID)
	}
}

func TestAPI_CreateCase_InvalidQuality(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	container := setupTestAPI(t, ctrl, nil)

	body, _ := json.Marshal(api.CreateCaseRequest{
		UserID:       "user_1",
		Question:     "问题",
		Answer:       "回答",
		QualityScore: 11,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cases", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", recorder.Code)
	}
}
