package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/yinterview/forum-agent/internal/api/middleware"
	"github.com/yinterview/forum-agent/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/discussions").
			To(handler.CreateDiscussion).
			Doc("Run a forum discussion over one question/answer pair").
			Metadata(restfulspec.KeyOpenAPITags, []string{"discussions"}).
			Reads(models.DiscussionRequest{}).
			Writes(models.DiscussionState{}).
			Returns(200, "OK", models.DiscussionState{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/sessions/evaluate").
			To(handler.EvaluateSession).
			Doc("Evaluate a whole interview session transcript").
			Metadata(restfulspec.KeyOpenAPITags, []string{"sessions"}).
			Reads(SessionEvaluateRequest{}).
			Writes(models.SessionReport{}).
			Returns(200, "OK", models.SessionReport{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/cases").
			To(handler.CreateCase).
			Doc("Add a historical interview case to the episodic store").
			Metadata(restfulspec.KeyOpenAPITags, []string{"cases"}).
			Reads(CreateCaseRequest{}).
			Writes(CreateCaseResponse{}).
			Returns(201, "Created", CreateCaseResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}
