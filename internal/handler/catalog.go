package handler

import (
	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/quiz"
	"github.com/ansiversa/quizdb/internal/repository"
	"github.com/ansiversa/quizdb/internal/service"
	"github.com/ansiversa/quizdb/internal/validation"
	"github.com/labstack/echo/v4"
)

type CatalogRequest struct {
	Questions queryBool `query:"questions"`
}

func (r *CatalogRequest) Validate() error { return validation.Struct(r) }

type ListPlatformsRequest struct {
	PageQuery
	Type     string    `query:"type"`
	IsActive queryBool `query:"isActive"`
}

func (r *ListPlatformsRequest) Validate() error { return validation.Struct(r) }

type ListSubjectsRequest struct {
	PageQuery
	PlatformID queryInt64 `query:"platformId"`
}

func (r *ListSubjectsRequest) Validate() error { return validation.Struct(r) }

type ListTopicsRequest struct {
	PageQuery
	PlatformID queryInt64 `query:"platformId"`
	SubjectID  queryInt64 `query:"subjectId"`
}

func (r *ListTopicsRequest) Validate() error { return validation.Struct(r) }

type ListRoadmapsRequest struct {
	PageQuery
	PlatformID queryInt64 `query:"platformId"`
	SubjectID  queryInt64 `query:"subjectId"`
	TopicID    queryInt64 `query:"topicId"`
}

func (r *ListRoadmapsRequest) Validate() error { return validation.Struct(r) }

type ListQuestionsRequest struct {
	PageQuery
	PlatformID queryInt64         `query:"platformId"`
	SubjectID  queryNullableInt64 `query:"subjectId"`
	TopicID    queryNullableInt64 `query:"topicId"`
	RoadmapID  queryNullableInt64 `query:"roadmapId"`
	Level      string             `query:"level" validate:"omitempty,oneof=E M D e m d"`
	IsActive   queryBool          `query:"isActive"`
}

func (r *ListQuestionsRequest) Validate() error { return validation.Struct(r) }

func (r *ListQuestionsRequest) filter() repository.QuestionFilter {
	f := repository.QuestionFilter{
		PageRequest: r.PageQuery.request(),
		PlatformID:  r.PlatformID.value,
		SubjectID:   r.SubjectID.value,
		TopicID:     r.TopicID.value,
		RoadmapID:   r.RoadmapID.value,
		IsActive:    r.IsActive.value,
	}
	if r.Level != "" {
		level := quiz.Level(r.Level)
		f.Level = &level
	}
	return f
}

// RandomDrawRequest draws a quiz from the platform in the path.
type RandomDrawRequest struct {
	IDRequest
	Limit queryInt `query:"limit"`
}

func (r *RandomDrawRequest) Validate() error { return validation.Struct(r) }

type UserResultsRequest struct {
	UserID string `param:"userId" json:"-" validate:"required"`
}

func (r *UserResultsRequest) Validate() error { return validation.Struct(r) }

// CatalogHandler serves the read-only browsing routes.
type CatalogHandler struct {
	Handler
}

func NewCatalogHandler(h Handler) *CatalogHandler {
	return &CatalogHandler{Handler: h}
}

func (h *CatalogHandler) Snapshot(c echo.Context, req *CatalogRequest) (*service.Catalog, error) {
	withQuestions := req.Questions.value != nil && *req.Questions.value
	return h.services.Catalog.Snapshot(c.Request().Context(), withQuestions)
}

func (h *CatalogHandler) Platforms(c echo.Context, req *ListPlatformsRequest) (*db.Page[quiz.Platform], error) {
	return h.services.Catalog.Platforms(c.Request().Context(), repository.PlatformFilter{
		PageRequest: req.PageQuery.request(),
		Type:        optionalString(req.Type),
		IsActive:    req.IsActive.value,
	})
}

func (h *CatalogHandler) Subjects(c echo.Context, req *ListSubjectsRequest) (*db.Page[quiz.Subject], error) {
	return h.services.Catalog.Subjects(c.Request().Context(), repository.SubjectFilter{
		PageRequest: req.PageQuery.request(),
		PlatformID:  req.PlatformID.value,
	})
}

func (h *CatalogHandler) Topics(c echo.Context, req *ListTopicsRequest) (*db.Page[quiz.Topic], error) {
	return h.services.Catalog.Topics(c.Request().Context(), repository.TopicFilter{
		PageRequest: req.PageQuery.request(),
		PlatformID:  req.PlatformID.value,
		SubjectID:   req.SubjectID.value,
	})
}

func (h *CatalogHandler) Roadmaps(c echo.Context, req *ListRoadmapsRequest) (*db.Page[quiz.Roadmap], error) {
	return h.services.Catalog.Roadmaps(c.Request().Context(), repository.RoadmapFilter{
		PageRequest: req.PageQuery.request(),
		PlatformID:  req.PlatformID.value,
		SubjectID:   req.SubjectID.value,
		TopicID:     req.TopicID.value,
	})
}

func (h *CatalogHandler) Questions(c echo.Context, req *ListQuestionsRequest) (*db.Page[quiz.Question], error) {
	return h.services.Catalog.Questions(c.Request().Context(), req.filter())
}

func (h *CatalogHandler) SubjectsOf(c echo.Context, req *IDRequest) ([]quiz.Subject, error) {
	return h.services.Catalog.SubjectsOf(c.Request().Context(), req.ID)
}

// TopicsOf, RoadmapsOf and QuestionsOf list the children of the parent kind
// named at registration, whose id is the :id path parameter.
func (h *CatalogHandler) TopicsOf(parent service.Parent) HandlerFunc[*IDRequest, []quiz.Topic] {
	return func(c echo.Context, req *IDRequest) ([]quiz.Topic, error) {
		return h.services.Catalog.TopicsOf(c.Request().Context(), parent, req.ID)
	}
}

func (h *CatalogHandler) RoadmapsOf(parent service.Parent) HandlerFunc[*IDRequest, []quiz.Roadmap] {
	return func(c echo.Context, req *IDRequest) ([]quiz.Roadmap, error) {
		return h.services.Catalog.RoadmapsOf(c.Request().Context(), parent, req.ID)
	}
}

func (h *CatalogHandler) QuestionsOf(parent service.Parent) HandlerFunc[*IDRequest, []quiz.Question] {
	return func(c echo.Context, req *IDRequest) ([]quiz.Question, error) {
		return h.services.Catalog.QuestionsOf(c.Request().Context(), parent, req.ID)
	}
}

func (h *CatalogHandler) RandomOf(c echo.Context, req *RandomDrawRequest) ([]quiz.Question, error) {
	return h.services.Catalog.RandomOf(c.Request().Context(), req.ID, req.Limit.value)
}

func (h *CatalogHandler) PlatformResults(c echo.Context, req *IDRequest) ([]quiz.Result, error) {
	return h.services.Catalog.ResultsOfPlatform(c.Request().Context(), req.ID)
}

func (h *CatalogHandler) UserResults(c echo.Context, req *UserResultsRequest) ([]quiz.Result, error) {
	return h.services.Catalog.ResultsOfUser(c.Request().Context(), req.UserID)
}
