package handler

import (
	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/quiz"
	"github.com/ansiversa/quizdb/internal/repository"
	"github.com/ansiversa/quizdb/internal/validation"
	"github.com/labstack/echo/v4"
)

type SearchSubjectsRequest struct {
	PageQuery
	SortQuery
	CountQuery
	Name       string     `query:"name"`
	PlatformID queryInt64 `query:"platformId"`
}

func (r *SearchSubjectsRequest) Validate() error { return validation.Struct(r) }

func (r *SearchSubjectsRequest) options() repository.SubjectSearch {
	return repository.SubjectSearch{
		PageRequest:   r.PageQuery.request(),
		Name:          optionalString(r.Name),
		PlatformID:    r.PlatformID.value,
		MinQuestions:  r.MinQuestions.value,
		MaxQuestions:  r.MaxQuestions.value,
		Status:        r.status(),
		SortColumn:    sortKey(r.SortColumn, subjectSortKeys...),
		SortDirection: r.direction(),
	}
}

type UpdateSubjectRequest struct {
	IDRequest
	quiz.UpdateSubject
}

func (r *UpdateSubjectRequest) Validate() error { return validation.Struct(r) }

type SubjectHandler struct {
	Handler
}

func NewSubjectHandler(h Handler) *SubjectHandler {
	return &SubjectHandler{Handler: h}
}

func (h *SubjectHandler) Search(c echo.Context, req *SearchSubjectsRequest) (*db.Page[quiz.SubjectWithPlatform], error) {
	return h.services.Subjects.Search(c.Request().Context(), req.options())
}

func (h *SubjectHandler) Get(c echo.Context, req *IDRequest) (*quiz.SubjectWithPlatform, error) {
	return h.services.Subjects.Get(c.Request().Context(), req.ID)
}

func (h *SubjectHandler) Create(c echo.Context, req *quiz.NewSubject) (*quiz.Subject, error) {
	return h.services.Subjects.Create(c.Request().Context(), req)
}

func (h *SubjectHandler) Update(c echo.Context, req *UpdateSubjectRequest) (*quiz.Subject, error) {
	return h.services.Subjects.Update(c.Request().Context(), req.ID, &req.UpdateSubject)
}

func (h *SubjectHandler) Delete(c echo.Context, req *IDRequest) error {
	_, err := h.services.Subjects.Delete(c.Request().Context(), req.ID)
	return err
}

type SearchTopicsRequest struct {
	PageQuery
	SortQuery
	CountQuery
	Name       string     `query:"name"`
	PlatformID queryInt64 `query:"platformId"`
	SubjectID  queryInt64 `query:"subjectId"`
}

func (r *SearchTopicsRequest) Validate() error { return validation.Struct(r) }

func (r *SearchTopicsRequest) options() repository.TopicSearch {
	return repository.TopicSearch{
		PageRequest:   r.PageQuery.request(),
		Name:          optionalString(r.Name),
		PlatformID:    r.PlatformID.value,
		SubjectID:     r.SubjectID.value,
		MinQuestions:  r.MinQuestions.value,
		MaxQuestions:  r.MaxQuestions.value,
		Status:        r.status(),
		SortColumn:    sortKey(r.SortColumn, topicSortKeys...),
		SortDirection: r.direction(),
	}
}

type UpdateTopicRequest struct {
	IDRequest
	quiz.UpdateTopic
}

func (r *UpdateTopicRequest) Validate() error { return validation.Struct(r) }

type TopicHandler struct {
	Handler
}

func NewTopicHandler(h Handler) *TopicHandler {
	return &TopicHandler{Handler: h}
}

func (h *TopicHandler) Search(c echo.Context, req *SearchTopicsRequest) (*db.Page[quiz.TopicWithRelations], error) {
	return h.services.Topics.Search(c.Request().Context(), req.options())
}

func (h *TopicHandler) Get(c echo.Context, req *IDRequest) (*quiz.TopicWithRelations, error) {
	return h.services.Topics.Get(c.Request().Context(), req.ID)
}

func (h *TopicHandler) Create(c echo.Context, req *quiz.NewTopic) (*quiz.Topic, error) {
	return h.services.Topics.Create(c.Request().Context(), req)
}

func (h *TopicHandler) Update(c echo.Context, req *UpdateTopicRequest) (*quiz.Topic, error) {
	return h.services.Topics.Update(c.Request().Context(), req.ID, &req.UpdateTopic)
}

func (h *TopicHandler) Delete(c echo.Context, req *IDRequest) error {
	_, err := h.services.Topics.Delete(c.Request().Context(), req.ID)
	return err
}

type SearchRoadmapsRequest struct {
	PageQuery
	SortQuery
	CountQuery
	Name       string     `query:"name"`
	PlatformID queryInt64 `query:"platformId"`
	SubjectID  queryInt64 `query:"subjectId"`
	TopicID    queryInt64 `query:"topicId"`
}

func (r *SearchRoadmapsRequest) Validate() error { return validation.Struct(r) }

func (r *SearchRoadmapsRequest) options() repository.RoadmapSearch {
	return repository.RoadmapSearch{
		PageRequest:   r.PageQuery.request(),
		Name:          optionalString(r.Name),
		PlatformID:    r.PlatformID.value,
		SubjectID:     r.SubjectID.value,
		TopicID:       r.TopicID.value,
		MinQuestions:  r.MinQuestions.value,
		MaxQuestions:  r.MaxQuestions.value,
		Status:        r.status(),
		SortColumn:    sortKey(r.SortColumn, roadmapSortKeys...),
		SortDirection: r.direction(),
	}
}

type UpdateRoadmapRequest struct {
	IDRequest
	quiz.UpdateRoadmap
}

func (r *UpdateRoadmapRequest) Validate() error { return validation.Struct(r) }

type RoadmapHandler struct {
	Handler
}

func NewRoadmapHandler(h Handler) *RoadmapHandler {
	return &RoadmapHandler{Handler: h}
}

func (h *RoadmapHandler) Search(c echo.Context, req *SearchRoadmapsRequest) (*db.Page[quiz.RoadmapWithRelations], error) {
	return h.services.Roadmaps.Search(c.Request().Context(), req.options())
}

func (h *RoadmapHandler) Get(c echo.Context, req *IDRequest) (*quiz.RoadmapWithRelations, error) {
	return h.services.Roadmaps.Get(c.Request().Context(), req.ID)
}

func (h *RoadmapHandler) Create(c echo.Context, req *quiz.NewRoadmap) (*quiz.Roadmap, error) {
	return h.services.Roadmaps.Create(c.Request().Context(), req)
}

func (h *RoadmapHandler) Update(c echo.Context, req *UpdateRoadmapRequest) (*quiz.Roadmap, error) {
	return h.services.Roadmaps.Update(c.Request().Context(), req.ID, &req.UpdateRoadmap)
}

func (h *RoadmapHandler) Delete(c echo.Context, req *IDRequest) error {
	_, err := h.services.Roadmaps.Delete(c.Request().Context(), req.ID)
	return err
}
