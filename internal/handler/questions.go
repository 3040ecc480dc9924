package handler

import (
	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/quiz"
	"github.com/ansiversa/quizdb/internal/repository"
	"github.com/ansiversa/quizdb/internal/validation"
	"github.com/labstack/echo/v4"
)

// QuestionFilterQuery holds the filters shared by search and random draws.
type QuestionFilterQuery struct {
	QuestionText string     `query:"questionText"`
	PlatformID   queryInt64 `query:"platformId"`
	SubjectID    queryInt64 `query:"subjectId"`
	TopicID      queryInt64 `query:"topicId"`
	RoadmapID    queryInt64 `query:"roadmapId"`
	Level        string     `query:"level"`
	Status       string     `query:"status"`
}

func (q QuestionFilterQuery) filters() repository.QuestionFilters {
	return repository.QuestionFilters{
		QuestionText: optionalString(q.QuestionText),
		PlatformID:   q.PlatformID.value,
		SubjectID:    q.SubjectID.value,
		TopicID:      q.TopicID.value,
		RoadmapID:    q.RoadmapID.value,
		Level:        optionalString(q.Level),
		Status:       statusFilter(q.Status),
	}
}

type SearchQuestionsRequest struct {
	PageQuery
	SortQuery
	QuestionFilterQuery
}

func (r *SearchQuestionsRequest) Validate() error { return validation.Struct(r) }

func (r *SearchQuestionsRequest) options() repository.QuestionSearch {
	return repository.QuestionSearch{
		PageRequest:     r.PageQuery.request(),
		QuestionFilters: r.filters(),
		SortColumn:      sortKey(r.SortColumn, questionSortKeys...),
		SortDirection:   r.direction(),
	}
}

type RandomQuestionsRequest struct {
	QuestionFilterQuery
	Limit      queryInt `query:"limit"`
	ExcludeIDs queryIDs `query:"excludeIds"`
}

func (r *RandomQuestionsRequest) Validate() error { return validation.Struct(r) }

func (r *RandomQuestionsRequest) options() repository.RandomQuestionOptions {
	return repository.RandomQuestionOptions{
		Limit:      r.Limit.value,
		Filters:    r.filters(),
		ExcludeIDs: r.ExcludeIDs.ids,
	}
}

type UpdateQuestionRequest struct {
	IDRequest
	quiz.UpdateQuestion
}

func (r *UpdateQuestionRequest) Validate() error { return validation.Struct(r) }

type QuestionHandler struct {
	Handler
}

func NewQuestionHandler(h Handler) *QuestionHandler {
	return &QuestionHandler{Handler: h}
}

func (h *QuestionHandler) Search(c echo.Context, req *SearchQuestionsRequest) (*db.Page[quiz.QuestionRelations], error) {
	return h.services.Questions.Search(c.Request().Context(), req.options())
}

func (h *QuestionHandler) Random(c echo.Context, req *RandomQuestionsRequest) (*db.Page[quiz.QuestionRelations], error) {
	return h.services.Questions.Random(c.Request().Context(), req.options())
}

func (h *QuestionHandler) Get(c echo.Context, req *IDRequest) (*quiz.QuestionRelations, error) {
	return h.services.Questions.Get(c.Request().Context(), req.ID)
}

func (h *QuestionHandler) Create(c echo.Context, req *quiz.NewQuestion) (*quiz.Question, error) {
	return h.services.Questions.Create(c.Request().Context(), req)
}

func (h *QuestionHandler) Update(c echo.Context, req *UpdateQuestionRequest) (*quiz.Question, error) {
	return h.services.Questions.Update(c.Request().Context(), req.ID, &req.UpdateQuestion)
}

func (h *QuestionHandler) Delete(c echo.Context, req *IDRequest) error {
	_, err := h.services.Questions.Delete(c.Request().Context(), req.ID)
	return err
}
