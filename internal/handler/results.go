package handler

import (
	"strings"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/quiz"
	"github.com/ansiversa/quizdb/internal/repository"
	"github.com/ansiversa/quizdb/internal/validation"
	"github.com/labstack/echo/v4"
)

type ListResultsRequest struct {
	PageQuery
	UserID     string             `query:"userId"`
	PlatformID queryInt64         `query:"platformId"`
	SubjectID  queryNullableInt64 `query:"subjectId"`
	TopicID    queryNullableInt64 `query:"topicId"`
	RoadmapID  queryNullableInt64 `query:"roadmapId"`
	Level      string             `query:"level" validate:"omitempty,oneof=E M D e m d"`
}

func (r *ListResultsRequest) Validate() error { return validation.Struct(r) }

func (r *ListResultsRequest) filter() repository.ResultFilter {
	f := repository.ResultFilter{
		PageRequest: r.PageQuery.request(),
		UserID:      optionalString(r.UserID),
		PlatformID:  r.PlatformID.value,
		SubjectID:   r.SubjectID.value,
		TopicID:     r.TopicID.value,
		RoadmapID:   r.RoadmapID.value,
	}
	if r.Level != "" {
		level := quiz.Level(strings.ToUpper(r.Level))
		f.Level = &level
	}
	return f
}

type ResultHandler struct {
	Handler
}

func NewResultHandler(h Handler) *ResultHandler {
	return &ResultHandler{Handler: h}
}

func (h *ResultHandler) List(c echo.Context, req *ListResultsRequest) (*db.Page[quiz.Result], error) {
	return h.services.Results.List(c.Request().Context(), req.filter())
}

func (h *ResultHandler) Get(c echo.Context, req *IDRequest) (*quiz.Result, error) {
	return h.services.Results.Get(c.Request().Context(), req.ID)
}

func (h *ResultHandler) Create(c echo.Context, req *quiz.NewResult) (*quiz.Result, error) {
	return h.services.Results.Create(c.Request().Context(), req)
}

func (h *ResultHandler) Delete(c echo.Context, req *IDRequest) error {
	_, err := h.services.Results.Delete(c.Request().Context(), req.ID)
	return err
}
