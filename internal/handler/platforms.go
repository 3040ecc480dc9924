package handler

import (
	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/quiz"
	"github.com/ansiversa/quizdb/internal/repository"
	"github.com/ansiversa/quizdb/internal/validation"
	"github.com/labstack/echo/v4"
)

// IDRequest carries the :id path parameter.
type IDRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,min=1"`
}

func (r *IDRequest) Validate() error { return validation.Struct(r) }

type SearchPlatformsRequest struct {
	PageQuery
	SortQuery
	CountQuery
	Name        string `query:"name"`
	Description string `query:"description"`
	Type        string `query:"type"`
}

func (r *SearchPlatformsRequest) Validate() error { return validation.Struct(r) }

func (r *SearchPlatformsRequest) options() repository.PlatformSearch {
	return repository.PlatformSearch{
		PageRequest:   r.PageQuery.request(),
		Name:          optionalString(r.Name),
		Description:   optionalString(r.Description),
		Type:          optionalString(r.Type),
		MinQuestions:  r.MinQuestions.value,
		MaxQuestions:  r.MaxQuestions.value,
		Status:        r.status(),
		SortColumn:    sortKey(r.SortColumn, platformSortKeys...),
		SortDirection: r.direction(),
	}
}

type UpdatePlatformRequest struct {
	IDRequest
	quiz.UpdatePlatform
}

func (r *UpdatePlatformRequest) Validate() error { return validation.Struct(r) }

type PlatformHandler struct {
	Handler
}

func NewPlatformHandler(h Handler) *PlatformHandler {
	return &PlatformHandler{Handler: h}
}

func (h *PlatformHandler) Search(c echo.Context, req *SearchPlatformsRequest) (*db.Page[quiz.Platform], error) {
	return h.services.Platforms.Search(c.Request().Context(), req.options())
}

func (h *PlatformHandler) Get(c echo.Context, req *IDRequest) (*quiz.Platform, error) {
	return h.services.Platforms.Get(c.Request().Context(), req.ID)
}

func (h *PlatformHandler) Create(c echo.Context, req *quiz.NewPlatform) (*quiz.Platform, error) {
	return h.services.Platforms.Create(c.Request().Context(), req)
}

func (h *PlatformHandler) Update(c echo.Context, req *UpdatePlatformRequest) (*quiz.Platform, error) {
	return h.services.Platforms.Update(c.Request().Context(), req.ID, &req.UpdatePlatform)
}

func (h *PlatformHandler) Delete(c echo.Context, req *IDRequest) error {
	_, err := h.services.Platforms.Delete(c.Request().Context(), req.ID)
	return err
}
