package handler

import (
	"github.com/ansiversa/quizdb/internal/server"
	"github.com/ansiversa/quizdb/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health    *HealthHandler
	Platforms *PlatformHandler
	Subjects  *SubjectHandler
	Topics    *TopicHandler
	Roadmaps  *RoadmapHandler
	Questions *QuestionHandler
	Results   *ResultHandler
	Catalog   *CatalogHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	h := NewHandler(s, services)
	return &Handlers{
		Health:    NewHealthHandler(h),
		Platforms: NewPlatformHandler(h),
		Subjects:  NewSubjectHandler(h),
		Topics:    NewTopicHandler(h),
		Roadmaps:  NewRoadmapHandler(h),
		Questions: NewQuestionHandler(h),
		Results:   NewResultHandler(h),
		Catalog:   NewCatalogHandler(h),
	}
}
