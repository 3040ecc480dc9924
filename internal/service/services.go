package service

import (
	"github.com/ansiversa/quizdb/internal/repository"
	"github.com/ansiversa/quizdb/internal/server"
)

type Services struct {
	Platforms *PlatformService
	Subjects  *SubjectService
	Topics    *TopicService
	Roadmaps  *RoadmapService
	Questions *QuestionService
	Results   *ResultService
	Catalog   *CatalogService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Platforms: NewPlatformService(s, repos),
		Subjects:  NewSubjectService(s, repos),
		Topics:    NewTopicService(s, repos),
		Roadmaps:  NewRoadmapService(s, repos),
		Questions: NewQuestionService(s, repos),
		Results:   NewResultService(s, repos),
		Catalog:   NewCatalogService(s, repos),
	}, nil
}
