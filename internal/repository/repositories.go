package repository

import (
	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/server"
)

// Repositories groups every repository over one shared driver.
type Repositories struct {
	Platforms *PlatformRepository
	Subjects  *SubjectRepository
	Topics    *TopicRepository
	Roadmaps  *RoadmapRepository
	Questions *QuestionRepository
	Results   *ResultRepository
	Admin     *AdminRepository
}

// NewRepositories builds the repositories on the server's database.
func NewRepositories(s *server.Server) *Repositories {
	return New(s.DB)
}

// New builds the repositories on any driver.
func New(d db.Driver) *Repositories {
	return &Repositories{
		Platforms: NewPlatformRepository(d),
		Subjects:  NewSubjectRepository(d),
		Topics:    NewTopicRepository(d),
		Roadmaps:  NewRoadmapRepository(d),
		Questions: NewQuestionRepository(d),
		Results:   NewResultRepository(d),
		Admin:     NewAdminRepository(d),
	}
}
