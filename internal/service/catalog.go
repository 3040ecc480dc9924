package service

import (
	"context"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/quiz"
	"github.com/ansiversa/quizdb/internal/repository"
	"github.com/ansiversa/quizdb/internal/server"
)

// CatalogService serves the read side used by quiz takers: the full
// taxonomy, plain filtered pages without joins, and the records hanging off
// one parent.
type CatalogService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewCatalogService(s *server.Server, repos *repository.Repositories) *CatalogService {
	return &CatalogService{server: s, repos: repos}
}

// Catalog is the whole taxonomy in one document. Questions are only loaded
// on request.
type Catalog struct {
	Platforms []quiz.Platform `json:"platforms"`
	Subjects  []quiz.Subject  `json:"subjects"`
	Topics    []quiz.Topic    `json:"topics"`
	Roadmaps  []quiz.Roadmap  `json:"roadmaps"`
	Questions []quiz.Question `json:"questions,omitempty"`
}

func (s *CatalogService) Snapshot(ctx context.Context, withQuestions bool) (*Catalog, error) {
	var (
		c   Catalog
		err error
	)
	if c.Platforms, err = s.repos.Platforms.List(ctx); err != nil {
		return nil, err
	}
	if c.Subjects, err = s.repos.Subjects.List(ctx); err != nil {
		return nil, err
	}
	if c.Topics, err = s.repos.Topics.List(ctx); err != nil {
		return nil, err
	}
	if c.Roadmaps, err = s.repos.Roadmaps.List(ctx); err != nil {
		return nil, err
	}
	if withQuestions {
		if c.Questions, err = s.repos.Questions.List(ctx); err != nil {
			return nil, err
		}
	}

	loggerFor(ctx, s.server).Debug().
		Int("platforms", len(c.Platforms)).
		Int("questions", len(c.Questions)).
		Msg("catalog snapshot loaded")
	return &c, nil
}

func (s *CatalogService) Platforms(ctx context.Context, f repository.PlatformFilter) (*db.Page[quiz.Platform], error) {
	f.Type = searchTerm(f.Type)
	return s.repos.Platforms.ListPaginated(ctx, f)
}

func (s *CatalogService) Subjects(ctx context.Context, f repository.SubjectFilter) (*db.Page[quiz.Subject], error) {
	return s.repos.Subjects.ListPaginated(ctx, f)
}

func (s *CatalogService) Topics(ctx context.Context, f repository.TopicFilter) (*db.Page[quiz.Topic], error) {
	return s.repos.Topics.ListPaginated(ctx, f)
}

func (s *CatalogService) Roadmaps(ctx context.Context, f repository.RoadmapFilter) (*db.Page[quiz.Roadmap], error) {
	return s.repos.Roadmaps.ListPaginated(ctx, f)
}

func (s *CatalogService) Questions(ctx context.Context, f repository.QuestionFilter) (*db.Page[quiz.Question], error) {
	f.Level = upperLevelPtr(f.Level)
	return s.repos.Questions.ListPaginated(ctx, f)
}

// Parent names the record a child listing hangs off.
type Parent string

const (
	ParentPlatform Parent = "platform"
	ParentSubject  Parent = "subject"
	ParentTopic    Parent = "topic"
	ParentRoadmap  Parent = "roadmap"
)

// exists reports a missing parent as a 404 so an empty child list always
// means the parent has no children.
func (s *CatalogService) exists(ctx context.Context, parent Parent, id int64) error {
	var err error
	switch parent {
	case ParentPlatform:
		v, gerr := s.repos.Platforms.GetByID(ctx, id)
		_, err = found(string(parent), id, v, gerr)
	case ParentSubject:
		v, gerr := s.repos.Subjects.GetByID(ctx, id)
		_, err = found(string(parent), id, v, gerr)
	case ParentTopic:
		v, gerr := s.repos.Topics.GetByID(ctx, id)
		_, err = found(string(parent), id, v, gerr)
	case ParentRoadmap:
		v, gerr := s.repos.Roadmaps.GetByID(ctx, id)
		_, err = found(string(parent), id, v, gerr)
	}
	return err
}

func (s *CatalogService) SubjectsOf(ctx context.Context, platformID int64) ([]quiz.Subject, error) {
	if err := s.exists(ctx, ParentPlatform, platformID); err != nil {
		return nil, err
	}
	return s.repos.Subjects.ListByPlatform(ctx, platformID)
}

func (s *CatalogService) TopicsOf(ctx context.Context, parent Parent, id int64) ([]quiz.Topic, error) {
	if err := s.exists(ctx, parent, id); err != nil {
		return nil, err
	}
	if parent == ParentSubject {
		return s.repos.Topics.ListBySubject(ctx, id)
	}
	return s.repos.Topics.ListByPlatform(ctx, id)
}

func (s *CatalogService) RoadmapsOf(ctx context.Context, parent Parent, id int64) ([]quiz.Roadmap, error) {
	if err := s.exists(ctx, parent, id); err != nil {
		return nil, err
	}
	switch parent {
	case ParentSubject:
		return s.repos.Roadmaps.ListBySubject(ctx, id)
	case ParentTopic:
		return s.repos.Roadmaps.ListByTopic(ctx, id)
	}
	return s.repos.Roadmaps.ListByPlatform(ctx, id)
}

func (s *CatalogService) QuestionsOf(ctx context.Context, parent Parent, id int64) ([]quiz.Question, error) {
	if err := s.exists(ctx, parent, id); err != nil {
		return nil, err
	}
	switch parent {
	case ParentSubject:
		return s.repos.Questions.ListBySubject(ctx, id)
	case ParentTopic:
		return s.repos.Questions.ListByTopic(ctx, id)
	case ParentRoadmap:
		return s.repos.Questions.ListByRoadmap(ctx, id)
	}
	return s.repos.Questions.ListByPlatform(ctx, id)
}

// RandomOf draws a quiz from one platform. limit follows the same default
// and bounds as the admin random draw.
func (s *CatalogService) RandomOf(ctx context.Context, platformID int64, limit *int) ([]quiz.Question, error) {
	if err := s.exists(ctx, ParentPlatform, platformID); err != nil {
		return nil, err
	}
	return s.repos.Questions.GetRandomByPlatform(ctx, platformID, repository.RandomLimit(limit))
}

func (s *CatalogService) ResultsOfPlatform(ctx context.Context, platformID int64) ([]quiz.Result, error) {
	if err := s.exists(ctx, ParentPlatform, platformID); err != nil {
		return nil, err
	}
	return s.repos.Results.ListByPlatform(ctx, platformID)
}

// ResultsOfUser lists a user's attempts, newest first. Unknown users simply
// have none.
func (s *CatalogService) ResultsOfUser(ctx context.Context, userID string) ([]quiz.Result, error) {
	id, err := requireName("result", "userId", userID)
	if err != nil {
		return nil, err
	}
	return s.repos.Results.ListByUser(ctx, id)
}
