package service

import (
	"context"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/quiz"
	"github.com/ansiversa/quizdb/internal/repository"
	"github.com/ansiversa/quizdb/internal/server"
)

// Subjects, topics and roadmaps hang off a platform and share their rules:
// a trimmed non-blank name and parent ids of at least 1.

type SubjectService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewSubjectService(s *server.Server, repos *repository.Repositories) *SubjectService {
	return &SubjectService{server: s, repos: repos}
}

func (s *SubjectService) Search(ctx context.Context, o repository.SubjectSearch) (*db.Page[quiz.SubjectWithPlatform], error) {
	o.Name = searchTerm(o.Name)
	o.MinQuestions, o.MaxQuestions = orderedBounds(o.MinQuestions, o.MaxQuestions)
	return s.repos.Admin.SearchSubjects(ctx, o)
}

func (s *SubjectService) Get(ctx context.Context, id int64) (*quiz.SubjectWithPlatform, error) {
	v, err := s.repos.Admin.GetSubjectDetails(ctx, id)
	return found("subject", id, v, err)
}

func (s *SubjectService) Create(ctx context.Context, in *quiz.NewSubject) (*quiz.Subject, error) {
	name, err := requireName("subject", "name", in.Name)
	if err != nil {
		return nil, err
	}
	if err := requireParentID("subject", "platformId", in.PlatformID); err != nil {
		return nil, err
	}
	in.Name = name

	v, err := s.repos.Subjects.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	loggerFor(ctx, s.server).Info().Int64("subject_id", v.ID).Msg("subject created")
	return v, nil
}

func (s *SubjectService) Update(ctx context.Context, id int64, in *quiz.UpdateSubject) (*quiz.Subject, error) {
	name, err := trimOptionalName("subject", "name", in.Name)
	if err != nil {
		return nil, err
	}
	if err := optionalParentID("subject", "platformId", in.PlatformID); err != nil {
		return nil, err
	}
	in.Name = name

	v, err := s.repos.Subjects.Update(ctx, id, in)
	return found("subject", id, v, err)
}

func (s *SubjectService) Delete(ctx context.Context, id int64) (*quiz.Subject, error) {
	v, err := s.repos.Subjects.Delete(ctx, id)
	return found("subject", id, v, err)
}

type TopicService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewTopicService(s *server.Server, repos *repository.Repositories) *TopicService {
	return &TopicService{server: s, repos: repos}
}

func (s *TopicService) Search(ctx context.Context, o repository.TopicSearch) (*db.Page[quiz.TopicWithRelations], error) {
	o.Name = searchTerm(o.Name)
	o.MinQuestions, o.MaxQuestions = orderedBounds(o.MinQuestions, o.MaxQuestions)
	return s.repos.Admin.SearchTopics(ctx, o)
}

func (s *TopicService) Get(ctx context.Context, id int64) (*quiz.TopicWithRelations, error) {
	v, err := s.repos.Admin.GetTopicDetails(ctx, id)
	return found("topic", id, v, err)
}

func (s *TopicService) Create(ctx context.Context, in *quiz.NewTopic) (*quiz.Topic, error) {
	name, err := requireName("topic", "name", in.Name)
	if err != nil {
		return nil, err
	}
	if err := checkParents("topic", true,
		parentRef{"platformId", in.PlatformID},
		parentRef{"subjectId", in.SubjectID},
	); err != nil {
		return nil, err
	}
	in.Name = name

	v, err := s.repos.Topics.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	loggerFor(ctx, s.server).Info().Int64("topic_id", v.ID).Msg("topic created")
	return v, nil
}

func (s *TopicService) Update(ctx context.Context, id int64, in *quiz.UpdateTopic) (*quiz.Topic, error) {
	name, err := trimOptionalName("topic", "name", in.Name)
	if err != nil {
		return nil, err
	}
	if err := checkParents("topic", false,
		parentRef{"platformId", in.PlatformID},
		parentRef{"subjectId", in.SubjectID},
	); err != nil {
		return nil, err
	}
	in.Name = name

	v, err := s.repos.Topics.Update(ctx, id, in)
	return found("topic", id, v, err)
}

func (s *TopicService) Delete(ctx context.Context, id int64) (*quiz.Topic, error) {
	v, err := s.repos.Topics.Delete(ctx, id)
	return found("topic", id, v, err)
}

type RoadmapService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewRoadmapService(s *server.Server, repos *repository.Repositories) *RoadmapService {
	return &RoadmapService{server: s, repos: repos}
}

func (s *RoadmapService) Search(ctx context.Context, o repository.RoadmapSearch) (*db.Page[quiz.RoadmapWithRelations], error) {
	o.Name = searchTerm(o.Name)
	o.MinQuestions, o.MaxQuestions = orderedBounds(o.MinQuestions, o.MaxQuestions)
	return s.repos.Admin.SearchRoadmaps(ctx, o)
}

func (s *RoadmapService) Get(ctx context.Context, id int64) (*quiz.RoadmapWithRelations, error) {
	v, err := s.repos.Admin.GetRoadmapDetails(ctx, id)
	return found("roadmap", id, v, err)
}

func (s *RoadmapService) Create(ctx context.Context, in *quiz.NewRoadmap) (*quiz.Roadmap, error) {
	name, err := requireName("roadmap", "name", in.Name)
	if err != nil {
		return nil, err
	}
	if err := checkParents("roadmap", true,
		parentRef{"platformId", in.PlatformID},
		parentRef{"subjectId", in.SubjectID},
		parentRef{"topicId", in.TopicID},
	); err != nil {
		return nil, err
	}
	in.Name = name

	v, err := s.repos.Roadmaps.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	loggerFor(ctx, s.server).Info().Int64("roadmap_id", v.ID).Msg("roadmap created")
	return v, nil
}

func (s *RoadmapService) Update(ctx context.Context, id int64, in *quiz.UpdateRoadmap) (*quiz.Roadmap, error) {
	name, err := trimOptionalName("roadmap", "name", in.Name)
	if err != nil {
		return nil, err
	}
	if err := checkParents("roadmap", false,
		parentRef{"platformId", in.PlatformID},
		parentRef{"subjectId", in.SubjectID},
		parentRef{"topicId", in.TopicID},
	); err != nil {
		return nil, err
	}
	in.Name = name

	v, err := s.repos.Roadmaps.Update(ctx, id, in)
	return found("roadmap", id, v, err)
}

func (s *RoadmapService) Delete(ctx context.Context, id int64) (*quiz.Roadmap, error) {
	v, err := s.repos.Roadmaps.Delete(ctx, id)
	return found("roadmap", id, v, err)
}
