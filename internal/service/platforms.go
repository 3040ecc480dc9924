package service

import (
	"context"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/quiz"
	"github.com/ansiversa/quizdb/internal/repository"
	"github.com/ansiversa/quizdb/internal/server"
)

type PlatformService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewPlatformService(s *server.Server, repos *repository.Repositories) *PlatformService {
	return &PlatformService{server: s, repos: repos}
}

func (s *PlatformService) Search(ctx context.Context, o repository.PlatformSearch) (*db.Page[quiz.Platform], error) {
	o.Name = searchTerm(o.Name)
	o.Description = searchTerm(o.Description)
	o.Type = searchTerm(o.Type)
	o.MinQuestions, o.MaxQuestions = orderedBounds(o.MinQuestions, o.MaxQuestions)
	return s.repos.Admin.SearchPlatforms(ctx, o)
}

func (s *PlatformService) Get(ctx context.Context, id int64) (*quiz.Platform, error) {
	p, err := s.repos.Platforms.GetByID(ctx, id)
	return found("platform", id, p, err)
}

func (s *PlatformService) Create(ctx context.Context, in *quiz.NewPlatform) (*quiz.Platform, error) {
	name, err := requireName("platform", "name", in.Name)
	if err != nil {
		return nil, err
	}
	in.Name = name

	p, err := s.repos.Platforms.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	loggerFor(ctx, s.server).Info().
		Int64("platform_id", p.ID).
		Str("name", p.Name).
		Msg("platform created")
	return p, nil
}

func (s *PlatformService) Update(ctx context.Context, id int64, in *quiz.UpdatePlatform) (*quiz.Platform, error) {
	name, err := trimOptionalName("platform", "name", in.Name)
	if err != nil {
		return nil, err
	}
	in.Name = name

	p, err := s.repos.Platforms.Update(ctx, id, in)
	return found("platform", id, p, err)
}

func (s *PlatformService) Delete(ctx context.Context, id int64) (*quiz.Platform, error) {
	p, err := s.repos.Platforms.Delete(ctx, id)
	if p, err = found("platform", id, p, err); err != nil {
		return nil, err
	}

	loggerFor(ctx, s.server).Info().Int64("platform_id", id).Msg("platform deleted")
	return p, nil
}
