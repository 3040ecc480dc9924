package service

import (
	"context"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/quiz"
	"github.com/ansiversa/quizdb/internal/repository"
	"github.com/ansiversa/quizdb/internal/server"
)

type ResultService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewResultService(s *server.Server, repos *repository.Repositories) *ResultService {
	return &ResultService{server: s, repos: repos}
}

func (s *ResultService) List(ctx context.Context, f repository.ResultFilter) (*db.Page[quiz.Result], error) {
	f.UserID = searchTerm(f.UserID)
	f.Level = upperLevelPtr(f.Level)
	return s.repos.Results.ListPaginated(ctx, f)
}

func (s *ResultService) Get(ctx context.Context, id int64) (*quiz.Result, error) {
	v, err := s.repos.Results.GetByID(ctx, id)
	return found("result", id, v, err)
}

func (s *ResultService) Create(ctx context.Context, in *quiz.NewResult) (*quiz.Result, error) {
	userID, err := requireName("result", "userId", in.UserID)
	if err != nil {
		return nil, err
	}
	if err := requireParentID("result", "platformId", in.PlatformID); err != nil {
		return nil, err
	}
	in.UserID = userID
	in.Level = upperLevel(in.Level)

	v, err := s.repos.Results.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	loggerFor(ctx, s.server).Info().
		Int64("result_id", v.ID).
		Str("user_id", v.UserID).
		Msg("result recorded")
	return v, nil
}

func (s *ResultService) Delete(ctx context.Context, id int64) (*quiz.Result, error) {
	v, err := s.repos.Results.Delete(ctx, id)
	return found("result", id, v, err)
}
