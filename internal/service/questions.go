package service

import (
	"context"
	"strings"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/quiz"
	"github.com/ansiversa/quizdb/internal/repository"
	"github.com/ansiversa/quizdb/internal/server"
	"github.com/rs/zerolog"
)

type QuestionService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewQuestionService(s *server.Server, repos *repository.Repositories) *QuestionService {
	return &QuestionService{server: s, repos: repos}
}

func normalizeQuestionFilters(f repository.QuestionFilters) repository.QuestionFilters {
	f.QuestionText = searchTerm(f.QuestionText)
	if f.Level != nil {
		level := strings.ToUpper(strings.TrimSpace(*f.Level))
		if level == "" {
			f.Level = nil
		} else {
			f.Level = &level
		}
	}
	return f
}

func (s *QuestionService) Search(ctx context.Context, o repository.QuestionSearch) (*db.Page[quiz.QuestionRelations], error) {
	o.QuestionFilters = normalizeQuestionFilters(o.QuestionFilters)
	return s.repos.Admin.SearchQuestions(ctx, o)
}

// Random draws a sample of at most repository.MaxRandomLimit questions.
func (s *QuestionService) Random(ctx context.Context, o repository.RandomQuestionOptions) (*db.Page[quiz.QuestionRelations], error) {
	limit := repository.RandomLimit(o.Limit)
	o.Limit = &limit
	o.Filters = normalizeQuestionFilters(o.Filters)
	o.ExcludeIDs = db.UniquePositive(o.ExcludeIDs)
	return s.repos.Admin.GetRandomQuestions(ctx, o)
}

func (s *QuestionService) Get(ctx context.Context, id int64) (*quiz.QuestionRelations, error) {
	v, err := s.repos.Admin.GetQuestionDetails(ctx, id)
	return found("question", id, v, err)
}

func (s *QuestionService) Create(ctx context.Context, in *quiz.NewQuestion) (*quiz.Question, error) {
	text, err := requireName("question", "question", in.Question)
	if err != nil {
		return nil, err
	}
	if err := requireParentID("question", "platformId", in.PlatformID); err != nil {
		return nil, err
	}
	if err := checkParents("question", false,
		parentRef{"subjectId", in.SubjectID},
		parentRef{"topicId", in.TopicID},
		parentRef{"roadmapId", in.RoadmapID},
	); err != nil {
		return nil, err
	}
	in.Question = text
	in.Level = upperLevel(in.Level)

	v, err := s.repos.Questions.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	logger := loggerFor(ctx, s.server)
	logger.Info().
		Int64("question_id", v.ID).
		Int64("platform_id", v.PlatformID).
		Msg("question created")
	warnUnresolvedAnswer(logger, v)
	return v, nil
}

// warnUnresolvedAnswer flags a question whose answer key designates none of
// its options. Such questions are stored anyway; older writers used
// free-text answers.
func warnUnresolvedAnswer(logger *zerolog.Logger, q *quiz.Question) {
	if len(q.Options) == 0 {
		return
	}
	if _, ok := quiz.ResolveAnswer(q.Options, q.Answer); !ok {
		logger.Warn().
			Int64("question_id", q.ID).
			Str("answer", q.AnswerText()).
			Int("options", len(q.Options)).
			Msg("question answer matches no option")
	}
}

func (s *QuestionService) Update(ctx context.Context, id int64, in *quiz.UpdateQuestion) (*quiz.Question, error) {
	text, err := trimOptionalName("question", "question", in.Question)
	if err != nil {
		return nil, err
	}
	if err := optionalParentID("question", "platformId", in.PlatformID); err != nil {
		return nil, err
	}
	in.Question = text
	in.Level = upperLevelPtr(in.Level)

	v, err := s.repos.Questions.Update(ctx, id, in)
	if err != nil || v == nil {
		return found("question", id, v, err)
	}
	if in.Answer != nil || in.Options != nil {
		warnUnresolvedAnswer(loggerFor(ctx, s.server), v)
	}
	return v, nil
}

func (s *QuestionService) Delete(ctx context.Context, id int64) (*quiz.Question, error) {
	v, err := s.repos.Questions.Delete(ctx, id)
	return found("question", id, v, err)
}
