package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/quiz"
	"github.com/ansiversa/quizdb/internal/validation"
)

const questionColumns = "id, platformId, subjectId, topicId, roadmapId, q, o, a, e, l, isActive"

type QuestionRepository struct {
	db db.Driver
}

func NewQuestionRepository(d db.Driver) *QuestionRepository {
	return &QuestionRepository{db: d}
}

// QuestionFilter narrows ListPaginated. The optional foreign keys accept an
// explicit null to select questions not attached at that level.
type QuestionFilter struct {
	db.PageRequest
	PlatformID *int64
	SubjectID  db.Nullable[int64]
	TopicID    db.Nullable[int64]
	RoadmapID  db.Nullable[int64]
	Level      *quiz.Level
	IsActive   *bool
}

func (r *QuestionRepository) List(ctx context.Context) ([]quiz.Question, error) {
	return queryAll(ctx, r.db, quiz.ParseQuestion,
		"SELECT "+questionColumns+" FROM Question ORDER BY id ASC")
}

func (r *QuestionRepository) ListByPlatform(ctx context.Context, platformID int64) ([]quiz.Question, error) {
	return r.listBy(ctx, "platformId", platformID)
}

func (r *QuestionRepository) ListBySubject(ctx context.Context, subjectID int64) ([]quiz.Question, error) {
	return r.listBy(ctx, "subjectId", subjectID)
}

func (r *QuestionRepository) ListByTopic(ctx context.Context, topicID int64) ([]quiz.Question, error) {
	return r.listBy(ctx, "topicId", topicID)
}

func (r *QuestionRepository) ListByRoadmap(ctx context.Context, roadmapID int64) ([]quiz.Question, error) {
	return r.listBy(ctx, "roadmapId", roadmapID)
}

func (r *QuestionRepository) listBy(ctx context.Context, column string, id int64) ([]quiz.Question, error) {
	return queryAll(ctx, r.db, quiz.ParseQuestion,
		"SELECT "+questionColumns+" FROM Question WHERE "+column+" = ? ORDER BY id ASC", id)
}

func (r *QuestionRepository) ListPaginated(ctx context.Context, f QuestionFilter) (*db.Page[quiz.Question], error) {
	w := db.NewWhere().
		EqInt("platformId", f.PlatformID).
		EqNullable("subjectId", f.SubjectID).
		EqNullable("topicId", f.TopicID).
		EqNullable("roadmapId", f.RoadmapID).
		EqBool("isActive", f.IsActive)
	if f.Level != nil {
		w.Raw("UPPER(l) = ?", string(*f.Level))
	}
	where, params, err := w.SQL()
	if err != nil {
		return nil, err
	}

	return db.Paginate(ctx, r.db, db.PageQuery[quiz.Question]{
		CountQuery: "SELECT COUNT(*) as total FROM Question" + where,
		DataQuery:  "SELECT " + questionColumns + " FROM Question" + where + " ORDER BY id ASC LIMIT ? OFFSET ?",
		Params:     params,
		Request:    f.PageRequest,
		MapRow:     quiz.ParseQuestion,
	})
}

func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*quiz.Question, error) {
	return queryOne(ctx, r.db, quiz.ParseQuestion,
		"SELECT "+questionColumns+" FROM Question WHERE id = ? LIMIT 1", id)
}

// GetRandomByPlatform draws up to limit questions of a platform in random
// order. A limit below 1 draws one.
func (r *QuestionRepository) GetRandomByPlatform(ctx context.Context, platformID int64, limit int) ([]quiz.Question, error) {
	return queryAll(ctx, r.db, quiz.ParseQuestion,
		"SELECT "+questionColumns+" FROM Question WHERE platformId = ? ORDER BY RANDOM() LIMIT ?",
		platformID, int64(max(limit, 1)))
}

func (r *QuestionRepository) Create(ctx context.Context, in *quiz.NewQuestion) (*quiz.Question, error) {
	if err := validation.Validate("question", in); err != nil {
		return nil, err
	}

	options, err := encodeOptions(in.OptionList())
	if err != nil {
		return nil, err
	}

	q, err := insertOne(ctx, r.db, "question", quiz.ParseQuestion,
		"INSERT INTO Question (platformId, subjectId, topicId, roadmapId, q, o, a, e, l, isActive) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING "+questionColumns,
		*in.PlatformID,
		int64Param(in.SubjectID),
		int64Param(in.TopicID),
		int64Param(in.RoadmapID),
		in.Question,
		options,
		in.Answer,
		stringParam(in.Explanation),
		string(in.Level),
		db.BoolParam(quiz.ActiveOrDefault(in.IsActive)),
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) Update(ctx context.Context, id int64, in *quiz.UpdateQuestion) (*quiz.Question, error) {
	if err := validation.Validate("question", in); err != nil {
		return nil, err
	}

	var c changeSet
	setPtr(&c, "platformId", in.PlatformID)
	setNullable(&c, "subjectId", in.SubjectID)
	setNullable(&c, "topicId", in.TopicID)
	setNullable(&c, "roadmapId", in.RoadmapID)
	setPtr(&c, "q", in.Question)
	if in.Options != nil {
		options, err := encodeOptions(in.Options)
		if err != nil {
			return nil, err
		}
		c.set("o", options)
	}
	setPtr(&c, "a", in.Answer)
	setNullable(&c, "e", in.Explanation)
	if in.Level != nil {
		c.set("l", string(*in.Level))
	}
	setBool(&c, "isActive", in.IsActive)

	return update(ctx, r.db, &c, "Question", questionColumns, id, quiz.ParseQuestion, r.GetByID)
}

func (r *QuestionRepository) Delete(ctx context.Context, id int64) (*quiz.Question, error) {
	return remove(ctx, r.db, "Question", questionColumns, id, quiz.ParseQuestion)
}

// Options are stored as a JSON array of strings.
func encodeOptions(options []string) (string, error) {
	b, err := json.Marshal(options)
	if err != nil {
		return "", fmt.Errorf("encode options: %w", err)
	}
	return string(b), nil
}
