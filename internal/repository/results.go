package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/quiz"
	"github.com/ansiversa/quizdb/internal/validation"
)

const (
	resultColumns = "id, userId, platformId, subjectId, topicId, roadmapId, level, responses, mark, createdAt"
	resultSelect  = "SELECT " + resultColumns + " FROM Result"
	resultOrder   = " ORDER BY createdAt DESC, id DESC"
)

type ResultRepository struct {
	db db.Driver
}

func NewResultRepository(d db.Driver) *ResultRepository {
	return &ResultRepository{db: d}
}

type ResultFilter struct {
	db.PageRequest
	UserID     *string
	PlatformID *int64
	SubjectID  db.Nullable[int64]
	TopicID    db.Nullable[int64]
	RoadmapID  db.Nullable[int64]
	Level      *quiz.Level
}

// List returns every result, newest first.
func (r *ResultRepository) List(ctx context.Context) ([]quiz.Result, error) {
	return queryAll(ctx, r.db, quiz.ParseResult, resultSelect+resultOrder)
}

func (r *ResultRepository) ListByUser(ctx context.Context, userID string) ([]quiz.Result, error) {
	return queryAll(ctx, r.db, quiz.ParseResult, resultSelect+" WHERE userId = ?"+resultOrder, userID)
}

func (r *ResultRepository) ListByPlatform(ctx context.Context, platformID int64) ([]quiz.Result, error) {
	return queryAll(ctx, r.db, quiz.ParseResult, resultSelect+" WHERE platformId = ?"+resultOrder, platformID)
}

func (r *ResultRepository) ListPaginated(ctx context.Context, f ResultFilter) (*db.Page[quiz.Result], error) {
	w := db.NewWhere().
		Eq("userId", f.UserID).
		EqInt("platformId", f.PlatformID).
		EqNullable("subjectId", f.SubjectID).
		EqNullable("topicId", f.TopicID).
		EqNullable("roadmapId", f.RoadmapID)
	if f.Level != nil {
		w.Raw("level = ?", string(*f.Level))
	}
	where, params, err := w.SQL()
	if err != nil {
		return nil, err
	}

	return db.Paginate(ctx, r.db, db.PageQuery[quiz.Result]{
		CountQuery: "SELECT COUNT(*) as total FROM Result" + where,
		DataQuery:  resultSelect + where + resultOrder + " LIMIT ? OFFSET ?",
		Params:     params,
		Request:    f.PageRequest,
		MapRow:     quiz.ParseResult,
	})
}

func (r *ResultRepository) GetByID(ctx context.Context, id int64) (*quiz.Result, error) {
	return queryOne(ctx, r.db, quiz.ParseResult, resultSelect+" WHERE id = ? LIMIT 1", id)
}

func (r *ResultRepository) Create(ctx context.Context, in *quiz.NewResult) (*quiz.Result, error) {
	if err := validation.Validate("result", in); err != nil {
		return nil, err
	}

	responses, err := encodeResponses(in.Responses)
	if err != nil {
		return nil, err
	}

	res, err := insertOne(ctx, r.db, "result", quiz.ParseResult,
		"INSERT INTO Result (userId, platformId, subjectId, topicId, roadmapId, level, responses, mark) VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING "+resultColumns,
		in.UserID,
		*in.PlatformID,
		int64Param(in.SubjectID),
		int64Param(in.TopicID),
		int64Param(in.RoadmapID),
		string(in.Level),
		responses,
		in.MarkValue(),
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResultRepository) Update(ctx context.Context, id int64, in *quiz.UpdateResult) (*quiz.Result, error) {
	if err := validation.Validate("result", in); err != nil {
		return nil, err
	}

	var c changeSet
	setPtr(&c, "userId", in.UserID)
	setPtr(&c, "platformId", in.PlatformID)
	setNullable(&c, "subjectId", in.SubjectID)
	setNullable(&c, "topicId", in.TopicID)
	setNullable(&c, "roadmapId", in.RoadmapID)
	if in.Level != nil {
		c.set("level", string(*in.Level))
	}
	if in.Responses.IsSet() {
		responses, err := encodeResponses(in.Responses.Param())
		if err != nil {
			return nil, err
		}
		c.set("responses", responses)
	}
	setPtr(&c, "mark", in.Mark)

	return update(ctx, r.db, &c, "Result", resultColumns, id, quiz.ParseResult, r.GetByID)
}

func (r *ResultRepository) Delete(ctx context.Context, id int64) (*quiz.Result, error) {
	return remove(ctx, r.db, "Result", resultColumns, id, quiz.ParseResult)
}

// Responses are stored as JSON text. Absent and null both store NULL.
func encodeResponses(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode responses: %w", err)
	}
	return string(b), nil
}
