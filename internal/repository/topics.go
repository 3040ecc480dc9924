package repository

import (
	"context"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/quiz"
	"github.com/ansiversa/quizdb/internal/validation"
)

const topicColumns = "id, platformId, subjectId, name, isActive, qCount"

type TopicRepository struct {
	db db.Driver
}

func NewTopicRepository(d db.Driver) *TopicRepository {
	return &TopicRepository{db: d}
}

type TopicFilter struct {
	db.PageRequest
	PlatformID *int64
	SubjectID  *int64
}

func (r *TopicRepository) List(ctx context.Context) ([]quiz.Topic, error) {
	return queryAll(ctx, r.db, quiz.ParseTopic,
		"SELECT "+topicColumns+" FROM Topic ORDER BY name ASC")
}

func (r *TopicRepository) ListByPlatform(ctx context.Context, platformID int64) ([]quiz.Topic, error) {
	return queryAll(ctx, r.db, quiz.ParseTopic,
		"SELECT "+topicColumns+" FROM Topic WHERE platformId = ? ORDER BY name ASC", platformID)
}

func (r *TopicRepository) ListBySubject(ctx context.Context, subjectID int64) ([]quiz.Topic, error) {
	return queryAll(ctx, r.db, quiz.ParseTopic,
		"SELECT "+topicColumns+" FROM Topic WHERE subjectId = ? ORDER BY name ASC", subjectID)
}

func (r *TopicRepository) ListPaginated(ctx context.Context, f TopicFilter) (*db.Page[quiz.Topic], error) {
	where, params, err := db.NewWhere().
		EqInt("platformId", f.PlatformID).
		EqInt("subjectId", f.SubjectID).
		SQL()
	if err != nil {
		return nil, err
	}

	return db.Paginate(ctx, r.db, db.PageQuery[quiz.Topic]{
		CountQuery: "SELECT COUNT(*) as total FROM Topic" + where,
		DataQuery:  "SELECT " + topicColumns + " FROM Topic" + where + " ORDER BY name ASC, id ASC LIMIT ? OFFSET ?",
		Params:     params,
		Request:    f.PageRequest,
		MapRow:     quiz.ParseTopic,
	})
}

func (r *TopicRepository) GetByID(ctx context.Context, id int64) (*quiz.Topic, error) {
	return queryOne(ctx, r.db, quiz.ParseTopic,
		"SELECT "+topicColumns+" FROM Topic WHERE id = ? LIMIT 1", id)
}

func (r *TopicRepository) Create(ctx context.Context, in *quiz.NewTopic) (*quiz.Topic, error) {
	if err := validation.Validate("topic", in); err != nil {
		return nil, err
	}

	t, err := db.InsertWithNextID(ctx, r.db, "Topic", in.ID, func(id int64) (quiz.Topic, error) {
		return insertOne(ctx, r.db, "topic", quiz.ParseTopic,
			"INSERT INTO Topic (id, platformId, subjectId, name, isActive, qCount) VALUES (?, ?, ?, ?, ?, ?) RETURNING "+topicColumns,
			id, *in.PlatformID, *in.SubjectID, in.Name, db.BoolParam(quiz.ActiveOrDefault(in.IsActive)), in.QCount,
		)
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TopicRepository) Update(ctx context.Context, id int64, in *quiz.UpdateTopic) (*quiz.Topic, error) {
	if err := validation.Validate("topic", in); err != nil {
		return nil, err
	}

	var c changeSet
	setPtr(&c, "platformId", in.PlatformID)
	setPtr(&c, "subjectId", in.SubjectID)
	setPtr(&c, "name", in.Name)
	setBool(&c, "isActive", in.IsActive)
	setPtr(&c, "qCount", in.QCount)

	return update(ctx, r.db, &c, "Topic", topicColumns, id, quiz.ParseTopic, r.GetByID)
}

func (r *TopicRepository) Delete(ctx context.Context, id int64) (*quiz.Topic, error) {
	return remove(ctx, r.db, "Topic", topicColumns, id, quiz.ParseTopic)
}
