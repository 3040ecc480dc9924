package repository

import (
	"context"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/quiz"
	"github.com/ansiversa/quizdb/internal/validation"
)

const roadmapColumns = "id, platformId, subjectId, topicId, name, isActive, qCount"

type RoadmapRepository struct {
	db db.Driver
}

func NewRoadmapRepository(d db.Driver) *RoadmapRepository {
	return &RoadmapRepository{db: d}
}

type RoadmapFilter struct {
	db.PageRequest
	PlatformID *int64
	SubjectID  *int64
	TopicID    *int64
}

func (r *RoadmapRepository) List(ctx context.Context) ([]quiz.Roadmap, error) {
	return queryAll(ctx, r.db, quiz.ParseRoadmap,
		"SELECT "+roadmapColumns+" FROM Roadmap ORDER BY name ASC")
}

func (r *RoadmapRepository) ListByPlatform(ctx context.Context, platformID int64) ([]quiz.Roadmap, error) {
	return r.listBy(ctx, "platformId", platformID)
}

func (r *RoadmapRepository) ListBySubject(ctx context.Context, subjectID int64) ([]quiz.Roadmap, error) {
	return r.listBy(ctx, "subjectId", subjectID)
}

func (r *RoadmapRepository) ListByTopic(ctx context.Context, topicID int64) ([]quiz.Roadmap, error) {
	return r.listBy(ctx, "topicId", topicID)
}

// listBy filters on one foreign key column; column is always a constant.
func (r *RoadmapRepository) listBy(ctx context.Context, column string, id int64) ([]quiz.Roadmap, error) {
	return queryAll(ctx, r.db, quiz.ParseRoadmap,
		"SELECT "+roadmapColumns+" FROM Roadmap WHERE "+column+" = ? ORDER BY name ASC", id)
}

func (r *RoadmapRepository) ListPaginated(ctx context.Context, f RoadmapFilter) (*db.Page[quiz.Roadmap], error) {
	where, params, err := db.NewWhere().
		EqInt("platformId", f.PlatformID).
		EqInt("subjectId", f.SubjectID).
		EqInt("topicId", f.TopicID).
		SQL()
	if err != nil {
		return nil, err
	}

	return db.Paginate(ctx, r.db, db.PageQuery[quiz.Roadmap]{
		CountQuery: "SELECT COUNT(*) as total FROM Roadmap" + where,
		DataQuery:  "SELECT " + roadmapColumns + " FROM Roadmap" + where + " ORDER BY name ASC, id ASC LIMIT ? OFFSET ?",
		Params:     params,
		Request:    f.PageRequest,
		MapRow:     quiz.ParseRoadmap,
	})
}

func (r *RoadmapRepository) GetByID(ctx context.Context, id int64) (*quiz.Roadmap, error) {
	return queryOne(ctx, r.db, quiz.ParseRoadmap,
		"SELECT "+roadmapColumns+" FROM Roadmap WHERE id = ? LIMIT 1", id)
}

func (r *RoadmapRepository) Create(ctx context.Context, in *quiz.NewRoadmap) (*quiz.Roadmap, error) {
	if err := validation.Validate("roadmap", in); err != nil {
		return nil, err
	}

	rm, err := db.InsertWithNextID(ctx, r.db, "Roadmap", in.ID, func(id int64) (quiz.Roadmap, error) {
		return insertOne(ctx, r.db, "roadmap", quiz.ParseRoadmap,
			"INSERT INTO Roadmap (id, platformId, subjectId, topicId, name, isActive, qCount) VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING "+roadmapColumns,
			id, *in.PlatformID, *in.SubjectID, *in.TopicID, in.Name, db.BoolParam(quiz.ActiveOrDefault(in.IsActive)), in.QCount,
		)
	})
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

func (r *RoadmapRepository) Update(ctx context.Context, id int64, in *quiz.UpdateRoadmap) (*quiz.Roadmap, error) {
	if err := validation.Validate("roadmap", in); err != nil {
		return nil, err
	}

	var c changeSet
	setPtr(&c, "platformId", in.PlatformID)
	setPtr(&c, "subjectId", in.SubjectID)
	setPtr(&c, "topicId", in.TopicID)
	setPtr(&c, "name", in.Name)
	setBool(&c, "isActive", in.IsActive)
	setPtr(&c, "qCount", in.QCount)

	return update(ctx, r.db, &c, "Roadmap", roadmapColumns, id, quiz.ParseRoadmap, r.GetByID)
}

func (r *RoadmapRepository) Delete(ctx context.Context, id int64) (*quiz.Roadmap, error) {
	return remove(ctx, r.db, "Roadmap", roadmapColumns, id, quiz.ParseRoadmap)
}
