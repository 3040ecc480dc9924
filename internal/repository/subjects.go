package repository

import (
	"context"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/quiz"
	"github.com/ansiversa/quizdb/internal/validation"
)

const subjectColumns = "id, platformId, name, isActive, qCount"

type SubjectRepository struct {
	db db.Driver
}

func NewSubjectRepository(d db.Driver) *SubjectRepository {
	return &SubjectRepository{db: d}
}

type SubjectFilter struct {
	db.PageRequest
	PlatformID *int64
}

func (r *SubjectRepository) List(ctx context.Context) ([]quiz.Subject, error) {
	return queryAll(ctx, r.db, quiz.ParseSubject,
		"SELECT "+subjectColumns+" FROM Subject ORDER BY name ASC")
}

func (r *SubjectRepository) ListByPlatform(ctx context.Context, platformID int64) ([]quiz.Subject, error) {
	return queryAll(ctx, r.db, quiz.ParseSubject,
		"SELECT "+subjectColumns+" FROM Subject WHERE platformId = ? ORDER BY name ASC", platformID)
}

func (r *SubjectRepository) ListPaginated(ctx context.Context, f SubjectFilter) (*db.Page[quiz.Subject], error) {
	where, params, err := db.NewWhere().EqInt("platformId", f.PlatformID).SQL()
	if err != nil {
		return nil, err
	}

	return db.Paginate(ctx, r.db, db.PageQuery[quiz.Subject]{
		CountQuery: "SELECT COUNT(*) as total FROM Subject" + where,
		DataQuery:  "SELECT " + subjectColumns + " FROM Subject" + where + " ORDER BY name ASC, id ASC LIMIT ? OFFSET ?",
		Params:     params,
		Request:    f.PageRequest,
		MapRow:     quiz.ParseSubject,
	})
}

func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*quiz.Subject, error) {
	return queryOne(ctx, r.db, quiz.ParseSubject,
		"SELECT "+subjectColumns+" FROM Subject WHERE id = ? LIMIT 1", id)
}

// Create inserts a subject. Without an explicit id the next free id is
// allocated.
func (r *SubjectRepository) Create(ctx context.Context, in *quiz.NewSubject) (*quiz.Subject, error) {
	if err := validation.Validate("subject", in); err != nil {
		return nil, err
	}

	s, err := db.InsertWithNextID(ctx, r.db, "Subject", in.ID, func(id int64) (quiz.Subject, error) {
		return insertOne(ctx, r.db, "subject", quiz.ParseSubject,
			"INSERT INTO Subject (id, platformId, name, isActive, qCount) VALUES (?, ?, ?, ?, ?) RETURNING "+subjectColumns,
			id, *in.PlatformID, in.Name, db.BoolParam(quiz.ActiveOrDefault(in.IsActive)), in.QCount,
		)
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubjectRepository) Update(ctx context.Context, id int64, in *quiz.UpdateSubject) (*quiz.Subject, error) {
	if err := validation.Validate("subject", in); err != nil {
		return nil, err
	}

	var c changeSet
	setPtr(&c, "platformId", in.PlatformID)
	setPtr(&c, "name", in.Name)
	setBool(&c, "isActive", in.IsActive)
	setPtr(&c, "qCount", in.QCount)

	return update(ctx, r.db, &c, "Subject", subjectColumns, id, quiz.ParseSubject, r.GetByID)
}

func (r *SubjectRepository) Delete(ctx context.Context, id int64) (*quiz.Subject, error) {
	return remove(ctx, r.db, "Subject", subjectColumns, id, quiz.ParseSubject)
}
