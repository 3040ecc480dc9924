package repository

import (
	"context"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/quiz"
	"github.com/ansiversa/quizdb/internal/validation"
)

const platformColumns = "id, name, description, icon, type, qCount, isActive"

type PlatformRepository struct {
	db db.Driver
}

func NewPlatformRepository(d db.Driver) *PlatformRepository {
	return &PlatformRepository{db: d}
}

// PlatformFilter narrows ListPaginated.
type PlatformFilter struct {
	db.PageRequest
	Type     *string
	IsActive *bool
}

func (r *PlatformRepository) List(ctx context.Context) ([]quiz.Platform, error) {
	return queryAll(ctx, r.db, quiz.ParsePlatform,
		"SELECT "+platformColumns+" FROM Platform ORDER BY name ASC")
}

func (r *PlatformRepository) ListPaginated(ctx context.Context, f PlatformFilter) (*db.Page[quiz.Platform], error) {
	where, params, err := db.NewWhere().
		Eq("type", f.Type).
		EqBool("isActive", f.IsActive).
		SQL()
	if err != nil {
		return nil, err
	}

	return db.Paginate(ctx, r.db, db.PageQuery[quiz.Platform]{
		CountQuery: "SELECT COUNT(*) as total FROM Platform" + where,
		DataQuery:  "SELECT " + platformColumns + " FROM Platform" + where + " ORDER BY name ASC, id ASC LIMIT ? OFFSET ?",
		Params:     params,
		Request:    f.PageRequest,
		MapRow:     quiz.ParsePlatform,
	})
}

func (r *PlatformRepository) GetByID(ctx context.Context, id int64) (*quiz.Platform, error) {
	return queryOne(ctx, r.db, quiz.ParsePlatform,
		"SELECT "+platformColumns+" FROM Platform WHERE id = ? LIMIT 1", id)
}

func (r *PlatformRepository) Create(ctx context.Context, in *quiz.NewPlatform) (*quiz.Platform, error) {
	if err := validation.Validate("platform", in); err != nil {
		return nil, err
	}

	p, err := insertOne(ctx, r.db, "platform", quiz.ParsePlatform,
		"INSERT INTO Platform (name, description, icon, type, qCount, isActive) VALUES (?, ?, ?, ?, ?, ?) RETURNING "+platformColumns,
		in.Name, in.Description, in.Icon, stringParam(in.Type), in.QCount, db.BoolParam(quiz.ActiveOrDefault(in.IsActive)),
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlatformRepository) Update(ctx context.Context, id int64, in *quiz.UpdatePlatform) (*quiz.Platform, error) {
	if err := validation.Validate("platform", in); err != nil {
		return nil, err
	}

	var c changeSet
	setPtr(&c, "name", in.Name)
	setPtr(&c, "description", in.Description)
	setPtr(&c, "icon", in.Icon)
	setNullable(&c, "type", in.Type)
	setPtr(&c, "qCount", in.QCount)
	setBool(&c, "isActive", in.IsActive)

	return update(ctx, r.db, &c, "Platform", platformColumns, id, quiz.ParsePlatform, r.GetByID)
}

func (r *PlatformRepository) Delete(ctx context.Context, id int64) (*quiz.Platform, error) {
	return remove(ctx, r.db, "Platform", platformColumns, id, quiz.ParsePlatform)
}
