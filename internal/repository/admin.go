package repository

import (
	"context"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/quiz"
)

// Random question draws are capped so one request cannot pull the bank.
const (
	DefaultRandomLimit = 10
	MaxRandomLimit     = 50
)

// AdminRepository serves the admin search views. Every view joins the
// ancestors of a record so lists can show their names; a missing ancestor
// yields a nil name.
type AdminRepository struct {
	db db.Driver
}

func NewAdminRepository(d db.Driver) *AdminRepository {
	return &AdminRepository{db: d}
}

// Search options. Nil fields and StatusAll apply no filter; an unknown sort
// column sorts by id.

type PlatformSearch struct {
	db.PageRequest
	Name          *string
	Description   *string
	Type          *string
	MinQuestions  *int64
	MaxQuestions  *int64
	Status        db.StatusFilter
	SortColumn    PlatformSort
	SortDirection db.SortDirection
}

type SubjectSearch struct {
	db.PageRequest
	Name          *string
	PlatformID    *int64
	MinQuestions  *int64
	MaxQuestions  *int64
	Status        db.StatusFilter
	SortColumn    SubjectSort
	SortDirection db.SortDirection
}

type TopicSearch struct {
	db.PageRequest
	Name          *string
	PlatformID    *int64
	SubjectID     *int64
	MinQuestions  *int64
	MaxQuestions  *int64
	Status        db.StatusFilter
	SortColumn    TopicSort
	SortDirection db.SortDirection
}

type RoadmapSearch struct {
	db.PageRequest
	Name          *string
	PlatformID    *int64
	SubjectID     *int64
	TopicID       *int64
	MinQuestions  *int64
	MaxQuestions  *int64
	Status        db.StatusFilter
	SortColumn    RoadmapSort
	SortDirection db.SortDirection
}

// QuestionFilters is shared by SearchQuestions and GetRandomQuestions.
type QuestionFilters struct {
	QuestionText *string
	PlatformID   *int64
	SubjectID    *int64
	TopicID      *int64
	RoadmapID    *int64
	Level        *string
	Status       db.StatusFilter
}

type QuestionSearch struct {
	db.PageRequest
	QuestionFilters
	SortColumn    QuestionSort
	SortDirection db.SortDirection
}

type RandomQuestionOptions struct {
	Limit      *int
	Filters    QuestionFilters
	ExcludeIDs []int64
}

const (
	subjectFrom = " FROM Subject s LEFT JOIN Platform p ON s.platformId = p.id"
	topicFrom   = " FROM Topic t" +
		" LEFT JOIN Subject s ON t.subjectId = s.id" +
		" LEFT JOIN Platform p ON t.platformId = p.id"
	roadmapFrom = " FROM Roadmap r" +
		" LEFT JOIN Platform p ON r.platformId = p.id" +
		" LEFT JOIN Subject s ON r.subjectId = s.id" +
		" LEFT JOIN Topic t ON r.topicId = t.id"
	questionFrom = " FROM Question q" +
		" LEFT JOIN Platform p ON q.platformId = p.id" +
		" LEFT JOIN Subject s ON q.subjectId = s.id" +
		" LEFT JOIN Topic t ON q.topicId = t.id" +
		" LEFT JOIN Roadmap r ON q.roadmapId = r.id"

	adminPlatformSelect = "SELECT p.id, p.name, p.description, p.icon, p.type, p.qCount, p.isActive FROM Platform p"
	adminSubjectSelect  = "SELECT s.id, s.platformId, s.name, s.isActive, s.qCount, p.name as platformName" + subjectFrom
	adminTopicSelect    = "SELECT t.id, t.platformId, t.subjectId, t.name, t.isActive, t.qCount," +
		" p.name as platformName, s.name as subjectName" + topicFrom
	adminRoadmapSelect = "SELECT r.id, r.platformId, r.subjectId, r.topicId, r.name, r.isActive, r.qCount," +
		" p.name as platformName, s.name as subjectName, t.name as topicName" + roadmapFrom
	adminQuestionSelect = "SELECT q.id, q.platformId, q.subjectId, q.topicId, q.roadmapId, q.q, q.o, q.a, q.e, q.l, q.isActive," +
		" p.name as platformName, s.name as subjectName, t.name as topicName, r.name as roadmapName" + questionFrom
)

func (r *AdminRepository) SearchPlatforms(ctx context.Context, o PlatformSearch) (*db.Page[quiz.Platform], error) {
	where, params, err := db.NewWhere().
		Like("p.name", o.Name).
		Like("p.description", o.Description).
		Like("COALESCE(p.type, '')", o.Type).
		Min("p.qCount", o.MinQuestions).
		Max("p.qCount", o.MaxQuestions).
		Status("p.isActive", o.Status).
		SQL()
	if err != nil {
		return nil, err
	}
	order := db.OrderBy(platformSortColumns, o.SortColumn, o.SortDirection, "p.id")

	return db.Paginate(ctx, r.db, db.PageQuery[quiz.Platform]{
		CountQuery: "SELECT COUNT(*) as total FROM Platform p" + where,
		DataQuery:  adminPlatformSelect + where + order + " LIMIT ? OFFSET ?",
		Params:     params,
		Request:    o.PageRequest,
		MapRow:     quiz.ParsePlatform,
	})
}

func (r *AdminRepository) SearchSubjects(ctx context.Context, o SubjectSearch) (*db.Page[quiz.SubjectWithPlatform], error) {
	where, params, err := db.NewWhere().
		Like("s.name", o.Name).
		EqInt("s.platformId", o.PlatformID).
		Min("s.qCount", o.MinQuestions).
		Max("s.qCount", o.MaxQuestions).
		Status("s.isActive", o.Status).
		SQL()
	if err != nil {
		return nil, err
	}
	order := db.OrderBy(subjectSortColumns, o.SortColumn, o.SortDirection, "s.id")

	return db.Paginate(ctx, r.db, db.PageQuery[quiz.SubjectWithPlatform]{
		CountQuery: "SELECT COUNT(*) as total" + subjectFrom + where,
		DataQuery:  adminSubjectSelect + where + order + " LIMIT ? OFFSET ?",
		Params:     params,
		Request:    o.PageRequest,
		MapRow:     quiz.ParseSubjectWithPlatform,
	})
}

func (r *AdminRepository) GetSubjectDetails(ctx context.Context, id int64) (*quiz.SubjectWithPlatform, error) {
	return queryOne(ctx, r.db, quiz.ParseSubjectWithPlatform, adminSubjectSelect+" WHERE s.id = ? LIMIT 1", id)
}

func (r *AdminRepository) SearchTopics(ctx context.Context, o TopicSearch) (*db.Page[quiz.TopicWithRelations], error) {
	where, params, err := db.NewWhere().
		Like("t.name", o.Name).
		EqInt("t.platformId", o.PlatformID).
		EqInt("t.subjectId", o.SubjectID).
		Min("t.qCount", o.MinQuestions).
		Max("t.qCount", o.MaxQuestions).
		Status("t.isActive", o.Status).
		SQL()
	if err != nil {
		return nil, err
	}
	order := db.OrderBy(topicSortColumns, o.SortColumn, o.SortDirection, "t.id")

	return db.Paginate(ctx, r.db, db.PageQuery[quiz.TopicWithRelations]{
		CountQuery: "SELECT COUNT(*) as total" + topicFrom + where,
		DataQuery:  adminTopicSelect + where + order + " LIMIT ? OFFSET ?",
		Params:     params,
		Request:    o.PageRequest,
		MapRow:     quiz.ParseTopicWithRelations,
	})
}

func (r *AdminRepository) GetTopicDetails(ctx context.Context, id int64) (*quiz.TopicWithRelations, error) {
	return queryOne(ctx, r.db, quiz.ParseTopicWithRelations, adminTopicSelect+" WHERE t.id = ? LIMIT 1", id)
}

func (r *AdminRepository) SearchRoadmaps(ctx context.Context, o RoadmapSearch) (*db.Page[quiz.RoadmapWithRelations], error) {
	where, params, err := db.NewWhere().
		Like("r.name", o.Name).
		EqInt("r.platformId", o.PlatformID).
		EqInt("r.subjectId", o.SubjectID).
		EqInt("r.topicId", o.TopicID).
		Min("r.qCount", o.MinQuestions).
		Max("r.qCount", o.MaxQuestions).
		Status("r.isActive", o.Status).
		SQL()
	if err != nil {
		return nil, err
	}
	order := db.OrderBy(roadmapSortColumns, o.SortColumn, o.SortDirection, "r.id")

	return db.Paginate(ctx, r.db, db.PageQuery[quiz.RoadmapWithRelations]{
		CountQuery: "SELECT COUNT(*) as total" + roadmapFrom + where,
		DataQuery:  adminRoadmapSelect + where + order + " LIMIT ? OFFSET ?",
		Params:     params,
		Request:    o.PageRequest,
		MapRow:     quiz.ParseRoadmapWithRelations,
	})
}

func (r *AdminRepository) GetRoadmapDetails(ctx context.Context, id int64) (*quiz.RoadmapWithRelations, error) {
	return queryOne(ctx, r.db, quiz.ParseRoadmapWithRelations, adminRoadmapSelect+" WHERE r.id = ? LIMIT 1", id)
}

// questionWhere renders the shared question filters. Unknown levels are
// ignored rather than matching nothing.
func questionWhere(f QuestionFilters, excludeIDs []int64) (string, []any, error) {
	w := db.NewWhere().
		Like("q.q", f.QuestionText).
		EqInt("q.platformId", f.PlatformID).
		EqInt("q.subjectId", f.SubjectID).
		EqInt("q.topicId", f.TopicID).
		EqInt("q.roadmapId", f.RoadmapID)
	if f.Level != nil {
		if level, ok := quiz.NormalizeLevel(*f.Level); ok {
			w.Raw("UPPER(q.l) = ?", string(level))
		}
	}
	return w.Status("q.isActive", f.Status).
		ExcludeIDs("q.id", excludeIDs).
		SQL()
}

func (r *AdminRepository) SearchQuestions(ctx context.Context, o QuestionSearch) (*db.Page[quiz.QuestionRelations], error) {
	where, params, err := questionWhere(o.QuestionFilters, nil)
	if err != nil {
		return nil, err
	}
	order := db.OrderBy(questionSortColumns, o.SortColumn, o.SortDirection, "q.id")

	return db.Paginate(ctx, r.db, db.PageQuery[quiz.QuestionRelations]{
		CountQuery: "SELECT COUNT(*) as total" + questionFrom + where,
		DataQuery:  adminQuestionSelect + where + order + " LIMIT ? OFFSET ?",
		Params:     params,
		Request:    o.PageRequest,
		MapRow:     quiz.ParseQuestionRelations,
	})
}

func (r *AdminRepository) GetQuestionDetails(ctx context.Context, id int64) (*quiz.QuestionRelations, error) {
	return queryOne(ctx, r.db, quiz.ParseQuestionRelations, adminQuestionSelect+" WHERE q.id = ? LIMIT 1", id)
}

// GetRandomQuestions draws a random sample served as page 1. The limit
// defaults to DefaultRandomLimit and is clamped to [1, MaxRandomLimit].
func (r *AdminRepository) GetRandomQuestions(ctx context.Context, o RandomQuestionOptions) (*db.Page[quiz.QuestionRelations], error) {
	where, params, err := questionWhere(o.Filters, o.ExcludeIDs)
	if err != nil {
		return nil, err
	}

	return db.Paginate(ctx, r.db, db.PageQuery[quiz.QuestionRelations]{
		CountQuery: "SELECT COUNT(*) as total" + questionFrom + where,
		DataQuery:  adminQuestionSelect + where + " ORDER BY RANDOM() LIMIT ? OFFSET ?",
		Params:     params,
		Request:    db.NewPageRequest(1, RandomLimit(o.Limit)),
		MapRow:     quiz.ParseQuestionRelations,
	})
}

// RandomLimit resolves a requested sample size.
func RandomLimit(limit *int) int {
	if limit == nil {
		return DefaultRandomLimit
	}
	return min(max(*limit, 1), MaxRandomLimit)
}
