package repository

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/db/dbtest"
)

func ptr[T any](v T) *T { return &v }

func checkSortKeys[K ~string](t *testing.T, columns map[K]string, keys ...K) {
	t.Helper()
	if len(columns) != len(keys) {
		t.Errorf("%d columns for %d keys", len(columns), len(keys))
	}
	for _, k := range keys {
		if columns[k] == "" {
			t.Errorf("sort key %q has no column", k)
		}
	}
}

func TestSortKeysResolve(t *testing.T) {
	checkSortKeys(t, platformSortColumns, PlatformSortID, PlatformSortName, PlatformSortDescription,
		PlatformSortType, PlatformSortQCount, PlatformSortStatus)
	checkSortKeys(t, subjectSortColumns, SubjectSortID, SubjectSortName, SubjectSortPlatformID,
		SubjectSortPlatformName, SubjectSortQCount, SubjectSortStatus)
	checkSortKeys(t, topicSortColumns, TopicSortID, TopicSortName, TopicSortPlatformID, TopicSortSubjectID,
		TopicSortPlatformName, TopicSortSubjectName, TopicSortQCount, TopicSortStatus)
	checkSortKeys(t, roadmapSortColumns, RoadmapSortID, RoadmapSortName, RoadmapSortPlatformID, RoadmapSortSubjectID,
		RoadmapSortTopicID, RoadmapSortPlatformName, RoadmapSortSubjectName, RoadmapSortTopicName,
		RoadmapSortQCount, RoadmapSortStatus)
	checkSortKeys(t, questionSortColumns, QuestionSortID, QuestionSortText, QuestionSortPlatformID,
		QuestionSortSubjectID, QuestionSortTopicID, QuestionSortRoadmapID, QuestionSortPlatformName,
		QuestionSortSubjectName, QuestionSortTopicName, QuestionSortRoadmapName, QuestionSortLevel,
		QuestionSortStatus)

	if platformSortColumns[PlatformSortStatus] != "p.isActive" || questionSortColumns[QuestionSortText] != "q.q" {
		t.Fatal("status and text keys must map to their stored columns")
	}
}

func TestSearchPlatforms(t *testing.T) {
	drv := dbtest.New(
		dbtest.Rows(map[string]any{"total": int64(25)}),
		dbtest.Rows(map[string]any{"id": int64(11), "name": "Go", "isActive": int64(1)}),
	)
	repo := NewAdminRepository(drv)

	page, err := repo.SearchPlatforms(context.Background(), PlatformSearch{
		PageRequest:   db.NewPageRequest(2, 10),
		Name:          ptr("  go "),
		MinQuestions:  ptr(int64(5)),
		Status:        db.StatusActive,
		SortColumn:    PlatformSortQCount,
		SortDirection: db.SortDesc,
	})
	if err != nil {
		t.Fatal(err)
	}

	where := " WHERE LOWER(p.name) LIKE LOWER(?) AND p.qCount >= ? AND p.isActive = 1"
	count := drv.Call(0)
	if count.Query != "SELECT COUNT(*) as total FROM Platform p"+where {
		t.Fatalf("count query = %q", count.Query)
	}
	if !reflect.DeepEqual(count.Params, []any{"%go%", int64(5)}) {
		t.Fatalf("count params = %#v", count.Params)
	}

	data := drv.Call(1)
	if !strings.HasSuffix(data.Query, where+" ORDER BY p.qCount DESC, p.id LIMIT ? OFFSET ?") {
		t.Fatalf("data query = %q", data.Query)
	}
	if !reflect.DeepEqual(data.Params, []any{"%go%", int64(5), int64(10), int64(10)}) {
		t.Fatalf("data params = %#v", data.Params)
	}

	if page.Total != 25 || page.Page != 2 || page.TotalPages != 3 || len(page.Data) != 1 {
		t.Fatalf("page = %+v", page)
	}
}

func TestSearchPlatformsTypeMatchesMissingType(t *testing.T) {
	drv := dbtest.New()
	repo := NewAdminRepository(drv)

	if _, err := repo.SearchPlatforms(context.Background(), PlatformSearch{Type: ptr("quiz")}); err != nil {
		t.Fatal(err)
	}
	want := "SELECT COUNT(*) as total FROM Platform p WHERE LOWER(COALESCE(p.type, '')) LIKE LOWER(?)"
	if got := drv.Call(0).Query; got != want {
		t.Fatalf("got %q", got)
	}
	if len(drv.Calls()) != 2 {
		t.Fatalf("expected count and data queries, got %d", len(drv.Calls()))
	}
}

func TestSearchSubjectsUnknownSortFallsBackToID(t *testing.T) {
	drv := dbtest.New(dbtest.Rows(map[string]any{"total": int64(1)}))
	repo := NewAdminRepository(drv)

	_, err := repo.SearchSubjects(context.Background(), SubjectSearch{
		PlatformID: ptr(int64(3)),
		SortColumn: SubjectSort("bogus; DROP TABLE Subject"),
	})
	if err != nil {
		t.Fatal(err)
	}
	data := drv.Call(1).Query
	if !strings.Contains(data, " WHERE s.platformId = ? ORDER BY s.id ASC LIMIT ? OFFSET ?") {
		t.Fatalf("data query = %q", data)
	}
	if strings.Contains(data, "bogus") {
		t.Fatal("sort key leaked into SQL")
	}
}

func TestSubjectDetailsNames(t *testing.T) {
	drv := dbtest.New(dbtest.Rows(map[string]any{
		"id": int64(4), "platformId": int64(1), "name": "Algebra", "isActive": int64(1), "qCount": int64(0),
		"platformName": nil,
	}))
	repo := NewAdminRepository(drv)

	got, err := repo.GetSubjectDetails(context.Background(), 4)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Subject.Name != "Algebra" || got.PlatformName != nil {
		t.Fatalf("got %+v", got)
	}
	if q := drv.Call(0).Query; !strings.HasSuffix(q, " WHERE s.id = ? LIMIT 1") {
		t.Fatalf("query = %q", q)
	}

	drv.Push(dbtest.Rows())
	missing, err := repo.GetSubjectDetails(context.Background(), 99)
	if err != nil || missing != nil {
		t.Fatalf("missing subject: %v, %v", missing, err)
	}
}

func TestSearchQuestionsFilters(t *testing.T) {
	drv := dbtest.New()
	repo := NewAdminRepository(drv)

	_, err := repo.SearchQuestions(context.Background(), QuestionSearch{
		QuestionFilters: QuestionFilters{
			QuestionText: ptr("loop"),
			TopicID:      ptr(int64(7)),
			Level:        ptr(" m "),
			Status:       db.StatusInactive,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	call := drv.Call(0)
	wantWhere := " WHERE LOWER(q.q) LIKE LOWER(?) AND q.topicId = ? AND UPPER(q.l) = ? AND q.isActive = 0"
	if !strings.HasSuffix(call.Query, wantWhere) {
		t.Fatalf("query = %q", call.Query)
	}
	if !reflect.DeepEqual(call.Params, []any{"%loop%", int64(7), "M"}) {
		t.Fatalf("params = %#v", call.Params)
	}
}

func TestSearchQuestionsIgnoresUnknownLevel(t *testing.T) {
	drv := dbtest.New()
	repo := NewAdminRepository(drv)

	if _, err := repo.SearchQuestions(context.Background(), QuestionSearch{
		QuestionFilters: QuestionFilters{Level: ptr("hard")},
	}); err != nil {
		t.Fatal(err)
	}
	if q := drv.Call(0).Query; strings.Contains(q, "WHERE") {
		t.Fatalf("query = %q", q)
	}
}

func TestGetRandomQuestions(t *testing.T) {
	tests := []struct {
		name      string
		limit     *int
		wantLimit int64
	}{
		{"default", nil, 10},
		{"too large", ptr(500), 50},
		{"zero", ptr(0), 1},
		{"in range", ptr(7), 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drv := dbtest.New(dbtest.Rows(map[string]any{"total": int64(100)}))
			repo := NewAdminRepository(drv)

			page, err := repo.GetRandomQuestions(context.Background(), RandomQuestionOptions{
				Limit:      tt.limit,
				Filters:    QuestionFilters{PlatformID: ptr(int64(2))},
				ExcludeIDs: []int64{4, 4, -1, 9},
			})
			if err != nil {
				t.Fatal(err)
			}

			data := drv.Call(1)
			if !strings.HasSuffix(data.Query, " WHERE q.platformId = ? AND q.id NOT IN (?,?) ORDER BY RANDOM() LIMIT ? OFFSET ?") {
				t.Fatalf("data query = %q", data.Query)
			}
			want := []any{int64(2), int64(4), int64(9), tt.wantLimit, int64(0)}
			if !reflect.DeepEqual(data.Params, want) {
				t.Fatalf("params = %#v, want %#v", data.Params, want)
			}
			if page.Page != 1 || int64(page.PageSize) != tt.wantLimit {
				t.Fatalf("page %d size %d", page.Page, page.PageSize)
			}
		})
	}
}
