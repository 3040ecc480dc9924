package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/ansiversa/quizdb/internal/db/dbtest"
	"github.com/ansiversa/quizdb/internal/errs"
	"github.com/ansiversa/quizdb/internal/quiz"
	"github.com/ansiversa/quizdb/internal/repository"
	"github.com/ansiversa/quizdb/internal/server"
	"github.com/rs/zerolog"
)

func ptr[T any](v T) *T { return &v }

func newTestServices(t *testing.T, responses ...dbtest.Response) (*Services, *dbtest.Driver) {
	t.Helper()
	drv := dbtest.New(responses...)
	log := zerolog.Nop()
	services, err := NewService(&server.Server{Logger: &log}, repository.New(drv))
	if err != nil {
		t.Fatal(err)
	}
	return services, drv
}

func TestCreateRejectsBlankNames(t *testing.T) {
	services, drv := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		field string
		run   func() error
	}{
		{"platform", "name", func() error {
			_, err := services.Platforms.Create(ctx, &quiz.NewPlatform{Name: "   "})
			return err
		}},
		{"subject", "name", func() error {
			_, err := services.Subjects.Create(ctx, &quiz.NewSubject{PlatformID: ptr(int64(1)), Name: "\t"})
			return err
		}},
		{"question", "question", func() error {
			_, err := services.Questions.Create(ctx, &quiz.NewQuestion{PlatformID: ptr(int64(1)), Question: " ", Answer: "a", Level: "E"})
			return err
		}},
		{"result", "userId", func() error {
			_, err := services.Results.Create(ctx, &quiz.NewResult{UserID: "", PlatformID: ptr(int64(1)), Level: "E"})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verr *errs.ValidationError
			if err := tt.run(); !errors.As(err, &verr) {
				t.Fatalf("err = %v", err)
			}
			if verr.Entity != tt.name || verr.Errors[0].Field != tt.field {
				t.Fatalf("err = %+v", verr)
			}
		})
	}
	if n := len(drv.Calls()); n != 0 {
		t.Fatalf("%d store calls for rejected input", n)
	}
}

func TestCreateRejectsNonPositiveParents(t *testing.T) {
	services, drv := newTestServices(t)
	ctx := context.Background()

	_, err := services.Topics.Create(ctx, &quiz.NewTopic{PlatformID: ptr(int64(1)), SubjectID: ptr(int64(0)), Name: "Loops"})
	var verr *errs.ValidationError
	if !errors.As(err, &verr) || verr.Errors[0].Field != "subjectId" {
		t.Fatalf("topic err = %v", err)
	}

	_, err = services.Roadmaps.Create(ctx, &quiz.NewRoadmap{PlatformID: ptr(int64(0)), SubjectID: ptr(int64(0)), TopicID: ptr(int64(1)), Name: "Intro"})
	if !errors.As(err, &verr) || verr.Errors[0].Field != "platformId" {
		t.Fatalf("roadmap err = %v", err)
	}

	_, err = services.Questions.Create(ctx, &quiz.NewQuestion{PlatformID: ptr(int64(1)), TopicID: ptr(int64(-2)), Question: "q", Answer: "a", Level: "E"})
	if !errors.As(err, &verr) || verr.Errors[0].Field != "topicId" {
		t.Fatalf("question err = %v", err)
	}

	if n := len(drv.Calls()); n != 0 {
		t.Fatalf("%d store calls for rejected input", n)
	}
}

func TestCreateTrimsAndUppercases(t *testing.T) {
	services, drv := newTestServices(t, dbtest.Rows(map[string]any{
		"id": int64(4), "platformId": int64(1), "q": "Why?", "o": "[]", "a": "1", "l": "D", "isActive": int64(1),
	}))

	in := &quiz.NewQuestion{PlatformID: ptr(int64(1)), Question: "  Why?  ", Answer: "1", Level: " d "}
	if _, err := services.Questions.Create(context.Background(), in); err != nil {
		t.Fatal(err)
	}

	params := drv.Call(0).Params
	if params[4] != "Why?" || params[8] != "D" {
		t.Fatalf("params = %#v", params)
	}
}

func TestSearchSwapsReversedBounds(t *testing.T) {
	services, drv := newTestServices(t, dbtest.Rows(map[string]any{"total": int64(0)}))

	_, err := services.Platforms.Search(context.Background(), repository.PlatformSearch{
		Name:         ptr("  go "),
		Description:  ptr("   "),
		MinQuestions: ptr(int64(10)),
		MaxQuestions: ptr(int64(2)),
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []any{"%go%", int64(2), int64(10)}
	if got := drv.Call(0).Params; !reflect.DeepEqual(got, want) {
		t.Fatalf("params = %#v, want %#v", got, want)
	}
}

func TestRandomClampsLimitAndDedupesExclusions(t *testing.T) {
	services, drv := newTestServices(t,
		dbtest.Rows(map[string]any{"total": int64(200)}),
		dbtest.Rows(),
	)

	_, err := services.Questions.Random(context.Background(), repository.RandomQuestionOptions{
		Limit:      ptr(500),
		ExcludeIDs: []int64{3, 3, -1, 2},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []any{int64(3), int64(2), int64(repository.MaxRandomLimit), int64(0)}
	if got := drv.Call(1).Params; !reflect.DeepEqual(got, want) {
		t.Fatalf("params = %#v, want %#v", got, want)
	}
}

func TestMissingRecordsAreNotFound(t *testing.T) {
	services, _ := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		code string
		run  func() error
	}{
		{"PLATFORM_NOT_FOUND", func() error { _, err := services.Platforms.Get(ctx, 9); return err }},
		{"SUBJECT_NOT_FOUND", func() error { _, err := services.Subjects.Delete(ctx, 9); return err }},
		{"QUESTION_NOT_FOUND", func() error { _, err := services.Questions.Get(ctx, 9); return err }},
		{"RESULT_NOT_FOUND", func() error { _, err := services.Results.Get(ctx, 9); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			var herr *errs.HTTPError
			if err := tt.run(); !errors.As(err, &herr) {
				t.Fatalf("err = %v", err)
			}
			if herr.Status != http.StatusNotFound || herr.Code != tt.code {
				t.Fatalf("err = %+v", herr)
			}
		})
	}
}

func TestWarnUnresolvedAnswer(t *testing.T) {
	tests := []struct {
		name string
		q    quiz.Question
		warn bool
	}{
		{"letter key", quiz.Question{Options: []string{"red", "blue"}, Answer: "b"}, false},
		{"option text", quiz.Question{Options: []string{"red", "blue"}, Answer: "blue"}, false},
		{"no match", quiz.Question{Options: []string{"red", "blue"}, Answer: "green"}, true},
		{"no options", quiz.Question{Answer: "anything"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := zerolog.New(&buf)
			warnUnresolvedAnswer(&log, &tt.q)
			if got := strings.Contains(buf.String(), "question answer matches no option"); got != tt.warn {
				t.Fatalf("warned = %v, log = %s", got, buf.String())
			}
		})
	}
}

func TestCatalogChildListsRequireParent(t *testing.T) {
	services, drv := newTestServices(t)

	_, err := services.Catalog.QuestionsOf(context.Background(), ParentRoadmap, 7)
	var herr *errs.HTTPError
	if !errors.As(err, &herr) || herr.Code != "ROADMAP_NOT_FOUND" {
		t.Fatalf("err = %v", err)
	}
	if n := len(drv.Calls()); n != 1 {
		t.Fatalf("%d store calls, want only the parent lookup", n)
	}
}

func TestCatalogRandomOfClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit *int
		want  int64
	}{
		{"default", nil, repository.DefaultRandomLimit},
		{"too many", ptr(500), repository.MaxRandomLimit},
		{"zero", ptr(0), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services, drv := newTestServices(t, dbtest.Rows(map[string]any{"id": int64(3), "name": "Go"}))

			if _, err := services.Catalog.RandomOf(context.Background(), 3, tt.limit); err != nil {
				t.Fatal(err)
			}
			want := []any{int64(3), tt.want}
			if got := drv.Call(1).Params; !reflect.DeepEqual(got, want) {
				t.Fatalf("params = %#v, want %#v", got, want)
			}
		})
	}
}

func TestCatalogResultsOfUserRejectsBlank(t *testing.T) {
	services, drv := newTestServices(t)

	var verr *errs.ValidationError
	if _, err := services.Catalog.ResultsOfUser(context.Background(), "  "); !errors.As(err, &verr) {
		t.Fatalf("err = %v", err)
	}
	if len(drv.Calls()) != 0 {
		t.Fatal("blank user must not reach the store")
	}
}
