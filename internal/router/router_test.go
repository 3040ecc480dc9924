package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ansiversa/quizdb/internal/config"
	"github.com/ansiversa/quizdb/internal/database"
	"github.com/ansiversa/quizdb/internal/errs"
	"github.com/ansiversa/quizdb/internal/handler"
	"github.com/ansiversa/quizdb/internal/repository"
	"github.com/ansiversa/quizdb/internal/router"
	"github.com/ansiversa/quizdb/internal/server"
	"github.com/ansiversa/quizdb/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	ctx := context.Background()
	log := zerolog.Nop()

	d, err := database.OpenSQLite(ctx, ":memory:", &log)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = d.Close() })
	if err := database.Migrate(ctx, &log, d); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			CORSAllowedOrigins: []string{"*"},
		},
		Database:      config.DatabaseConfig{Driver: config.DriverSQLite, URL: ":memory:"},
		Observability: config.DefaultObservabilityConfig(),
	}
	s := server.NewWithDatabase(cfg, &log, nil, d)

	services, err := service.NewService(s, repository.NewRepositories(s))
	if err != nil {
		t.Fatal(err)
	}
	return router.NewRouter(s, handler.NewHandlers(s, services))
}

func do(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d: %s", rec.Code, status, rec.Body.String())
	}
}

type platformBody struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Type        *string `json:"type"`
	IsActive    bool    `json:"isActive"`
}

type pageBody[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
}

func TestPlatformLifecycle(t *testing.T) {
	e := newTestRouter(t)

	rec := do(t, e, http.MethodPost, "/api/v1/platforms", `{"name":"  Go  ","type":"language"}`)
	expectStatus(t, rec, http.StatusCreated)
	created := decode[platformBody](t, rec)
	if created.ID != 1 || created.Name != "Go" || !created.IsActive {
		t.Fatalf("created = %+v", created)
	}

	rec = do(t, e, http.MethodGet, "/api/v1/platforms/1", "")
	expectStatus(t, rec, http.StatusOK)

	rec = do(t, e, http.MethodPatch, "/api/v1/platforms/1", `{"description":"Gophers","type":null}`)
	expectStatus(t, rec, http.StatusOK)
	updated := decode[platformBody](t, rec)
	if updated.Description != "Gophers" || updated.Type != nil || updated.Name != "Go" {
		t.Fatalf("updated = %+v", updated)
	}

	rec = do(t, e, http.MethodGet, "/api/v1/platforms?name=GO&sortColumn=NAME&sortDirection=DESC", "")
	expectStatus(t, rec, http.StatusOK)
	if page := decode[pageBody[platformBody]](t, rec); page.Total != 1 || len(page.Data) != 1 {
		t.Fatalf("search = %+v", page)
	}

	rec = do(t, e, http.MethodDelete, "/api/v1/platforms/1", "")
	expectStatus(t, rec, http.StatusNoContent)

	rec = do(t, e, http.MethodGet, "/api/v1/platforms/1", "")
	expectStatus(t, rec, http.StatusNotFound)
	if body := decode[errs.HTTPError](t, rec); body.Code != "PLATFORM_NOT_FOUND" {
		t.Fatalf("body = %+v", body)
	}
}

func TestRequestErrors(t *testing.T) {
	e := newTestRouter(t)
	expectStatus(t, do(t, e, http.MethodPost, "/api/v1/platforms", `{"name":"Go"}`), http.StatusCreated)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
		field  string
	}{
		{"missing name", http.MethodPost, "/api/v1/platforms", `{"description":"x"}`, http.StatusBadRequest, "BAD_REQUEST", "name"},
		{"blank name", http.MethodPost, "/api/v1/platforms", `{"name":"   "}`, http.StatusBadRequest, "BAD_REQUEST", "name"},
		{"duplicate name", http.MethodPost, "/api/v1/platforms", `{"name":"Go"}`, http.StatusBadRequest, "PLATFORM_ALREADY_EXISTS", ""},
		{"bad level", http.MethodPost, "/api/v1/questions", `{"platformId":1,"question":"q","answer":"a","level":"X"}`, http.StatusBadRequest, "BAD_REQUEST", "level"},
		{"zero id", http.MethodGet, "/api/v1/platforms/0", "", http.StatusBadRequest, "BAD_REQUEST", "ID"},
		{"malformed page", http.MethodGet, "/api/v1/platforms?page=abc", "", http.StatusBadRequest, "BAD_REQUEST", ""},
		{"missing subject", http.MethodGet, "/api/v1/subjects/42", "", http.StatusNotFound, "SUBJECT_NOT_FOUND", ""},
		{"unknown route", http.MethodGet, "/api/v1/nowhere", "", http.StatusNotFound, "NOT_FOUND", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, tt.method, tt.path, tt.body)
			expectStatus(t, rec, tt.status)

			body := decode[errs.HTTPError](t, rec)
			if body.Code != tt.code {
				t.Fatalf("code = %q, want %q", body.Code, tt.code)
			}
			if tt.field != "" && (len(body.Errors) == 0 || body.Errors[0].Field != tt.field) {
				t.Fatalf("errors = %+v", body.Errors)
			}
		})
	}
}

type questionRelationsBody struct {
	Question struct {
		ID      int64    `json:"id"`
		Level   string   `json:"level"`
		Options []string `json:"options"`
	} `json:"question"`
	PlatformName *string `json:"platformName"`
	SubjectName  *string `json:"subjectName"`
	TopicName    *string `json:"topicName"`
}

func TestQuestionEndpoints(t *testing.T) {
	e := newTestRouter(t)

	expectStatus(t, do(t, e, http.MethodPost, "/api/v1/platforms", `{"name":"Go"}`), http.StatusCreated)
	expectStatus(t, do(t, e, http.MethodPost, "/api/v1/subjects", `{"platformId":1,"name":"Basics"}`), http.StatusCreated)

	for _, text := range []string{"First?", "Second?"} {
		rec := do(t, e, http.MethodPost, "/api/v1/questions",
			`{"platformId":1,"subjectId":1,"question":"`+text+`","options":["a","b"],"answer":"a","level":"m"}`)
		expectStatus(t, rec, http.StatusCreated)
	}

	rec := do(t, e, http.MethodGet, "/api/v1/questions/1", "")
	expectStatus(t, rec, http.StatusOK)
	q := decode[questionRelationsBody](t, rec)
	if q.Question.Level != "M" || len(q.Question.Options) != 2 {
		t.Fatalf("question = %+v", q.Question)
	}
	if q.PlatformName == nil || *q.PlatformName != "Go" || q.SubjectName == nil || *q.SubjectName != "Basics" || q.TopicName != nil {
		t.Fatalf("names = %v %v %v", q.PlatformName, q.SubjectName, q.TopicName)
	}

	rec = do(t, e, http.MethodGet, "/api/v1/questions?level=m&subjectId=1", "")
	expectStatus(t, rec, http.StatusOK)
	if page := decode[pageBody[questionRelationsBody]](t, rec); page.Total != 2 {
		t.Fatalf("search total = %d", page.Total)
	}

	rec = do(t, e, http.MethodGet, "/api/v1/questions/random?limit=5&excludeIds=1", "")
	expectStatus(t, rec, http.StatusOK)
	page := decode[pageBody[questionRelationsBody]](t, rec)
	if page.Total != 1 || len(page.Data) != 1 || page.Data[0].Question.ID != 2 {
		t.Fatalf("random = %+v", page)
	}

	expectStatus(t, do(t, e, http.MethodDelete, "/api/v1/questions/2", ""), http.StatusNoContent)
	expectStatus(t, do(t, e, http.MethodDelete, "/api/v1/questions/2", ""), http.StatusNotFound)
}

func TestResultEndpoints(t *testing.T) {
	e := newTestRouter(t)
	expectStatus(t, do(t, e, http.MethodPost, "/api/v1/platforms", `{"name":"Go"}`), http.StatusCreated)

	rec := do(t, e, http.MethodPost, "/api/v1/results", `{"userId":"u-1","platformId":1,"level":"e","responses":{"1":"a"},"mark":3}`)
	expectStatus(t, rec, http.StatusCreated)

	rec = do(t, e, http.MethodGet, "/api/v1/results?userId=u-1&subjectId=null", "")
	expectStatus(t, rec, http.StatusOK)
	page := decode[pageBody[map[string]any]](t, rec)
	if page.Total != 1 || page.Data[0]["level"] != "E" {
		t.Fatalf("results = %+v", page)
	}

	rec = do(t, e, http.MethodGet, "/api/v1/results?subjectId=1", "")
	expectStatus(t, rec, http.StatusOK)
	if page := decode[pageBody[map[string]any]](t, rec); page.Total != 0 {
		t.Fatalf("subject filter total = %d", page.Total)
	}
}

func TestStatus(t *testing.T) {
	e := newTestRouter(t)

	rec := do(t, e, http.MethodGet, "/status", "")
	expectStatus(t, rec, http.StatusOK)
	if body := decode[map[string]any](t, rec); body["status"] != "healthy" {
		t.Fatalf("body = %v", body)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing request id header")
	}
}

func TestCatalogEndpoints(t *testing.T) {
	e := newTestRouter(t)

	setup := []struct{ path, body string }{
		{"/api/v1/platforms", `{"name":"Go","type":"language"}`},
		{"/api/v1/platforms", `{"name":"Rust","isActive":false}`},
		{"/api/v1/subjects", `{"platformId":1,"name":"Basics"}`},
		{"/api/v1/topics", `{"platformId":1,"subjectId":1,"name":"Loops"}`},
		{"/api/v1/roadmaps", `{"platformId":1,"subjectId":1,"topicId":1,"name":"Start"}`},
		{"/api/v1/questions", `{"platformId":1,"subjectId":1,"topicId":1,"roadmapId":1,"question":"a?","answer":"a","level":"E"}`},
		{"/api/v1/questions", `{"platformId":1,"question":"b?","answer":"b","level":"D"}`},
		{"/api/v1/questions", `{"platformId":2,"question":"c?","answer":"c","level":"M"}`},
		{"/api/v1/results", `{"userId":"u-1","platformId":1,"level":"E"}`},
	}
	for _, s := range setup {
		expectStatus(t, do(t, e, http.MethodPost, s.path, s.body), http.StatusCreated)
	}

	rec := do(t, e, http.MethodGet, "/api/v1/catalog", "")
	expectStatus(t, rec, http.StatusOK)
	snapshot := decode[map[string][]map[string]any](t, rec)
	if len(snapshot["platforms"]) != 2 || len(snapshot["subjects"]) != 1 || len(snapshot["roadmaps"]) != 1 {
		t.Fatalf("snapshot = %v", snapshot)
	}
	if _, ok := snapshot["questions"]; ok {
		t.Fatal("questions loaded without being requested")
	}

	rec = do(t, e, http.MethodGet, "/api/v1/catalog?questions=true", "")
	expectStatus(t, rec, http.StatusOK)
	if snapshot := decode[map[string][]map[string]any](t, rec); len(snapshot["questions"]) != 3 {
		t.Fatalf("questions = %v", snapshot["questions"])
	}

	lists := []struct {
		path string
		want int
	}{
		{"/api/v1/platforms/1/subjects", 1},
		{"/api/v1/platforms/1/topics", 1},
		{"/api/v1/platforms/1/roadmaps", 1},
		{"/api/v1/platforms/1/questions", 2},
		{"/api/v1/platforms/2/subjects", 0},
		{"/api/v1/subjects/1/topics", 1},
		{"/api/v1/subjects/1/roadmaps", 1},
		{"/api/v1/subjects/1/questions", 1},
		{"/api/v1/topics/1/roadmaps", 1},
		{"/api/v1/topics/1/questions", 1},
		{"/api/v1/roadmaps/1/questions", 1},
		{"/api/v1/platforms/1/questions/random?limit=1", 1},
		{"/api/v1/platforms/1/questions/random", 2},
		{"/api/v1/platforms/1/results", 1},
		{"/api/v1/users/u-1/results", 1},
		{"/api/v1/users/nobody/results", 0},
	}
	for _, tt := range lists {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(t, e, http.MethodGet, tt.path, "")
			expectStatus(t, rec, http.StatusOK)
			if got := decode[[]map[string]any](t, rec); len(got) != tt.want {
				t.Fatalf("got %d items, want %d", len(got), tt.want)
			}
		})
	}

	pages := []struct {
		path  string
		total int64
	}{
		{"/api/v1/catalog/platforms?type=language", 1},
		{"/api/v1/catalog/platforms?isActive=false", 1},
		{"/api/v1/catalog/subjects?platformId=1", 1},
		{"/api/v1/catalog/topics?subjectId=1", 1},
		{"/api/v1/catalog/roadmaps?topicId=1", 1},
		{"/api/v1/catalog/questions?platformId=1&roadmapId=null", 1},
		{"/api/v1/catalog/questions?level=d", 1},
		{"/api/v1/catalog/questions", 3},
	}
	for _, tt := range pages {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(t, e, http.MethodGet, tt.path, "")
			expectStatus(t, rec, http.StatusOK)
			if page := decode[pageBody[map[string]any]](t, rec); page.Total != tt.total {
				t.Fatalf("total = %d, want %d", page.Total, tt.total)
			}
		})
	}

	rec = do(t, e, http.MethodGet, "/api/v1/topics/9/questions", "")
	expectStatus(t, rec, http.StatusNotFound)
	if body := decode[errs.HTTPError](t, rec); body.Code != "TOPIC_NOT_FOUND" {
		t.Fatalf("body = %+v", body)
	}
	expectStatus(t, do(t, e, http.MethodGet, "/api/v1/catalog/platforms?isActive=maybe", ""), http.StatusBadRequest)
}
