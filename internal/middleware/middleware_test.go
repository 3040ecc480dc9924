package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ansiversa/quizdb/internal/errs"
	"github.com/ansiversa/quizdb/internal/server"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestRequestID(t *testing.T) {
	incoming := uuid.NewString()

	tests := []struct {
		name   string
		header string
		reuse  bool
	}{
		{"missing", "", false},
		{"not a uuid", "abc; drop table", false},
		{"uuid", incoming, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen string
			h := RequestID()(func(c echo.Context) error {
				seen = GetRequestID(c)
				return nil
			})
			if err := h(c); err != nil {
				t.Fatal(err)
			}

			if _, err := uuid.Parse(seen); err != nil {
				t.Fatalf("request id %q is not a uuid", seen)
			}
			if got := rec.Header().Get(RequestIDHeader); got != seen {
				t.Fatalf("response header %q, context %q", got, seen)
			}
			if (seen == tt.header) != tt.reuse {
				t.Fatalf("incoming %q, got %q", tt.header, seen)
			}
		})
	}
}

func TestGlobalErrorHandler(t *testing.T) {
	global := NewGlobalMiddlewares(&server.Server{})
	code := "PLATFORM_NOT_FOUND"

	tests := []struct {
		name     string
		err      error
		status   int
		wantCode string
	}{
		{"http error", errs.NewNotFoundError("platform 3 not found", true, &code), http.StatusNotFound, "PLATFORM_NOT_FOUND"},
		{"validation error", errs.NewValidationError("platform", "name", "is required"), http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown route", echo.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"echo error", echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"unique violation", errors.New("constraint failed: UNIQUE constraint failed: Platform.name (2067)"), http.StatusBadRequest, "PLATFORM_ALREADY_EXISTS"},
		{"opaque", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			global.GlobalErrorHandler(tt.err, c)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			var body errs.HTTPError
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tt.wantCode || body.Status != tt.status {
				t.Fatalf("body = %+v", body)
			}
		})
	}
}

func TestRouteEntity(t *testing.T) {
	tests := map[string]string{
		"/api/v1/questions/:id":    "questions",
		"/api/v1/questions/random": "questions",
		"/api/v1/platforms":        "platforms",
		"/status":                  "",
		"":                         "",
	}
	for path, want := range tests {
		if got := routeEntity(path); got != want {
			t.Fatalf("routeEntity(%q) = %q, want %q", path, got, want)
		}
	}
}
