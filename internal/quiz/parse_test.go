package quiz

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/errs"
)

func row(m map[string]any) db.Row {
	return db.Normalize(db.Keyed(m))
}

func questionRow(options any) map[string]any {
	return map[string]any{
		"id":         int64(1),
		"platformId": "2",
		"subjectId":  nil,
		"topicId":    "",
		"roadmapId":  int64(4),
		"q":          "What is Go?",
		"o":          options,
		"a":          "A",
		"e":          "",
		"l":          "m",
		"isActive":   "1",
	}
}

func TestParseQuestionOptions(t *testing.T) {
	tests := []struct {
		name    string
		options any
		want    []string
	}{
		{"json array string", `["A","B"]`, []string{"A", "B"}},
		{"invalid json", "A,B", []string{"A,B"}},
		{"native slice", []any{"A", "B"}, []string{"A", "B"}},
		{"object map", `{"1":"B","0":"A"}`, []string{"A", "B"}},
		{"missing", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseQuestion(row(questionRow(tt.options)))
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(q.Options, tt.want) {
				t.Fatalf("options = %#v, want %#v", q.Options, tt.want)
			}
		})
	}
}

func TestParseQuestionCoercesFields(t *testing.T) {
	q, err := ParseQuestion(row(questionRow(`[]`)))
	if err != nil {
		t.Fatal(err)
	}

	if q.ID != 1 || q.PlatformID != 2 {
		t.Fatalf("ids = %d/%d", q.ID, q.PlatformID)
	}
	if q.SubjectID != nil || q.TopicID != nil {
		t.Fatal("null and empty foreign keys must be absent")
	}
	if q.RoadmapID == nil || *q.RoadmapID != 4 {
		t.Fatalf("roadmapId = %v", q.RoadmapID)
	}
	if q.Explanation != nil {
		t.Fatal("empty explanation must be nil")
	}
	if q.Level != LevelMedium {
		t.Fatalf("level = %q", q.Level)
	}
	if !q.IsActive {
		t.Fatal(`"1" must read as active`)
	}
}

func TestParseQuestionUnknownLevelDefaultsToEasy(t *testing.T) {
	for _, l := range []any{"X", nil, int64(3), ""} {
		m := questionRow(nil)
		m["l"] = l
		q, err := ParseQuestion(row(m))
		if err != nil {
			t.Fatal(err)
		}
		if q.Level != LevelEasy {
			t.Errorf("level %v read as %q", l, q.Level)
		}
	}
}

func TestParseSchemaErrors(t *testing.T) {
	tests := []struct {
		name  string
		parse func(db.Row) error
		row   map[string]any
		field string
	}{
		{
			name:  "platform missing name",
			parse: func(r db.Row) error { _, err := ParsePlatform(r); return err },
			row:   map[string]any{"id": int64(1)},
			field: "name",
		},
		{
			name:  "platform numeric name",
			parse: func(r db.Row) error { _, err := ParsePlatform(r); return err },
			row:   map[string]any{"id": int64(1), "name": int64(5)},
			field: "name",
		},
		{
			name:  "subject boolean platform",
			parse: func(r db.Row) error { _, err := ParseSubject(r); return err },
			row:   map[string]any{"id": int64(1), "platformId": true, "name": "Maths"},
			field: "platformId",
		},
		{
			name:  "topic missing subject",
			parse: func(r db.Row) error { _, err := ParseTopic(r); return err },
			row:   map[string]any{"id": int64(1), "platformId": int64(1), "name": "Algebra"},
			field: "subjectId",
		},
		{
			name:  "roadmap non-numeric id",
			parse: func(r db.Row) error { _, err := ParseRoadmap(r); return err },
			row:   map[string]any{"id": "abc", "platformId": 1, "subjectId": 1, "topicId": 1, "name": "x"},
			field: "id",
		},
		{
			name:  "question missing answer",
			parse: func(r db.Row) error { _, err := ParseQuestion(r); return err },
			row:   map[string]any{"id": 1, "platformId": 1, "q": "?"},
			field: "a",
		},
		{
			name:  "result missing createdAt",
			parse: func(r db.Row) error { _, err := ParseResult(r); return err },
			row:   map[string]any{"id": 1, "userId": "u", "platformId": 1},
			field: "createdAt",
		},
		{
			name:  "result bad createdAt",
			parse: func(r db.Row) error { _, err := ParseResult(r); return err },
			row:   map[string]any{"id": 1, "userId": "u", "platformId": 1, "createdAt": "soon"},
			field: "createdAt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parse(row(tt.row))
			var schemaErr *errs.SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected SchemaError, got %v", err)
			}
			if schemaErr.Field != tt.field {
				t.Fatalf("field = %q, want %q", schemaErr.Field, tt.field)
			}
		})
	}
}

func TestParsePlatformDefaults(t *testing.T) {
	p, err := ParsePlatform(row(map[string]any{"id": "7", "name": "Go", "type": nil}))
	if err != nil {
		t.Fatal(err)
	}
	want := Platform{ID: 7, Name: "Go", Description: "", Icon: "", Type: nil, QCount: 0, IsActive: true}
	if !reflect.DeepEqual(p, want) {
		t.Fatalf("got %+v, want %+v", p, want)
	}
}

func TestParsePostgresFoldedColumns(t *testing.T) {
	s, err := ParseSubject(row(map[string]any{
		"id": int32(3), "platformid": int32(1), "name": "Physics", "isactive": int32(0), "qcount": int32(12),
	}))
	if err != nil {
		t.Fatal(err)
	}
	if s.PlatformID != 1 || s.IsActive || s.QCount != 12 {
		t.Fatalf("got %+v", s)
	}
}

func TestParseResult(t *testing.T) {
	r, err := ParseResult(row(map[string]any{
		"id":         int64(9),
		"userId":     "user-1",
		"platformId": int64(2),
		"topicId":    "5",
		"level":      "d",
		"responses":  `{"1":"A"}`,
		"mark":       "7.5",
		"createdAt":  "2024-05-01 08:00:00",
	}))
	if err != nil {
		t.Fatal(err)
	}

	if r.Level != LevelDifficult || r.Mark != 7.5 {
		t.Fatalf("got %+v", r)
	}
	if r.TopicID == nil || *r.TopicID != 5 || r.SubjectID != nil {
		t.Fatalf("foreign keys = %v/%v", r.SubjectID, r.TopicID)
	}
	if !reflect.DeepEqual(r.Responses, map[string]any{"1": "A"}) {
		t.Fatalf("responses = %#v", r.Responses)
	}
	if !r.CreatedAt.Equal(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("createdAt = %v", r.CreatedAt)
	}
}

func TestParseResultMalformedResponses(t *testing.T) {
	_, err := ParseResult(row(map[string]any{
		"id": 1, "userId": "u", "platformId": 1, "createdAt": time.Now(), "responses": "{oops",
	}))
	var decodeErr *errs.DecodeError
	if !errors.As(err, &decodeErr) || decodeErr.Field != "responses" {
		t.Fatalf("expected DecodeError on responses, got %v", err)
	}
}

func TestParseRelationNames(t *testing.T) {
	m := questionRow(nil)
	m["platformName"] = "Go"
	m["subjectName"] = nil
	m["topicName"] = int64(3)

	rel, err := ParseQuestionRelations(row(m))
	if err != nil {
		t.Fatal(err)
	}
	if rel.PlatformName == nil || *rel.PlatformName != "Go" {
		t.Fatalf("platformName = %v", rel.PlatformName)
	}
	if rel.SubjectName != nil || rel.TopicName != nil || rel.RoadmapName != nil {
		t.Fatal("missing or non-string names must be nil")
	}
}
