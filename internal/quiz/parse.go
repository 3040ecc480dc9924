package quiz

import (
	"encoding/json"
	"fmt"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/errs"
)

// rowReader checks the shape of required fields and hands everything else
// to the tolerant coercers.
type rowReader struct {
	entity string
	row    db.Row
}

func (r rowReader) missing(field string) error {
	return &errs.SchemaError{Entity: r.entity, Field: field, Reason: "is missing"}
}

func (r rowReader) wrongType(field string, v any) error {
	return &errs.SchemaError{Entity: r.entity, Field: field, Reason: fmt.Sprintf("has unexpected type %T", v)}
}

// int reads a required integer column. Numbers and numeric strings are
// accepted; anything else is a SchemaError.
func (r rowReader) int(field string) (int64, error) {
	v, ok := r.row.Get(field)
	if !ok || v == nil {
		return 0, r.missing(field)
	}
	if !isNumberLike(v) {
		return 0, r.wrongType(field, v)
	}
	n, err := db.RequireInteger(field, v)
	if err != nil {
		return 0, &errs.SchemaError{Entity: r.entity, Field: field, Reason: "is not an integer"}
	}
	return n, nil
}

// text reads a required string column.
func (r rowReader) text(field string) (string, error) {
	v, ok := r.row.Get(field)
	if !ok || v == nil {
		return "", r.missing(field)
	}
	s, isString := v.(string)
	if !isString {
		return "", r.wrongType(field, v)
	}
	return s, nil
}

func (r rowReader) optionalInt(field string) *int64 {
	return db.CoerceOptionalInteger(r.row.Value(field))
}

func (r rowReader) count(field string) int64 {
	return db.CoerceInteger(r.row.Value(field), 0)
}

func (r rowReader) active() bool {
	return db.CoerceBoolean(r.row.Value("isActive"), true)
}

func (r rowReader) level(field string) Level {
	return ParseLevel(db.CoerceString(r.row.Value(field), ""))
}

// name reads a joined ancestor name; anything but a string is nil.
func (r rowReader) name(field string) *string {
	if s, ok := r.row.Value(field).(string); ok {
		return &s
	}
	return nil
}

func isNumberLike(v any) bool {
	switch v.(type) {
	case string, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// readIDs reads the required integer columns in order.
func (r rowReader) readIDs(fields ...string) ([]int64, error) {
	ids := make([]int64, len(fields))
	for i, f := range fields {
		n, err := r.int(f)
		if err != nil {
			return nil, err
		}
		ids[i] = n
	}
	return ids, nil
}

func ParsePlatform(row db.Row) (Platform, error) {
	r := rowReader{entity: "platform", row: row}

	id, err := r.int("id")
	if err != nil {
		return Platform{}, err
	}
	name, err := r.text("name")
	if err != nil {
		return Platform{}, err
	}

	return Platform{
		ID:          id,
		Name:        name,
		Description: db.CoerceString(row.Value("description"), ""),
		Icon:        db.CoerceString(row.Value("icon"), ""),
		Type:        db.CoerceNullableString(row.Value("type")),
		QCount:      r.count("qCount"),
		IsActive:    r.active(),
	}, nil
}

func ParseSubject(row db.Row) (Subject, error) {
	r := rowReader{entity: "subject", row: row}

	ids, err := r.readIDs("id", "platformId")
	if err != nil {
		return Subject{}, err
	}
	name, err := r.text("name")
	if err != nil {
		return Subject{}, err
	}

	return Subject{
		ID:         ids[0],
		PlatformID: ids[1],
		Name:       name,
		IsActive:   r.active(),
		QCount:     r.count("qCount"),
	}, nil
}

func ParseTopic(row db.Row) (Topic, error) {
	r := rowReader{entity: "topic", row: row}

	ids, err := r.readIDs("id", "platformId", "subjectId")
	if err != nil {
		return Topic{}, err
	}
	name, err := r.text("name")
	if err != nil {
		return Topic{}, err
	}

	return Topic{
		ID:         ids[0],
		PlatformID: ids[1],
		SubjectID:  ids[2],
		Name:       name,
		IsActive:   r.active(),
		QCount:     r.count("qCount"),
	}, nil
}

func ParseRoadmap(row db.Row) (Roadmap, error) {
	r := rowReader{entity: "roadmap", row: row}

	ids, err := r.readIDs("id", "platformId", "subjectId", "topicId")
	if err != nil {
		return Roadmap{}, err
	}
	name, err := r.text("name")
	if err != nil {
		return Roadmap{}, err
	}

	return Roadmap{
		ID:         ids[0],
		PlatformID: ids[1],
		SubjectID:  ids[2],
		TopicID:    ids[3],
		Name:       name,
		IsActive:   r.active(),
		QCount:     r.count("qCount"),
	}, nil
}

// ParseQuestion builds a Question from its short storage columns. Options
// never fail to parse: undecodable text becomes a single option.
func ParseQuestion(row db.Row) (Question, error) {
	r := rowReader{entity: "question", row: row}

	ids, err := r.readIDs("id", "platformId")
	if err != nil {
		return Question{}, err
	}
	text, err := r.text("q")
	if err != nil {
		return Question{}, err
	}
	answer, err := r.text("a")
	if err != nil {
		return Question{}, err
	}

	return Question{
		ID:          ids[0],
		PlatformID:  ids[1],
		SubjectID:   r.optionalInt("subjectId"),
		TopicID:     r.optionalInt("topicId"),
		RoadmapID:   r.optionalInt("roadmapId"),
		Question:    text,
		Options:     db.ToStringArray(row.Value("o")),
		Answer:      answer,
		Explanation: db.CoerceNullableString(row.Value("e")),
		Level:       r.level("l"),
		IsActive:    r.active(),
	}, nil
}

// ParseResult builds a Result. Unlike options, a malformed responses payload
// is a DecodeError.
func ParseResult(row db.Row) (Result, error) {
	r := rowReader{entity: "result", row: row}

	id, err := r.int("id")
	if err != nil {
		return Result{}, err
	}
	userID, err := r.text("userId")
	if err != nil {
		return Result{}, err
	}
	platformID, err := r.int("platformId")
	if err != nil {
		return Result{}, err
	}

	rawCreated, ok := row.Get("createdAt")
	if !ok || rawCreated == nil {
		return Result{}, r.missing("createdAt")
	}
	createdAt, err := db.ParseDate(rawCreated)
	if err != nil {
		return Result{}, &errs.SchemaError{Entity: r.entity, Field: "createdAt", Reason: "is not a valid date"}
	}

	responses, err := db.ParseJSONValue("responses", row.Value("responses"))
	if err != nil {
		return Result{}, err
	}

	return Result{
		ID:         id,
		UserID:     userID,
		PlatformID: platformID,
		SubjectID:  r.optionalInt("subjectId"),
		TopicID:    r.optionalInt("topicId"),
		RoadmapID:  r.optionalInt("roadmapId"),
		Level:      r.level("level"),
		Responses:  responses,
		Mark:       db.CoerceNumber(row.Value("mark"), 0),
		CreatedAt:  createdAt,
	}, nil
}

func ParseSubjectWithPlatform(row db.Row) (SubjectWithPlatform, error) {
	s, err := ParseSubject(row)
	if err != nil {
		return SubjectWithPlatform{}, err
	}
	r := rowReader{entity: "subject", row: row}
	return SubjectWithPlatform{Subject: s, PlatformName: r.name("platformName")}, nil
}

func ParseTopicWithRelations(row db.Row) (TopicWithRelations, error) {
	t, err := ParseTopic(row)
	if err != nil {
		return TopicWithRelations{}, err
	}
	r := rowReader{entity: "topic", row: row}
	return TopicWithRelations{
		Topic:        t,
		PlatformName: r.name("platformName"),
		SubjectName:  r.name("subjectName"),
	}, nil
}

func ParseRoadmapWithRelations(row db.Row) (RoadmapWithRelations, error) {
	rm, err := ParseRoadmap(row)
	if err != nil {
		return RoadmapWithRelations{}, err
	}
	r := rowReader{entity: "roadmap", row: row}
	return RoadmapWithRelations{
		Roadmap:      rm,
		PlatformName: r.name("platformName"),
		SubjectName:  r.name("subjectName"),
		TopicName:    r.name("topicName"),
	}, nil
}

func ParseQuestionRelations(row db.Row) (QuestionRelations, error) {
	q, err := ParseQuestion(row)
	if err != nil {
		return QuestionRelations{}, err
	}
	r := rowReader{entity: "question", row: row}
	return QuestionRelations{
		Question:     q,
		PlatformName: r.name("platformName"),
		SubjectName:  r.name("subjectName"),
		TopicName:    r.name("topicName"),
		RoadmapName:  r.name("roadmapName"),
	}, nil
}
