package quiz

import (
	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/validation"
)

// Create payloads. Required foreign keys are pointers so that a missing key
// fails "required" instead of silently binding as 0.

type NewPlatform struct {
	Name        string  `json:"name" validate:"required,min=1"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Type        *string `json:"type"`
	QCount      int64   `json:"qCount" validate:"min=0"`
	IsActive    *bool   `json:"isActive"`
}

func (in *NewPlatform) Validate() error { return validation.Struct(in) }

// Subjects, topics and roadmaps carry application-assigned ids. A nil ID is
// allocated by the repository.

type NewSubject struct {
	ID         *int64 `json:"id" validate:"omitempty,min=0"`
	PlatformID *int64 `json:"platformId" validate:"required,min=0"`
	Name       string `json:"name" validate:"required,min=1"`
	IsActive   *bool  `json:"isActive"`
	QCount     int64  `json:"qCount" validate:"min=0"`
}

func (in *NewSubject) Validate() error { return validation.Struct(in) }

type NewTopic struct {
	ID         *int64 `json:"id" validate:"omitempty,min=0"`
	PlatformID *int64 `json:"platformId" validate:"required,min=0"`
	SubjectID  *int64 `json:"subjectId" validate:"required,min=0"`
	Name       string `json:"name" validate:"required,min=1"`
	IsActive   *bool  `json:"isActive"`
	QCount     int64  `json:"qCount" validate:"min=0"`
}

func (in *NewTopic) Validate() error { return validation.Struct(in) }

type NewRoadmap struct {
	ID         *int64 `json:"id" validate:"omitempty,min=0"`
	PlatformID *int64 `json:"platformId" validate:"required,min=0"`
	SubjectID  *int64 `json:"subjectId" validate:"required,min=0"`
	TopicID    *int64 `json:"topicId" validate:"required,min=0"`
	Name       string `json:"name" validate:"required,min=1"`
	IsActive   *bool  `json:"isActive"`
	QCount     int64  `json:"qCount" validate:"min=0"`
}

func (in *NewRoadmap) Validate() error { return validation.Struct(in) }

type NewQuestion struct {
	PlatformID  *int64   `json:"platformId" validate:"required,min=0"`
	SubjectID   *int64   `json:"subjectId" validate:"omitempty,min=0"`
	TopicID     *int64   `json:"topicId" validate:"omitempty,min=0"`
	RoadmapID   *int64   `json:"roadmapId" validate:"omitempty,min=0"`
	Question    string   `json:"question" validate:"required,min=1"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer" validate:"required,min=1"`
	Explanation *string  `json:"explanation"`
	Level       Level    `json:"level" validate:"required,oneof=E M D"`
	IsActive    *bool    `json:"isActive"`
}

func (in *NewQuestion) Validate() error { return validation.Struct(in) }

// OptionList is the options to store: never nil.
func (in *NewQuestion) OptionList() []string {
	if in.Options == nil {
		return []string{}
	}
	return in.Options
}

type NewResult struct {
	UserID     string   `json:"userId" validate:"required,min=1"`
	PlatformID *int64   `json:"platformId" validate:"required,min=0"`
	SubjectID  *int64   `json:"subjectId" validate:"omitempty,min=0"`
	TopicID    *int64   `json:"topicId" validate:"omitempty,min=0"`
	RoadmapID  *int64   `json:"roadmapId" validate:"omitempty,min=0"`
	Level      Level    `json:"level" validate:"required,oneof=E M D"`
	Responses  any      `json:"responses"`
	Mark       *float64 `json:"mark"`
}

func (in *NewResult) Validate() error { return validation.Struct(in) }

// MarkValue is the mark to store; a missing mark is 0.
func (in *NewResult) MarkValue() float64 {
	if in.Mark == nil {
		return 0
	}
	return *in.Mark
}

// Update payloads are sparse: a nil pointer leaves the column alone. Nullable
// columns use db.Nullable so "set to null" is distinguishable from "absent".

type UpdatePlatform struct {
	Name        *string             `json:"name" validate:"omitempty,min=1"`
	Description *string             `json:"description"`
	Icon        *string             `json:"icon"`
	Type        db.Nullable[string] `json:"type"`
	QCount      *int64              `json:"qCount" validate:"omitempty,min=0"`
	IsActive    *bool               `json:"isActive"`
}

func (in *UpdatePlatform) Validate() error { return validation.Struct(in) }

type UpdateSubject struct {
	PlatformID *int64  `json:"platformId" validate:"omitempty,min=0"`
	Name       *string `json:"name" validate:"omitempty,min=1"`
	IsActive   *bool   `json:"isActive"`
	QCount     *int64  `json:"qCount" validate:"omitempty,min=0"`
}

func (in *UpdateSubject) Validate() error { return validation.Struct(in) }

type UpdateTopic struct {
	PlatformID *int64  `json:"platformId" validate:"omitempty,min=0"`
	SubjectID  *int64  `json:"subjectId" validate:"omitempty,min=0"`
	Name       *string `json:"name" validate:"omitempty,min=1"`
	IsActive   *bool   `json:"isActive"`
	QCount     *int64  `json:"qCount" validate:"omitempty,min=0"`
}

func (in *UpdateTopic) Validate() error { return validation.Struct(in) }

type UpdateRoadmap struct {
	PlatformID *int64  `json:"platformId" validate:"omitempty,min=0"`
	SubjectID  *int64  `json:"subjectId" validate:"omitempty,min=0"`
	TopicID    *int64  `json:"topicId" validate:"omitempty,min=0"`
	Name       *string `json:"name" validate:"omitempty,min=1"`
	IsActive   *bool   `json:"isActive"`
	QCount     *int64  `json:"qCount" validate:"omitempty,min=0"`
}

func (in *UpdateRoadmap) Validate() error { return validation.Struct(in) }

type UpdateQuestion struct {
	PlatformID  *int64              `json:"platformId" validate:"omitempty,min=0"`
	SubjectID   db.Nullable[int64]  `json:"subjectId" validate:"omitempty,min=0"`
	TopicID     db.Nullable[int64]  `json:"topicId" validate:"omitempty,min=0"`
	RoadmapID   db.Nullable[int64]  `json:"roadmapId" validate:"omitempty,min=0"`
	Question    *string             `json:"question" validate:"omitempty,min=1"`
	Options     []string            `json:"options"`
	Answer      *string             `json:"answer" validate:"omitempty,min=1"`
	Explanation db.Nullable[string] `json:"explanation"`
	Level       *Level              `json:"level" validate:"omitempty,oneof=E M D"`
	IsActive    *bool               `json:"isActive"`
}

func (in *UpdateQuestion) Validate() error { return validation.Struct(in) }

type UpdateResult struct {
	UserID     *string            `json:"userId" validate:"omitempty,min=1"`
	PlatformID *int64             `json:"platformId" validate:"omitempty,min=0"`
	SubjectID  db.Nullable[int64] `json:"subjectId" validate:"omitempty,min=0"`
	TopicID    db.Nullable[int64] `json:"topicId" validate:"omitempty,min=0"`
	RoadmapID  db.Nullable[int64] `json:"roadmapId" validate:"omitempty,min=0"`
	Level      *Level             `json:"level" validate:"omitempty,oneof=E M D"`
	Responses  db.Nullable[any]   `json:"responses"`
	Mark       *float64           `json:"mark"`
}

func (in *UpdateResult) Validate() error { return validation.Struct(in) }

// ActiveOrDefault resolves an optional isActive flag; new records are active
// unless told otherwise.
func ActiveOrDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}
