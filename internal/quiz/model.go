// Package quiz holds the quiz content records, the parsers that build them
// from store rows, and the create/update payloads the repositories accept.
//
// The hierarchy is Platform > Subject > Topic > Roadmap. Questions hang off
// a platform and optionally any level below it; Results record one attempt.
package quiz

import "time"

type Platform struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Type        *string `json:"type"`
	QCount      int64   `json:"qCount"`
	IsActive    bool    `json:"isActive"`
}

type Subject struct {
	ID         int64  `json:"id"`
	PlatformID int64  `json:"platformId"`
	Name       string `json:"name"`
	IsActive   bool   `json:"isActive"`
	QCount     int64  `json:"qCount"`
}

type Topic struct {
	ID         int64  `json:"id"`
	PlatformID int64  `json:"platformId"`
	SubjectID  int64  `json:"subjectId"`
	Name       string `json:"name"`
	IsActive   bool   `json:"isActive"`
	QCount     int64  `json:"qCount"`
}

type Roadmap struct {
	ID         int64  `json:"id"`
	PlatformID int64  `json:"platformId"`
	SubjectID  int64  `json:"subjectId"`
	TopicID    int64  `json:"topicId"`
	Name       string `json:"name"`
	IsActive   bool   `json:"isActive"`
	QCount     int64  `json:"qCount"`
}

// Question is stored with short column names: q (text), o (options),
// a (answer), e (explanation) and l (level).
type Question struct {
	ID          int64    `json:"id"`
	PlatformID  int64    `json:"platformId"`
	SubjectID   *int64   `json:"subjectId"`
	TopicID     *int64   `json:"topicId"`
	RoadmapID   *int64   `json:"roadmapId"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation *string  `json:"explanation"`
	Level       Level    `json:"level"`
	IsActive    bool     `json:"isActive"`
}

// Result is one quiz attempt. Responses is whatever JSON the client
// submitted.
type Result struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"userId"`
	PlatformID int64     `json:"platformId"`
	SubjectID  *int64    `json:"subjectId"`
	TopicID    *int64    `json:"topicId"`
	RoadmapID  *int64    `json:"roadmapId"`
	Level      Level     `json:"level"`
	Responses  any       `json:"responses"`
	Mark       float64   `json:"mark"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Admin views carry the names of a record's ancestors. A name is nil when the
// ancestor row is missing.

type SubjectWithPlatform struct {
	Subject      Subject `json:"subject"`
	PlatformName *string `json:"platformName"`
}

type TopicWithRelations struct {
	Topic        Topic   `json:"topic"`
	PlatformName *string `json:"platformName"`
	SubjectName  *string `json:"subjectName"`
}

type RoadmapWithRelations struct {
	Roadmap      Roadmap `json:"roadmap"`
	PlatformName *string `json:"platformName"`
	SubjectName  *string `json:"subjectName"`
	TopicName    *string `json:"topicName"`
}

type QuestionRelations struct {
	Question     Question `json:"question"`
	PlatformName *string  `json:"platformName"`
	SubjectName  *string  `json:"subjectName"`
	TopicName    *string  `json:"topicName"`
	RoadmapName  *string  `json:"roadmapName"`
}
