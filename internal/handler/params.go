package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ansiversa/quizdb/internal/db"
	"github.com/ansiversa/quizdb/internal/repository"
)

// Query parameter types. They implement echo.BindUnmarshaler, so an empty
// value leaves the filter unset and a malformed one fails binding with a 400.

type queryInt struct {
	value *int
}

func (q *queryInt) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		return nil
	}
	v, err := strconv.Atoi(param)
	if err != nil {
		return fmt.Errorf("%q is not an integer", param)
	}
	q.value = &v
	return nil
}

type queryInt64 struct {
	value *int64
}

func (q *queryInt64) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		return nil
	}
	v, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return fmt.Errorf("%q is not an integer", param)
	}
	q.value = &v
	return nil
}

// queryBool accepts the strconv spellings: 1, t, true, 0, f, false.
type queryBool struct {
	value *bool
}

func (q *queryBool) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		return nil
	}
	v, err := strconv.ParseBool(param)
	if err != nil {
		return fmt.Errorf("%q is not a boolean", param)
	}
	q.value = &v
	return nil
}

// queryNullableInt64 additionally accepts "null", matching records where the
// column is NULL.
type queryNullableInt64 struct {
	value db.Nullable[int64]
}

func (q *queryNullableInt64) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	switch {
	case param == "":
		return nil
	case strings.EqualFold(param, "null"):
		q.value = db.Null[int64]()
		return nil
	}
	v, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return fmt.Errorf("%q is not an integer", param)
	}
	q.value = db.Some(v)
	return nil
}

// queryIDs is a comma separated id list such as "1,2,3". Blank entries are
// skipped.
type queryIDs struct {
	ids []int64
}

func (q *queryIDs) UnmarshalParam(param string) error {
	for _, part := range strings.Split(param, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return fmt.Errorf("%q is not an id", part)
		}
		q.ids = append(q.ids, v)
	}
	return nil
}

// PageQuery is embedded by every list request.
type PageQuery struct {
	Page     queryInt `query:"page"`
	PageSize queryInt `query:"pageSize"`
}

func (p PageQuery) request() db.PageRequest {
	return db.PageRequest{Page: p.Page.value, PageSize: p.PageSize.value}
}

// SortQuery is embedded by the admin search requests. sortColumn is matched
// case-insensitively; sortDirection is passed through, so only the literal
// "desc" sorts descending.
type SortQuery struct {
	SortColumn    string `query:"sortColumn"`
	SortDirection string `query:"sortDirection"`
}

func (s SortQuery) direction() db.SortDirection {
	return db.SortDirection(s.SortDirection)
}

// sortKey resolves a raw sortColumn. Keys are camelCase, so it is matched
// case-insensitively against the allowed keys.
func sortKey[K ~string](raw string, keys ...K) K {
	raw = strings.TrimSpace(raw)
	for _, k := range keys {
		if strings.EqualFold(string(k), raw) {
			return k
		}
	}
	return K(raw)
}

// CountQuery is embedded by the searches that filter on question counts.
type CountQuery struct {
	MinQuestions queryInt64 `query:"minQuestions"`
	MaxQuestions queryInt64 `query:"maxQuestions"`
	Status       string     `query:"status"`
}

func (c CountQuery) status() db.StatusFilter {
	return statusFilter(c.Status)
}

func statusFilter(raw string) db.StatusFilter {
	return db.StatusFilter(strings.ToLower(strings.TrimSpace(raw)))
}

func optionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// The allowed sort keys per view, used to fold the case of sortColumn.

var platformSortKeys = []repository.PlatformSort{
	repository.PlatformSortID, repository.PlatformSortName, repository.PlatformSortDescription,
	repository.PlatformSortType, repository.PlatformSortQCount, repository.PlatformSortStatus,
}

var subjectSortKeys = []repository.SubjectSort{
	repository.SubjectSortID, repository.SubjectSortName, repository.SubjectSortPlatformID,
	repository.SubjectSortPlatformName, repository.SubjectSortQCount, repository.SubjectSortStatus,
}

var topicSortKeys = []repository.TopicSort{
	repository.TopicSortID, repository.TopicSortName, repository.TopicSortPlatformID,
	repository.TopicSortSubjectID, repository.TopicSortPlatformName, repository.TopicSortSubjectName,
	repository.TopicSortQCount, repository.TopicSortStatus,
}

var roadmapSortKeys = []repository.RoadmapSort{
	repository.RoadmapSortID, repository.RoadmapSortName, repository.RoadmapSortPlatformID,
	repository.RoadmapSortSubjectID, repository.RoadmapSortTopicID, repository.RoadmapSortPlatformName,
	repository.RoadmapSortSubjectName, repository.RoadmapSortTopicName, repository.RoadmapSortQCount,
	repository.RoadmapSortStatus,
}

var questionSortKeys = []repository.QuestionSort{
	repository.QuestionSortID, repository.QuestionSortText, repository.QuestionSortPlatformID,
	repository.QuestionSortSubjectID, repository.QuestionSortTopicID, repository.QuestionSortRoadmapID,
	repository.QuestionSortPlatformName, repository.QuestionSortSubjectName, repository.QuestionSortTopicName,
	repository.QuestionSortRoadmapName, repository.QuestionSortLevel, repository.QuestionSortStatus,
}
