package repository

// Sort keys accepted by the admin search views. Each key maps to exactly one
// qualified column; anything else falls back to the table's id column.

type PlatformSort string

const (
	PlatformSortID          PlatformSort = "id"
	PlatformSortName        PlatformSort = "name"
	PlatformSortDescription PlatformSort = "description"
	PlatformSortType        PlatformSort = "type"
	PlatformSortQCount      PlatformSort = "qCount"
	PlatformSortStatus      PlatformSort = "status"
)

var platformSortColumns = map[PlatformSort]string{
	PlatformSortID:          "p.id",
	PlatformSortName:        "p.name",
	PlatformSortDescription: "p.description",
	PlatformSortType:        "p.type",
	PlatformSortQCount:      "p.qCount",
	PlatformSortStatus:      "p.isActive",
}

type SubjectSort string

const (
	SubjectSortID           SubjectSort = "id"
	SubjectSortName         SubjectSort = "name"
	SubjectSortPlatformID   SubjectSort = "platformId"
	SubjectSortPlatformName SubjectSort = "platformName"
	SubjectSortQCount       SubjectSort = "qCount"
	SubjectSortStatus       SubjectSort = "status"
)

var subjectSortColumns = map[SubjectSort]string{
	SubjectSortID:           "s.id",
	SubjectSortName:         "s.name",
	SubjectSortPlatformID:   "s.platformId",
	SubjectSortPlatformName: "p.name",
	SubjectSortQCount:       "s.qCount",
	SubjectSortStatus:       "s.isActive",
}

type TopicSort string

const (
	TopicSortID           TopicSort = "id"
	TopicSortName         TopicSort = "name"
	TopicSortPlatformID   TopicSort = "platformId"
	TopicSortSubjectID    TopicSort = "subjectId"
	TopicSortPlatformName TopicSort = "platformName"
	TopicSortSubjectName  TopicSort = "subjectName"
	TopicSortQCount       TopicSort = "qCount"
	TopicSortStatus       TopicSort = "status"
)

var topicSortColumns = map[TopicSort]string{
	TopicSortID:           "t.id",
	TopicSortName:         "t.name",
	TopicSortPlatformID:   "t.platformId",
	TopicSortSubjectID:    "t.subjectId",
	TopicSortPlatformName: "p.name",
	TopicSortSubjectName:  "s.name",
	TopicSortQCount:       "t.qCount",
	TopicSortStatus:       "t.isActive",
}

type RoadmapSort string

const (
	RoadmapSortID           RoadmapSort = "id"
	RoadmapSortName         RoadmapSort = "name"
	RoadmapSortPlatformID   RoadmapSort = "platformId"
	RoadmapSortSubjectID    RoadmapSort = "subjectId"
	RoadmapSortTopicID      RoadmapSort = "topicId"
	RoadmapSortPlatformName RoadmapSort = "platformName"
	RoadmapSortSubjectName  RoadmapSort = "subjectName"
	RoadmapSortTopicName    RoadmapSort = "topicName"
	RoadmapSortQCount       RoadmapSort = "qCount"
	RoadmapSortStatus       RoadmapSort = "status"
)

var roadmapSortColumns = map[RoadmapSort]string{
	RoadmapSortID:           "r.id",
	RoadmapSortName:         "r.name",
	RoadmapSortPlatformID:   "r.platformId",
	RoadmapSortSubjectID:    "r.subjectId",
	RoadmapSortTopicID:      "r.topicId",
	RoadmapSortPlatformName: "p.name",
	RoadmapSortSubjectName:  "s.name",
	RoadmapSortTopicName:    "t.name",
	RoadmapSortQCount:       "r.qCount",
	RoadmapSortStatus:       "r.isActive",
}

type QuestionSort string

const (
	QuestionSortID           QuestionSort = "id"
	QuestionSortText         QuestionSort = "questionText"
	QuestionSortPlatformID   QuestionSort = "platformId"
	QuestionSortSubjectID    QuestionSort = "subjectId"
	QuestionSortTopicID      QuestionSort = "topicId"
	QuestionSortRoadmapID    QuestionSort = "roadmapId"
	QuestionSortPlatformName QuestionSort = "platformName"
	QuestionSortSubjectName  QuestionSort = "subjectName"
	QuestionSortTopicName    QuestionSort = "topicName"
	QuestionSortRoadmapName  QuestionSort = "roadmapName"
	QuestionSortLevel        QuestionSort = "level"
	QuestionSortStatus       QuestionSort = "status"
)

var questionSortColumns = map[QuestionSort]string{
	QuestionSortID:           "q.id",
	QuestionSortText:         "q.q",
	QuestionSortPlatformID:   "q.platformId",
	QuestionSortSubjectID:    "q.subjectId",
	QuestionSortTopicID:      "q.topicId",
	QuestionSortRoadmapID:    "q.roadmapId",
	QuestionSortPlatformName: "p.name",
	QuestionSortSubjectName:  "s.name",
	QuestionSortTopicName:    "t.name",
	QuestionSortRoadmapName:  "r.name",
	QuestionSortLevel:        "q.l",
	QuestionSortStatus:       "q.isActive",
}
