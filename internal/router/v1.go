package router

import (
	"net/http"

	"github.com/ansiversa/quizdb/internal/handler"
	"github.com/ansiversa/quizdb/internal/quiz"
	"github.com/ansiversa/quizdb/internal/service"
	"github.com/labstack/echo/v4"
)

func registerQuizRoutes(g *echo.Group, h *handler.Handlers) {
	platforms := g.Group("/platforms")
	platforms.GET("", handler.Handle(h.Platforms.Handler, h.Platforms.Search, http.StatusOK, &handler.SearchPlatformsRequest{}))
	platforms.POST("", handler.Handle(h.Platforms.Handler, h.Platforms.Create, http.StatusCreated, &quiz.NewPlatform{}))
	platforms.GET("/:id", handler.Handle(h.Platforms.Handler, h.Platforms.Get, http.StatusOK, &handler.IDRequest{}))
	platforms.PATCH("/:id", handler.Handle(h.Platforms.Handler, h.Platforms.Update, http.StatusOK, &handler.UpdatePlatformRequest{}))
	platforms.DELETE("/:id", handler.HandleNoContent(h.Platforms.Handler, h.Platforms.Delete, http.StatusNoContent, &handler.IDRequest{}))
	platforms.GET("/:id/subjects", handler.Handle(h.Catalog.Handler, h.Catalog.SubjectsOf, http.StatusOK, &handler.IDRequest{}))
	platforms.GET("/:id/topics", handler.Handle(h.Catalog.Handler, h.Catalog.TopicsOf(service.ParentPlatform), http.StatusOK, &handler.IDRequest{}))
	platforms.GET("/:id/roadmaps", handler.Handle(h.Catalog.Handler, h.Catalog.RoadmapsOf(service.ParentPlatform), http.StatusOK, &handler.IDRequest{}))
	platforms.GET("/:id/questions", handler.Handle(h.Catalog.Handler, h.Catalog.QuestionsOf(service.ParentPlatform), http.StatusOK, &handler.IDRequest{}))
	platforms.GET("/:id/questions/random", handler.Handle(h.Catalog.Handler, h.Catalog.RandomOf, http.StatusOK, &handler.RandomDrawRequest{}))
	platforms.GET("/:id/results", handler.Handle(h.Catalog.Handler, h.Catalog.PlatformResults, http.StatusOK, &handler.IDRequest{}))

	subjects := g.Group("/subjects")
	subjects.GET("", handler.Handle(h.Subjects.Handler, h.Subjects.Search, http.StatusOK, &handler.SearchSubjectsRequest{}))
	subjects.POST("", handler.Handle(h.Subjects.Handler, h.Subjects.Create, http.StatusCreated, &quiz.NewSubject{}))
	subjects.GET("/:id", handler.Handle(h.Subjects.Handler, h.Subjects.Get, http.StatusOK, &handler.IDRequest{}))
	subjects.PATCH("/:id", handler.Handle(h.Subjects.Handler, h.Subjects.Update, http.StatusOK, &handler.UpdateSubjectRequest{}))
	subjects.DELETE("/:id", handler.HandleNoContent(h.Subjects.Handler, h.Subjects.Delete, http.StatusNoContent, &handler.IDRequest{}))
	subjects.GET("/:id/topics", handler.Handle(h.Catalog.Handler, h.Catalog.TopicsOf(service.ParentSubject), http.StatusOK, &handler.IDRequest{}))
	subjects.GET("/:id/roadmaps", handler.Handle(h.Catalog.Handler, h.Catalog.RoadmapsOf(service.ParentSubject), http.StatusOK, &handler.IDRequest{}))
	subjects.GET("/:id/questions", handler.Handle(h.Catalog.Handler, h.Catalog.QuestionsOf(service.ParentSubject), http.StatusOK, &handler.IDRequest{}))

	topics := g.Group("/topics")
	topics.GET("", handler.Handle(h.Topics.Handler, h.Topics.Search, http.StatusOK, &handler.SearchTopicsRequest{}))
	topics.POST("", handler.Handle(h.Topics.Handler, h.Topics.Create, http.StatusCreated, &quiz.NewTopic{}))
	topics.GET("/:id", handler.Handle(h.Topics.Handler, h.Topics.Get, http.StatusOK, &handler.IDRequest{}))
	topics.PATCH("/:id", handler.Handle(h.Topics.Handler, h.Topics.Update, http.StatusOK, &handler.UpdateTopicRequest{}))
	topics.DELETE("/:id", handler.HandleNoContent(h.Topics.Handler, h.Topics.Delete, http.StatusNoContent, &handler.IDRequest{}))
	topics.GET("/:id/roadmaps", handler.Handle(h.Catalog.Handler, h.Catalog.RoadmapsOf(service.ParentTopic), http.StatusOK, &handler.IDRequest{}))
	topics.GET("/:id/questions", handler.Handle(h.Catalog.Handler, h.Catalog.QuestionsOf(service.ParentTopic), http.StatusOK, &handler.IDRequest{}))

	roadmaps := g.Group("/roadmaps")
	roadmaps.GET("", handler.Handle(h.Roadmaps.Handler, h.Roadmaps.Search, http.StatusOK, &handler.SearchRoadmapsRequest{}))
	roadmaps.POST("", handler.Handle(h.Roadmaps.Handler, h.Roadmaps.Create, http.StatusCreated, &quiz.NewRoadmap{}))
	roadmaps.GET("/:id", handler.Handle(h.Roadmaps.Handler, h.Roadmaps.Get, http.StatusOK, &handler.IDRequest{}))
	roadmaps.PATCH("/:id", handler.Handle(h.Roadmaps.Handler, h.Roadmaps.Update, http.StatusOK, &handler.UpdateRoadmapRequest{}))
	roadmaps.DELETE("/:id", handler.HandleNoContent(h.Roadmaps.Handler, h.Roadmaps.Delete, http.StatusNoContent, &handler.IDRequest{}))
	roadmaps.GET("/:id/questions", handler.Handle(h.Catalog.Handler, h.Catalog.QuestionsOf(service.ParentRoadmap), http.StatusOK, &handler.IDRequest{}))

	questions := g.Group("/questions")
	questions.GET("", handler.Handle(h.Questions.Handler, h.Questions.Search, http.StatusOK, &handler.SearchQuestionsRequest{}))
	questions.GET("/random", handler.Handle(h.Questions.Handler, h.Questions.Random, http.StatusOK, &handler.RandomQuestionsRequest{}))
	questions.POST("", handler.Handle(h.Questions.Handler, h.Questions.Create, http.StatusCreated, &quiz.NewQuestion{}))
	questions.GET("/:id", handler.Handle(h.Questions.Handler, h.Questions.Get, http.StatusOK, &handler.IDRequest{}))
	questions.PATCH("/:id", handler.Handle(h.Questions.Handler, h.Questions.Update, http.StatusOK, &handler.UpdateQuestionRequest{}))
	questions.DELETE("/:id", handler.HandleNoContent(h.Questions.Handler, h.Questions.Delete, http.StatusNoContent, &handler.IDRequest{}))

	results := g.Group("/results")
	results.GET("", handler.Handle(h.Results.Handler, h.Results.List, http.StatusOK, &handler.ListResultsRequest{}))
	results.POST("", handler.Handle(h.Results.Handler, h.Results.Create, http.StatusCreated, &quiz.NewResult{}))
	results.GET("/:id", handler.Handle(h.Results.Handler, h.Results.Get, http.StatusOK, &handler.IDRequest{}))
	results.DELETE("/:id", handler.HandleNoContent(h.Results.Handler, h.Results.Delete, http.StatusNoContent, &handler.IDRequest{}))

	g.GET("/users/:userId/results", handler.Handle(h.Catalog.Handler, h.Catalog.UserResults, http.StatusOK, &handler.UserResultsRequest{}))

	// Plain, join-free views for quiz takers.
	g.GET("/catalog", handler.Handle(h.Catalog.Handler, h.Catalog.Snapshot, http.StatusOK, &handler.CatalogRequest{}))
	catalog := g.Group("/catalog")
	catalog.GET("/platforms", handler.Handle(h.Catalog.Handler, h.Catalog.Platforms, http.StatusOK, &handler.ListPlatformsRequest{}))
	catalog.GET("/subjects", handler.Handle(h.Catalog.Handler, h.Catalog.Subjects, http.StatusOK, &handler.ListSubjectsRequest{}))
	catalog.GET("/topics", handler.Handle(h.Catalog.Handler, h.Catalog.Topics, http.StatusOK, &handler.ListTopicsRequest{}))
	catalog.GET("/roadmaps", handler.Handle(h.Catalog.Handler, h.Catalog.Roadmaps, http.StatusOK, &handler.ListRoadmapsRequest{}))
	catalog.GET("/questions", handler.Handle(h.Catalog.Handler, h.Catalog.Questions, http.StatusOK, &handler.ListQuestionsRequest{}))
}
