package handler

import (
	"quiz-course/internal/middleware"
	"quiz-course/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups every HTTP handler mounted under /api.
type Handlers struct {
	Courses   *CourseHandler
	Instances *InstanceHandler
	Questions *QuestionHandler
	Tags      *TagHandler
}

// RegisterRoutes mounts the API. Every route requires a bearer token.
func RegisterRoutes(app *fiber.App, authService service.AuthService, h Handlers) {
	api := app.Group("/api", middleware.Protected(authService))

	api.Get("/courses", h.Courses.ListCourses)
	api.Post("/courses", h.Courses.CreateCourse)
	api.Get("/courses/:id", h.Courses.GetCourse)
	api.Put("/courses/:id", h.Courses.UpdateCourse)
	api.Post("/courses/:id/start", h.Courses.StartCourse)

	api.Post("/instances/:id/next", h.Instances.Next)
	api.Get("/instances/:id/result", h.Instances.Result)
	api.Delete("/instances/:id", h.Instances.Delete)

	api.Get("/instance-questions/:id", h.Instances.GetQuestion)
	api.Post("/instance-questions/:id/answer", h.Instances.Answer)
	api.Post("/instance-questions/:id/solution", h.Instances.Solution)

	api.Get("/me/instances", h.Instances.MyInstances)
	api.Get("/me/questions", h.Questions.MyQuestions)

	api.Post("/questions", h.Questions.CreateQuestion)
	api.Get("/questions/:id", h.Questions.GetQuestion)
	api.Put("/questions/:id", h.Questions.UpdateQuestion)
	api.Delete("/questions/:id", h.Questions.DeleteQuestion)
	api.Post("/questions/:id/vote", h.Questions.Vote)
	api.Get("/questions/:id/votes", h.Questions.GetVotes)

	api.Get("/tags", h.Tags.FindTags)
	api.Post("/tags", h.Tags.CreateTag)
	api.Get("/tags/:id", h.Tags.GetTag)
	api.Put("/tags/:id", h.Tags.UpdateTag)
}
