package handler

import (
	"quiz-course/internal/dto"
	"quiz-course/internal/middleware"
	"quiz-course/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CourseHandler handles course HTTP requests
type CourseHandler struct {
	courses     service.CourseService
	progression service.ProgressionService
}

func NewCourseHandler(courses service.CourseService, progression service.ProgressionService) *CourseHandler {
	return &CourseHandler{courses: courses, progression: progression}
}

// ListCourses godoc
// @Summary List courses
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.CourseResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	courses, err := h.courses.ListCourses(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(courses)
}

// GetCourse godoc
// @Summary Get a course
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.CourseResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	course, err := h.courses.GetCourse(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(course)
}

// CreateCourse godoc
// @Summary Create a course
// @Description Administrators only
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param course body dto.CourseRequest true "Course"
// @Success 201 {object} dto.CourseResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req dto.CourseRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	course, err := h.courses.CreateCourse(c.UserContext(), middleware.ActorFrom(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

// UpdateCourse godoc
// @Summary Update a course
// @Description Administrators only. tag_ids replaces the linked tag set.
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Param course body dto.CourseRequest true "Course"
// @Success 200 {object} dto.CourseResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /courses/{id} [put]
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.CourseRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	course, err := h.courses.UpdateCourse(c.UserContext(), middleware.ActorFrom(c), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(course)
}

// StartCourse godoc
// @Summary Start a course
// @Description Creates a course instance for the caller and serves its first question.
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 201 {object} dto.ProgressionState
// @Failure 404 {object} middleware.ErrorResponse
// @Router /courses/{id}/start [post]
func (h *CourseHandler) StartCourse(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	state, err := h.progression.StartCourse(c.UserContext(), middleware.ActorFrom(c), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(state)
}
