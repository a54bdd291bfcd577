package handler

import (
	"quiz-course/internal/dto"
	"quiz-course/internal/middleware"
	"quiz-course/internal/service"

	"github.com/gofiber/fiber/v2"
)

// InstanceHandler serves course instances and the questions served within them.
type InstanceHandler struct {
	progression service.ProgressionService
}

func NewInstanceHandler(progression service.ProgressionService) *InstanceHandler {
	return &InstanceHandler{progression: progression}
}

// Next godoc
// @Summary Advance an instance
// @Description Serves the next question, or completes the instance when the target is reached or nothing is left.
// @Tags instances
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Instance ID"
// @Success 200 {object} dto.ProgressionState
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /instances/{id}/next [post]
func (h *InstanceHandler) Next(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	state, err := h.progression.Advance(c.UserContext(), middleware.ActorFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(state)
}

// Result godoc
// @Summary Get the result of an instance
// @Tags instances
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Instance ID"
// @Success 200 {object} dto.CourseResultResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /instances/{id}/result [get]
func (h *InstanceHandler) Result(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	result, err := h.progression.GetCourseResult(c.UserContext(), middleware.ActorFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// Delete godoc
// @Summary Delete an instance
// @Tags instances
// @Security ApiKeyAuth
// @Param id path int true "Instance ID"
// @Success 204
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /instances/{id} [delete]
func (h *InstanceHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.progression.DeleteInstance(c.UserContext(), middleware.ActorFrom(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MyInstances godoc
// @Summary List the caller's course instances
// @Tags instances
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.InstanceSummaryResponse
// @Router /me/instances [get]
func (h *InstanceHandler) MyInstances(c *fiber.Ctx) error {
	instances, err := h.progression.ListMyInstances(c.UserContext(), middleware.ActorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(instances)
}

// GetQuestion godoc
// @Summary Get a served question
// @Description The underlying question id is only revealed once the instance is completed.
// @Tags instance-questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Instance question ID"
// @Success 200 {object} dto.ServedQuestionView
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /instance-questions/{id} [get]
func (h *InstanceHandler) GetQuestion(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	view, err := h.progression.GetServedQuestion(c.UserContext(), middleware.ActorFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// Answer godoc
// @Summary Answer a served question
// @Description Grades the answer and advances the instance.
// @Tags instance-questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Instance question ID"
// @Param answer body dto.AnswerRequest true "One checked flag per option, in option order"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /instance-questions/{id}/answer [post]
func (h *InstanceHandler) Answer(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.AnswerRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	resp, err := h.progression.SubmitAnswer(c.UserContext(), middleware.ActorFrom(c), id, req.Answers)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Solution godoc
// @Summary Answer a served question and get its solution
// @Description Grades the answer without advancing and returns the full question.
// @Tags instance-questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Instance question ID"
// @Param answer body dto.AnswerRequest true "One checked flag per option, in option order"
// @Success 200 {object} dto.SolutionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /instance-questions/{id}/solution [post]
func (h *InstanceHandler) Solution(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.AnswerRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	resp, err := h.progression.AnswerAndGetSolution(c.UserContext(), middleware.ActorFrom(c), id, req.Answers)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
