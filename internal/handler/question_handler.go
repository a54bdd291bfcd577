package handler

import (
	"quiz-course/internal/dto"
	"quiz-course/internal/middleware"
	"quiz-course/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler handles question authoring requests
type QuestionHandler struct {
	questions service.QuestionService
}

func NewQuestionHandler(questions service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

// GetQuestion godoc
// @Summary Get a question
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	q, err := h.questions.GetQuestion(c.UserContext(), middleware.ActorFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(q)
}

// CreateQuestion godoc
// @Summary Create a question
// @Description The caller becomes the owner.
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param question body dto.QuestionRequest true "Question"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.QuestionRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	q, err := h.questions.CreateQuestion(c.UserContext(), middleware.ActorFrom(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(q)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Description Options, tag links and image links are replaced by the desired sets. Options keep their id when it is sent back.
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Param question body dto.QuestionRequest true "Question"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.QuestionRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	q, err := h.questions.UpdateQuestion(c.UserContext(), middleware.ActorFrom(c), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(q)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags questions
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Success 204
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.questions.DeleteQuestion(c.UserContext(), middleware.ActorFrom(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MyQuestions godoc
// @Summary List the caller's questions
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.QuestionSummary
// @Router /me/questions [get]
func (h *QuestionHandler) MyQuestions(c *fiber.Ctx) error {
	questions, err := h.questions.ListMyQuestions(c.UserContext(), middleware.ActorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(questions)
}

// Vote godoc
// @Summary Vote on a question
// @Description Replaces the caller's earlier vote. Returns the updated counts.
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Param vote body dto.VoteRequest true "Vote"
// @Success 200 {object} dto.VoteResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{id}/vote [post]
func (h *QuestionHandler) Vote(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.VoteRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	votes, err := h.questions.Vote(c.UserContext(), middleware.ActorFrom(c), id, req.Rating)
	if err != nil {
		return err
	}
	return c.JSON(votes)
}

// GetVotes godoc
// @Summary Get the votes of a question
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Success 200 {object} dto.VoteResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /questions/{id}/votes [get]
func (h *QuestionHandler) GetVotes(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	votes, err := h.questions.GetVotes(c.UserContext(), middleware.ActorFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(votes)
}
