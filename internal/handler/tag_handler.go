package handler

import (
	"quiz-course/internal/dto"
	"quiz-course/internal/middleware"
	"quiz-course/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TagHandler struct {
	tags service.TagService
}

func NewTagHandler(tags service.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

// FindTags godoc
// @Summary Find tags
// @Tags tags
// @Produce json
// @Security ApiKeyAuth
// @Param q query string false "Name contains"
// @Success 200 {array} dto.TagResponse
// @Router /tags [get]
func (h *TagHandler) FindTags(c *fiber.Ctx) error {
	tags, err := h.tags.FindTags(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(tags)
}

// GetTag godoc
// @Summary Get a tag
// @Tags tags
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Tag ID"
// @Success 200 {object} dto.TagResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /tags/{id} [get]
func (h *TagHandler) GetTag(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	tag, err := h.tags.GetTag(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(tag)
}

// CreateTag godoc
// @Summary Create a tag
// @Description Administrators only
// @Tags tags
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param tag body dto.TagRequest true "Tag"
// @Success 201 {object} dto.TagResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /tags [post]
func (h *TagHandler) CreateTag(c *fiber.Ctx) error {
	var req dto.TagRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	tag, err := h.tags.CreateTag(c.UserContext(), middleware.ActorFrom(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// UpdateTag godoc
// @Summary Update a tag
// @Description Administrators only
// @Tags tags
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Tag ID"
// @Param tag body dto.TagRequest true "Tag"
// @Success 200 {object} dto.TagResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /tags/{id} [put]
func (h *TagHandler) UpdateTag(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.TagRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	tag, err := h.tags.UpdateTag(c.UserContext(), middleware.ActorFrom(c), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(tag)
}
