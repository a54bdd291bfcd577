package handler

import (
	"strconv"

	"quiz-course/internal/domain"
	"quiz-course/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// idParam parses a positive int64 path parameter.
func idParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewInvalidInputError("invalid " + name + " parameter").WithContext(name, c.Params(name))
	}
	return id, nil
}

// bindJSON decodes the request body into dst and validates it.
func bindJSON(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	return validation.Default().Struct(dst)
}
