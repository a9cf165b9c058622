package validate

import (
	"fmt"
	"movie_streaming/model"

	"github.com/gofiber/fiber/v2"
)

func CreateMovie() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateMovieInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Dữ liệu không hợp lệ",
				"details": err.Error(),
			})
		}

		c.Locals("CreateMovie", input)

		return c.Next()
	}
}

func EditMovie(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.EditMovieInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Dữ liệu cập nhật không hợp lệ",
				"details": err.Error(),
			})
		}

		c.Locals("EditMovie", input)

		return GetById(key)(c)
	}
}

func WatchInput() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.WatchInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Thiếu thông tin customerId hoặc movieId",
			})
		}

		c.Locals("WatchInput", input)

		return c.Next()
	}
}
