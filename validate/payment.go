package validate

import (
	"fmt"
	"movie_streaming/model"

	"github.com/gofiber/fiber/v2"
)

func CreatePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreatePaymentInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Không thể phân tích yêu cầu: %s", err.Error()),
			})
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Thiếu các trường bắt buộc để tạo giao dịch: " + err.Error(),
			})
		}

		c.Locals("CreatePayment", input)

		return c.Next()
	}
}

func UpdatePaymentStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdatePaymentStatusInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Không thể phân tích yêu cầu: %s", err.Error()),
			})
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Thiếu các trường bắt buộc để cập nhật trạng thái: " + err.Error(),
			})
		}

		c.Locals("UpdatePaymentStatus", input)

		return c.Next()
	}
}
