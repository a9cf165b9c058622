package handler

import (
	"errors"
	"movie_streaming/constants"
	"movie_streaming/database"
	"movie_streaming/model"
	"movie_streaming/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetPrices(c *fiber.Ctx) error {
	db := database.DB

	var prices []model.Price
	if err := db.Order("price_id").Find(&prices).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(prices)
}

func GetPriceById(c *fiber.Ctx) error {
	priceId := c.Locals("inputId").(int)

	db := database.DB
	var price model.Price
	if err := db.Where("price_id = ?", priceId).First(&price).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRICE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(price)
}
