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

// ToggleWatchlist thêm phim vào danh sách yêu thích, gọi lần nữa thì bỏ ra
func ToggleWatchlist(c *fiber.Ctx) error {
	input, ok := c.Locals("WatchInput").(model.WatchInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil)
	}

	db := database.DB

	var movie model.Movie
	if err := db.First(&movie, input.MovieId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MOVIE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var item model.WatchlistItem
	err := db.Where("customer_id = ? AND movie_id = ?", input.CustomerId, input.MovieId).First(&item).Error

	switch {
	case err == nil:
		if err := db.Delete(&item).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		return c.JSON(fiber.Map{
			"message":     "Đã xóa phim khỏi danh sách yêu thích.",
			"inWatchlist": false,
		})

	case errors.Is(err, gorm.ErrRecordNotFound):
		item = model.WatchlistItem{
			CustomerId: input.CustomerId,
			MovieId:    input.MovieId,
		}
		if err := db.Create(&item).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":     "Đã thêm phim vào danh sách yêu thích.",
			"inWatchlist": true,
		})

	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
}

// GetWatchlist trả về các phim trong danh sách yêu thích, mới thêm đứng trước
func GetWatchlist(c *fiber.Ctx) error {
	customerId := c.Locals("inputId").(int)

	db := database.DB
	var movies model.Movies
	if err := db.
		Joins("JOIN watchlist_items ON watchlist_items.movie_id = movies.id").
		Where("watchlist_items.customer_id = ?", customerId).
		Order("watchlist_items.created_at DESC").
		Find(&movies).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(movies)
}

func RemoveFromWatchlist(c *fiber.Ctx) error {
	input, ok := c.Locals("WatchInput").(model.WatchInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil)
	}

	db := database.DB
	result := db.Where("customer_id = ? AND movie_id = ?", input.CustomerId, input.MovieId).
		Delete(&model.WatchlistItem{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Phim không có trong danh sách yêu thích", nil)
	}

	return c.JSON(fiber.Map{
		"message": "Đã xóa phim khỏi danh sách yêu thích.",
	})
}
