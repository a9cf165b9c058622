package handler

import (
	"errors"
	"movie_streaming/constants"
	"movie_streaming/database"
	"movie_streaming/model"
	"movie_streaming/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Hai lượt xem cùng một phim cách nhau dưới ngưỡng này coi như một lượt
const historyDedupWindow = 10 * time.Second

// AddWatchHistory ghi nhận lượt xem phim. Phim đã có trong lịch sử thì được
// đẩy lên đầu thay vì tạo dòng mới.
func AddWatchHistory(c *fiber.Ctx) error {
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

	now := time.Now()

	var item model.WatchHistoryItem
	err := db.Where("customer_id = ? AND movie_id = ?", input.CustomerId, input.MovieId).First(&item).Error

	switch {
	case err == nil:
		// Client hay bắn trùng khi player reload, bỏ qua nếu quá gần nhau
		if now.Sub(item.UpdatedAt) < historyDedupWindow {
			return c.JSON(fiber.Map{
				"message": "Lượt xem đã được ghi nhận.",
			})
		}
		if err := db.Model(&item).Update("updated_at", now).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		return c.JSON(fiber.Map{
			"message": "Lượt xem đã được ghi nhận.",
		})

	case errors.Is(err, gorm.ErrRecordNotFound):
		item = model.WatchHistoryItem{
			CustomerId: input.CustomerId,
			MovieId:    input.MovieId,
		}
		if err := db.Create(&item).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Lượt xem đã được ghi nhận.",
		})

	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
}

// GetWatchHistory trả về lịch sử xem, phim xem gần nhất đứng trước
func GetWatchHistory(c *fiber.Ctx) error {
	customerId := c.Locals("inputId").(int)

	db := database.DB
	var movies model.Movies
	if err := db.
		Joins("JOIN watch_history_items ON watch_history_items.movie_id = movies.id").
		Where("watch_history_items.customer_id = ?", customerId).
		Order("watch_history_items.updated_at DESC").
		Find(&movies).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(movies)
}

func RemoveFromWatchHistory(c *fiber.Ctx) error {
	input, ok := c.Locals("WatchInput").(model.WatchInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil)
	}

	db := database.DB
	result := db.Where("customer_id = ? AND movie_id = ?", input.CustomerId, input.MovieId).
		Delete(&model.WatchHistoryItem{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Phim không có trong lịch sử xem", nil)
	}

	return c.JSON(fiber.Map{
		"message": "Đã xóa phim khỏi lịch sử xem.",
	})
}

// ClearWatchHistory xóa toàn bộ lịch sử xem của một khách hàng
func ClearWatchHistory(c *fiber.Ctx) error {
	customerId := c.Locals("inputId").(int)

	db := database.DB
	if err := db.Where("customer_id = ?", customerId).
		Delete(&model.WatchHistoryItem{}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{
		"message": "Đã xóa toàn bộ lịch sử xem.",
	})
}
