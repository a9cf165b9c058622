package handler

import (
	"errors"
	"movie_streaming/constants"
	"movie_streaming/database"
	"movie_streaming/helper"
	"movie_streaming/model"
	"movie_streaming/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// Lấy danh sách phim, hỗ trợ tìm theo tên và phân trang
func GetMovies(c *fiber.Ctx) error {
	db := database.DB

	pagination := model.Pagination{}
	if limit := c.QueryInt("limit"); limit > 0 {
		pagination.Limit = utils.Ptr(limit)
	}
	if page := c.QueryInt("page"); page > 0 {
		pagination.Page = utils.Ptr(page)
	}

	query := db.Model(&model.Movie{})
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var movies model.Movies
	if err := utils.ApplyPagination(query, pagination.Limit, pagination.Page).
		Order("created_at DESC").
		Find(&movies).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(model.ResponseCustom{
		Rows:       movies,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: totalCount,
	})
}

func GetMovieById(c *fiber.Ctx) error {
	movieId := c.Locals("inputId").(int)

	db := database.DB
	var movie model.Movie
	if err := db.First(&movie, movieId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MOVIE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(movie)
}

func GetMovieBySlug(c *fiber.Ctx) error {
	movieSlug := c.Params("slug")

	db := database.DB
	var movie model.Movie
	if err := db.Where("slug = ?", movieSlug).First(&movie).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MOVIE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(movie)
}

// GetMovieVideo chuyển hướng sang URL stream của phim
func GetMovieVideo(c *fiber.Ctx) error {
	movieId := c.Locals("inputId").(int)

	db := database.DB
	var movie model.Movie
	if err := db.First(&movie, movieId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MOVIE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if movie.MovieUrl == "" {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không có video cho movie này", nil)
	}

	return c.Redirect(movie.MovieUrl)
}

// Thêm một phim mới
func CreateMovie(c *fiber.Ctx) error {
	input, ok := c.Locals("CreateMovie").(model.CreateMovieInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil)
	}

	db := database.DB

	newMovie := new(model.Movie)
	copier.Copy(&newMovie, &input)
	newMovie.Slug = helper.GenerateUniqueMovieSlug(db, input.Name)

	if err := db.Create(&newMovie).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi khi thêm movie", err)
	}

	return c.Status(fiber.StatusCreated).JSON(newMovie)
}

// Cập nhật thông tin một phim
func EditMovie(c *fiber.Ctx) error {
	input, ok := c.Locals("EditMovie").(model.EditMovieInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil)
	}
	movieId := c.Locals("inputId").(int)

	db := database.DB
	var movie model.Movie
	if err := db.First(&movie, movieId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy movie để cập nhật", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if input.Name != nil && *input.Name != movie.Name {
		movie.Name = *input.Name
		movie.Slug = helper.GenerateUniqueMovieSlug(db, *input.Name)
	}
	if input.Description != nil {
		movie.Description = *input.Description
	}
	if input.Rating != nil {
		movie.Rating = input.Rating
	}
	if input.Image != nil {
		movie.Image = *input.Image
	}
	if input.MovieUrl != nil {
		movie.MovieUrl = *input.MovieUrl
	}
	if input.Genres != nil {
		movie.Genres = input.Genres
	}

	if err := db.Save(&movie).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi khi cập nhật movie", err)
	}

	return c.JSON(movie)
}

// Xóa một phim
func DeleteMovie(c *fiber.Ctx) error {
	movieId := c.Locals("inputId").(int)

	db := database.DB
	result := db.Delete(&model.Movie{}, movieId)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi khi xóa movie", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy movie để xóa", nil)
	}

	return c.JSON(fiber.Map{
		"message": "Movie đã được xóa thành công",
	})
}
