package handler

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"movie_streaming/constants"
	"movie_streaming/database"
	"movie_streaming/helper"
	"movie_streaming/model"
	"movie_streaming/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	cldOnce sync.Once
	cld     *cloudinary.Cloudinary
)

func getCloudinary() *cloudinary.Cloudinary {
	cldOnce.Do(func() {
		cld = helper.InitCloudinary()
	})
	return cld
}

// GenerateSignature ký bộ tham số upload để client đẩy file thẳng lên
// Cloudinary mà không cần đi qua server
func GenerateSignature(c *fiber.Ctx) error {
	type SigParams struct {
		Folder       string `json:"folder"`
		PublicID     string `json:"public_id"`
		ResourceType string `json:"resource_type"` // Parse but don't sign
	}

	var params SigParams
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Params không hợp lệ", err)
	}

	timestamp := time.Now().Unix()
	timestampStr := fmt.Sprintf("%d", timestamp)

	paramMap := make(map[string]string)
	if params.Folder != "" {
		paramMap["folder"] = params.Folder // Raw value, no escape
	}
	if params.PublicID != "" {
		paramMap["public_id"] = params.PublicID
	}
	paramMap["timestamp"] = timestampStr

	keys := make([]string, 0, len(paramMap))
	for k := range paramMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var stringToSign strings.Builder
	for i, k := range keys {
		if i > 0 {
			stringToSign.WriteString("&")
		}
		stringToSign.WriteString(k)
		stringToSign.WriteString("=")
		stringToSign.WriteString(paramMap[k])
	}
	stringToSign.WriteString(os.Getenv("CLOUDINARY_API_SECRET"))

	h := sha1.New()
	h.Write([]byte(stringToSign.String()))
	signature := hex.EncodeToString(h.Sum(nil))

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    os.Getenv("CLOUDINARY_API_KEY"),
		"cloudName": os.Getenv("CLOUDINARY_CLOUD_NAME"),
	})
}

// UploadMoviePoster tải poster lên Cloudinary và cập nhật ảnh của phim
func UploadMoviePoster(c *fiber.Ctx) error {
	movieId := c.Locals("inputId").(int)

	db := database.DB
	var movie model.Movie
	if err := db.First(&movie, movieId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MOVIE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	posterFile, err := c.FormFile("poster")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Không thể lấy file poster", err)
	}
	if posterFile.Size > 5*1024*1024 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "File vượt quá 5MB", nil)
	}

	posterReader, err := posterFile.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Không thể đọc file poster: %s", err.Error()), err)
	}
	defer posterReader.Close()

	result, err := getCloudinary().Upload.Upload(context.Background(), posterReader, uploader.UploadParams{
		Folder:       "movies/posters",
		PublicID:     fmt.Sprintf("movie_%d_poster_%d", movie.ID, time.Now().Unix()),
		ResourceType: "image",
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Không thể tải poster lên Cloudinary: %v", err), err)
	}

	if err := db.Model(&movie).Update("image", result.SecureURL).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	movie.Image = result.SecureURL

	return c.JSON(fiber.Map{
		"message": "Upload poster phim thành công",
		"data":    movie,
	})
}
