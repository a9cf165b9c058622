package handler

import (
	"errors"
	"fmt"
	"movie_streaming/config"
	"movie_streaming/constants"
	"movie_streaming/database"
	"movie_streaming/helper"
	"movie_streaming/model"
	"movie_streaming/utils"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func RegisterCustomer(c *fiber.Ctx) error {
	db := database.DB

	// Lấy input từ locals (đã validate ở middleware)
	customerInput, ok := c.Locals("RegisterCustomer").(model.RegisterCustomerInput)
	if !ok {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil, "general")
	}

	var existingCustomer model.Customer
	if err := db.Where("email = ?", customerInput.Email).First(&existingCustomer).Error; err == nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Email đã được sử dụng. Vui lòng chọn email khác.", nil, "email")
	}
	if err := db.Where("name = ?", customerInput.Name).First(&existingCustomer).Error; err == nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Tên đăng nhập đã được sử dụng !", nil, "name")
	}

	hash, err := helper.HashPassword(customerInput.Password)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err, "password")
	}

	newCustomer := new(model.Customer)
	copier.Copy(&newCustomer, &customerInput)
	newCustomer.Password = hash

	if err := db.Create(&newCustomer).Error; err != nil {
		// Xử lý lỗi unique constraint (email/name trùng)
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			if strings.Contains(err.Error(), "email") {
				return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Email đã được sử dụng. Vui lòng chọn email khác.", nil, "email")
			}
			if strings.Contains(err.Error(), "name") {
				return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Tên đăng nhập đã được sử dụng !", nil, "name")
			}
		}

		return utils.ErrorResponseHaveKey(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err, "general")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Tài khoản đã được tạo thành công! Bạn có thể đăng nhập.",
	})
}

func CustomerLogin(c *fiber.Ctx) error {
	loginInput := new(model.CustomerLoginInput)

	if err := c.BodyParser(loginInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, err)
	}

	// Manual validation
	if loginInput.Name == "" || loginInput.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, errors.New("name and password are required"))
	}

	customerModel, err := helper.GetCustomerByName(loginInput.Name)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if customerModel == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INVALID_USERNAME, errors.New("customer not exists"))
	}

	if !helper.CheckPasswordHash(loginInput.Password, customerModel.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_PASSWORD, errors.New("password does not match name"))
	}

	token, err := helper.TokenForCustomer(customerModel)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{
		"message": "Đăng nhập thành công!",
		"token":   token,
		"user": fiber.Map{
			"id":         customerModel.ID,
			"name":       customerModel.Name,
			"email":      customerModel.Email,
			"phone":      customerModel.Phone,
			"expiryDate": customerModel.ExpiryDate,
			"priceId":    customerModel.PriceId,
		},
	})
}

// ResetPasswordSimple đổi mật khẩu khi khớp cả Tên đăng nhập và Email
func ResetPasswordSimple(c *fiber.Ctx) error {
	input, ok := c.Locals("ResetPasswordSimple").(model.ResetPasswordSimpleInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil)
	}

	db := database.DB
	var customer model.Customer
	if err := db.Where("name = ? AND email = ?", input.Name, input.Email).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Tên đăng nhập hoặc Email không đúng.", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	if err := db.Model(&customer).Update("password", hash).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{
		"message": "Mật khẩu đã được đổi thành công!",
	})
}

// ForgotPassword gửi email chứa token đặt lại mật khẩu, hiệu lực 15 phút
func ForgotPassword(c *fiber.Ctx) error {
	input, ok := c.Locals("ForgotPassword").(model.ForgotPasswordRequest)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil)
	}

	customer, err := helper.GetCustomerByEmail(input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if customer == nil {
		// Không tiết lộ email có tồn tại hay không
		return c.JSON(fiber.Map{
			"message": "Nếu email tồn tại, liên kết đặt lại mật khẩu đã được gửi.",
		})
	}

	db := database.DB
	resetToken := model.PasswordResetToken{
		CustomerId: customer.ID,
		Token:      uuid.NewString(),
		ExpiresAt:  time.Now().Add(15 * time.Minute),
	}
	if err := db.Create(&resetToken).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", config.Config("CLIENT_URL"), resetToken.Token)
	utils.SendPasswordResetEmail(customer.Email, utils.PasswordResetData{
		Name:      customer.Name,
		ResetLink: resetLink,
		ExpiresIn: "15 phút",
	})

	return c.JSON(fiber.Map{
		"message": "Nếu email tồn tại, liên kết đặt lại mật khẩu đã được gửi.",
	})
}

func ResetPassword(c *fiber.Ctx) error {
	input, ok := c.Locals("ResetPassword").(model.ResetPasswordRequest)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi parse dữ liệu", nil)
	}

	db := database.DB
	var resetToken model.PasswordResetToken
	if err := db.Where("token = ? AND expires_at > ?", input.Token, time.Now()).First(&resetToken).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Token không hợp lệ hoặc đã hết hạn", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_HASH_PASSWORD, err)
	}

	if err := db.Model(&model.Customer{}).Where("id = ?", resetToken.CustomerId).Update("password", hash).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// Token dùng một lần
	db.Delete(&resetToken)

	return c.JSON(fiber.Map{
		"message": "Mật khẩu đã được đổi thành công!",
	})
}

func GetCurrentCustomer(c *fiber.Ctx) error {
	_, customer := helper.GetInfoCustomerFromToken(c)
	if customer.ID == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Người dùng không tồn tại trong hệ thống", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, customer)
}
