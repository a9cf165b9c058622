package model

import "time"

type Customer struct {
	DTO
	Name     string `gorm:"unique;not null" json:"name"`
	Email    string `gorm:"unique;not null" json:"email"`
	Phone    string `gorm:"not null" json:"phone"`
	Password string `gorm:"not null" json:"-"`

	// ExpiryDate chỉ được ghi bởi luồng đối soát thanh toán
	ExpiryDate *time.Time `json:"expiryDate"`
	PriceId    int        `gorm:"default:0" json:"priceId"`
}

type Customers []Customer

type RegisterCustomerInput struct {
	Name     string `validate:"required" json:"Name"`
	Email    string `validate:"required,email" json:"Email"`
	Phone    string `validate:"required" json:"Phone"`
	Password string `validate:"required,min=6" json:"Password"`
}

type CustomerLoginInput struct {
	Name     string `json:"Name" validate:"required"`
	Password string `json:"Password" validate:"required"`
}

type ResetPasswordSimpleInput struct {
	Name        string `json:"Name" validate:"required"`
	Email       string `json:"Email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type PasswordResetToken struct {
	DTO
	CustomerId uint      `gorm:"not null" json:"customerId"`
	Token      string    `gorm:"type:varchar(255);not null;unique" json:"token"`
	ExpiresAt  time.Time `gorm:"not null" json:"expiresAt"`
	Customer   Customer  `gorm:"foreignKey:CustomerId" json:"-"`
}
