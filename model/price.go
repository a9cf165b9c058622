package model

type Price struct {
	DTO
	PriceId     int     `gorm:"unique;not null" json:"priceId"`
	PriceAmount int64   `gorm:"not null" json:"priceAmount"`
	Name        string  `gorm:"not null" json:"name"`
	Duration    int     `gorm:"not null" json:"duration"`
	Unit        string  `gorm:"not null" json:"unit"` // day | month | year
	Image       *string `json:"image"`
}
