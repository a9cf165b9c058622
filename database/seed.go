package database

import (
	"log"
	"movie_streaming/model"
	"movie_streaming/utils"

	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	prices := []model.Price{
		{PriceId: 1, Name: "monthly", PriceAmount: 50000, Duration: 1, Unit: "month", Image: utils.StringPtr("/images/plan-monthly.png")},
		{PriceId: 2, Name: "yearly", PriceAmount: 500000, Duration: 1, Unit: "year", Image: utils.StringPtr("/images/plan-yearly.png")},
	}

	for _, price := range prices {
		// Tạo mới nếu không tồn tại
		if err := db.Where(model.Price{PriceId: price.PriceId}).FirstOrCreate(&price).Error; err != nil {
			log.Println("failed to seed data for price:", price.Name, "error:", err)
		}
	}
}
