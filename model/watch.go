package model

import "time"

// Mỗi dòng là một phim trong danh sách của khách hàng.
// Unique index (customer_id, movie_id) đảm bảo không trùng phim.

type WatchlistItem struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	CustomerId uint      `gorm:"not null;uniqueIndex:idx_watchlist_customer_movie" json:"customerId"`
	MovieId    uint      `gorm:"not null;uniqueIndex:idx_watchlist_customer_movie" json:"movieId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type WatchHistoryItem struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	CustomerId uint      `gorm:"not null;uniqueIndex:idx_history_customer_movie" json:"customerId"`
	MovieId    uint      `gorm:"not null;uniqueIndex:idx_history_customer_movie" json:"movieId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type WatchInput struct {
	CustomerId uint `json:"customerId" validate:"required,gt=0"`
	MovieId    uint `json:"movieId" validate:"required,gt=0"`
}
