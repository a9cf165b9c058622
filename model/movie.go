package model

type Movie struct {
	DTO
	Name        string   `gorm:"not null" json:"name"`
	Slug        string   `gorm:"unique;not null" json:"slug"`
	Description string   `gorm:"not null" json:"description"`
	Rating      *float64 `json:"rating"`
	Image       string   `gorm:"not null" json:"image"`
	MovieUrl    string   `gorm:"not null" json:"movieUrl"`
	Genres      []string `gorm:"serializer:json" json:"genres"`
}

type Movies []Movie

type CreateMovieInput struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Image       string   `json:"image" validate:"required"`
	MovieUrl    string   `json:"movieUrl" validate:"required"`
	Genres      []string `json:"genres"`
}

type EditMovieInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Image       *string  `json:"image"`
	MovieUrl    *string  `json:"movieUrl"`
	Genres      []string `json:"genres"`
}
