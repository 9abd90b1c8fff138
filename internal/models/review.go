package models

import "time"

// Review representa la reseña de un producto
type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	UserID    int64     `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Comment   string    `json:"comment"`
	Helpful   int       `json:"helpful"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewInput es lo que envía el formulario de nueva reseña
type ReviewInput struct {
	UserID   int64  `json:"userId"`
	UserName string `json:"userName" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Title    string `json:"title" binding:"required"`
	Comment  string `json:"comment" binding:"required"`
	Verified bool   `json:"verified"`
}

// ReviewSummary agrupa las reseñas de un producto con sus estadísticas
type ReviewSummary struct {
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"averageRating"`
	Count         int      `json:"count"`
}
