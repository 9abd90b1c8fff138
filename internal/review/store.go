// Package review guarda las reseñas en memoria, con datos de demostración.
package review

import (
	"context"
	"math"
	"slices"
	"sync"
	"time"

	"storefront/internal/models"
	"storefront/internal/reactive"
)

type Store struct {
	mu      sync.Mutex
	reviews *reactive.Subject[[]models.Review]
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		reviews: reactive.NewSubject(seedReviews()),
		now:     time.Now,
	}
}

// Reviews expone la lista completa; cada emisión es una copia nueva
func (s *Store) Reviews() reactive.Observable[[]models.Review] {
	return s.reviews
}

func (s *Store) All(_ context.Context) []models.Review {
	return slices.Clone(s.reviews.Value())
}

func (s *Store) GetReviewsByProductID(_ context.Context, productID int64) []models.Review {
	return byProduct(s.reviews.Value(), productID)
}

// GetAverageRating redondea a un decimal; 0 si no hay reseñas
func (s *Store) GetAverageRating(_ context.Context, productID int64) float64 {
	return averageRating(byProduct(s.reviews.Value(), productID))
}

func (s *Store) GetReviewCount(_ context.Context, productID int64) int {
	return len(byProduct(s.reviews.Value(), productID))
}

// Summary agrupa reseñas, promedio y total de un producto
func (s *Store) Summary(_ context.Context, productID int64) models.ReviewSummary {
	list := byProduct(s.reviews.Value(), productID)
	return models.ReviewSummary{
		Reviews:       list,
		AverageRating: averageRating(list),
		Count:         len(list),
	}
}

// AddReview asigna id = máximo + 1 y sella las fechas
func (s *Store) AddReview(_ context.Context, productID int64, in models.ReviewInput) models.Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.reviews.Value()
	var maxID int64
	for _, r := range current {
		maxID = max(maxID, r.ID)
	}

	now := s.now()
	r := models.Review{
		ID:        maxID + 1,
		ProductID: productID,
		UserID:    in.UserID,
		UserName:  in.UserName,
		Rating:    in.Rating,
		Title:     in.Title,
		Comment:   in.Comment,
		Verified:  in.Verified,
		CreatedAt: now,
		UpdatedAt: now,
	}

	next := append(slices.Clone(current), r)
	s.reviews.Next(next)
	return r
}

// MarkHelpful suma uno al contador; un id desconocido no hace nada
func (s *Store) MarkHelpful(_ context.Context, reviewID int64) (models.Review, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.reviews.Value()
	i := slices.IndexFunc(current, func(r models.Review) bool { return r.ID == reviewID })
	if i < 0 {
		return models.Review{}, false
	}

	next := slices.Clone(current)
	next[i].Helpful++
	s.reviews.Next(next)
	return next[i], true
}

func byProduct(reviews []models.Review, productID int64) []models.Review {
	out := make([]models.Review, 0)
	for _, r := range reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out
}

func averageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10
}
