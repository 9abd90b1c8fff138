package review

import (
	"time"

	"storefront/internal/models"
)

func day(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

func seedReviews() []models.Review {
	reviews := []models.Review{
		{
			ID: 1, ProductID: 1, UserID: 1, UserName: "María González", Rating: 5,
			Title:   "Excelente calidad y entrega rápida",
			Comment: "Excelente producto, muy buena calidad y llegó antes de lo esperado. ¡Recomendado!",
			Helpful: 12, Verified: true, CreatedAt: day("2024-11-01"),
		},
		{
			ID: 2, ProductID: 1, UserID: 2, UserName: "Carlos Rodríguez", Rating: 4,
			Title:   "Buena bolsa, pequeño detalle en el color",
			Comment: "Buena bolsa, resistente y útil. El único detalle es que esperaba un color diferente.",
			Helpful: 8, Verified: true, CreatedAt: day("2024-11-05"),
		},
		{
			ID: 3, ProductID: 2, UserID: 3, UserName: "Ana López", Rating: 5,
			Title:   "Perfecta para mis plantas",
			Comment: "Perfecta para mis plantas. Es biodegradable y se ve muy bien en el jardín.",
			Helpful: 15, Verified: true, CreatedAt: day("2024-11-03"),
		},
		{
			ID: 4, ProductID: 3, UserID: 4, UserName: "Pedro Martínez", Rating: 4,
			Title:   "Elegante y cómoda",
			Comment: "Cartera muy elegante y cómoda. El cuero vegano se siente igual que el cuero natural.",
			Helpful: 6, Verified: false, CreatedAt: day("2024-11-07"),
		},
		{
			ID: 5, ProductID: 4, UserID: 5, UserName: "Laura Sánchez", Rating: 5,
			Title:   "Mantiene el agua fría por horas",
			Comment: "La botella mantiene el agua fría por horas. Perfecta para el día a día.",
			Helpful: 20, Verified: true, CreatedAt: day("2024-11-02"),
		},
	}
	for i := range reviews {
		reviews[i].UpdatedAt = reviews[i].CreatedAt
	}
	return reviews
}
