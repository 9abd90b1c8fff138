// Package checkout valida el formulario de pago y simula el envío de la orden.
// No se procesa ningún pago.
package checkout

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"storefront/internal/models"
)

var ErrEmptyCart = errors.New("cart is empty")

// Cart es lo que el checkout necesita del carrito de la sesión
type Cart interface {
	Snapshot() models.CartSnapshot
	// Checkout toma el contenido y vacía el carrito en un solo paso
	Checkout(ctx context.Context) models.CartSnapshot
}

// Order es el resumen de una orden simulada
type Order struct {
	Number        string                `json:"orderNumber"`
	Customer      Customer              `json:"customer"`
	PaymentMethod string                `json:"paymentMethod"`
	Items         []models.CartLineItem `json:"items"`
	Total         float64               `json:"total"`
	Count         int                   `json:"count"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// Customer es el formulario sin los datos de la tarjeta
type Customer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

type Service struct {
	validate *validator.Validate
	logger   *log.Logger
	now      func() time.Time
	newID    func() string
}

func NewService(logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		validate: newValidator(),
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Validate aplica los valores por defecto del formulario y lo valida
func (s *Service) Validate(form *Form) error {
	if form.Country == "" {
		form.Country = DefaultCountry
	}
	if form.PaymentMethod == "" {
		form.PaymentMethod = PaymentCard
	}
	if form.PaymentMethod != PaymentCard {
		form.Card = nil
	}
	if err := s.validate.Struct(form); err != nil {
		return validationError(err)
	}
	return nil
}

// Submit valida el formulario, registra la orden y vacía el carrito.
// Un carrito vacío o un formulario inválido no modifican nada. La orden
// lleva exactamente lo que se retiró del carrito.
func (s *Service) Submit(ctx context.Context, cart Cart, form Form) (Order, error) {
	if len(cart.Snapshot().Items) == 0 {
		return Order{}, ErrEmptyCart
	}
	if err := s.Validate(&form); err != nil {
		return Order{}, err
	}

	snap := cart.Checkout(ctx)
	if len(snap.Items) == 0 {
		return Order{}, ErrEmptyCart
	}

	order := Order{
		Number: s.newID(),
		Customer: Customer{
			FirstName: form.FirstName,
			LastName:  form.LastName,
			Email:     form.Email,
			Phone:     form.Phone,
			Address:   form.Address,
			City:      form.City,
			State:     form.State,
			ZipCode:   form.ZipCode,
			Country:   form.Country,
		},
		PaymentMethod: form.PaymentMethod,
		Items:         snap.Items,
		Total:         snap.Total,
		Count:         snap.Count,
		CreatedAt:     s.now(),
	}

	s.logger.Printf("🧾 Procesando orden %s: %d items, total %.2f, pago %s",
		order.Number, order.Count, order.Total, order.PaymentMethod)

	return order, nil
}
