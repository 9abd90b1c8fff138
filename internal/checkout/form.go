package checkout

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	PaymentCard     = "card"
	PaymentPayPal   = "paypal"
	PaymentTransfer = "transfer"

	DefaultCountry = "Colombia"
)

var (
	phonePattern  = regexp.MustCompile(`^[\+]?[0-9\-\(\)\s]+$`)
	zipPattern    = regexp.MustCompile(`^[0-9]{5}(-[0-9]{4})?$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])\/[0-9]{2}$`)
)

// Form es el formulario de checkout: datos personales, envío, pago y términos
type Form struct {
	FirstName     string       `json:"firstName" validate:"required,min=2"`
	LastName      string       `json:"lastName" validate:"required,min=2"`
	Email         string       `json:"email" validate:"required,email"`
	Phone         string       `json:"phone" validate:"required,phone"`
	Address       string       `json:"address" validate:"required,min=10"`
	City          string       `json:"city" validate:"required"`
	State         string       `json:"state" validate:"required"`
	ZipCode       string       `json:"zipCode" validate:"required,zipcode"`
	Country       string       `json:"country" validate:"required"`
	PaymentMethod string       `json:"paymentMethod" validate:"required,oneof=card paypal transfer"`
	Card          *CardDetails `json:"card,omitempty"`
	AcceptTerms   bool         `json:"acceptTerms" validate:"required"`
}

// CardDetails solo se exige cuando el método de pago es tarjeta
type CardDetails struct {
	Number string `json:"number" validate:"required,len=16,numeric"`
	Expiry string `json:"expiry" validate:"required,expiry"`
	CVV    string `json:"cvv" validate:"required,min=3,max=4,numeric"`
	Name   string `json:"name" validate:"required,min=2"`
}

// ValidationError agrupa los campos inválidos del formulario
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	slices.Sort(names)
	return "invalid checkout form: " + strings.Join(names, ", ")
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	must(v.RegisterValidation("phone", matches(phonePattern)))
	must(v.RegisterValidation("zipcode", matches(zipPattern)))
	must(v.RegisterValidation("expiry", matches(expiryPattern)))

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		f := sl.Current().Interface().(Form)
		if f.PaymentMethod == PaymentCard && f.Card == nil {
			sl.ReportError(f.Card, "card", "Card", "required", "")
		}
	}, Form{})

	return v
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// validationError traduce los errores del validador a un mapa campo -> mensaje
func validationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		name := fe.Namespace()
		if _, rest, ok := strings.Cut(name, "."); ok {
			name = rest
		}
		fields[name] = message(name, fe)
	}
	return &ValidationError{Fields: fields}
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must have at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s characters", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must have exactly %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is not valid", field)
	}
}
