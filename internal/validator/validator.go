package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// flight numbers look like "AA100" or "KLM1234"
var flightNumberPattern = regexp.MustCompile(`^[A-Z]{2,3}[0-9]{1,4}$`)

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("flight_number", validateFlightNumber)
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func validateFlightNumber(fl validator.FieldLevel) bool {
	return flightNumberPattern.MatchString(fl.Field().String())
}
