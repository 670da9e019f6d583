// Package validator adapts go-playground/validator to echo.Validator so
// request DTOs are checked against their struct tags at bind time.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps a single shared validator instance
type CustomValidator struct {
	v *validator.Validate
}

// New builds the validator echo is configured with at startup
func New() *CustomValidator {
	return &CustomValidator{v: validator.New()}
}

// Validate checks the struct tags of a bound request
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
