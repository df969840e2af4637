// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	domainerrors "passport/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// RequestValidator validates bound request DTOs against their struct tags.
type RequestValidator struct {
	validate *validator.Validate
}

// New creates the validator echo will call for every c.Validate(...).
func New() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Violations map to the invalid-input
// error so the central error handler renders them as a 400.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrInvalidInput.WithDetails(err.Error())
	}

	return nil
}
