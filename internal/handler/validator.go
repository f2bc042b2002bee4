package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to Echo's Validator interface
// so request DTOs can declare `validate` tags and handlers can rely on
// c.Validate.
type Validator struct {
	v *validator.Validate
}

// NewValidator builds the shared validator instance wired into Echo at
// startup.
func NewValidator() *Validator { return &Validator{v: validator.New()} }

// Validate implements echo.Validator.  Failed validations surface as 400
// with the validator's message.
func (val *Validator) Validate(i interface{}) error {
	if err := val.v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
