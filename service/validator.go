package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Fields.Error())
}

func validateStruct(payload interface{}) error {
	if err := validate.Struct(payload); err != nil {
		if fields, ok := err.(validator.ValidationErrors); ok {
			return &ValidationError{Fields: fields}
		}
		return err
	}
	return nil
}
