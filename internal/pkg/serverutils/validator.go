package serverutils

import (
	"errors"
	"strings"

	"notevault-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequest runs struct tag validation and converts failures into a 400
// with the offending field names. Validation always happens before any store
// interaction.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return apperror.NewInternal("request validation failed", err)
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		return apperror.NewValidation("Missing or invalid fields: " + strings.Join(fields, ", "))
	}

	return apperror.NewValidation("Invalid request")
}
