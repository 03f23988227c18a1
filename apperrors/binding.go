package apperrors

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
)

// FromBinding converts a gin binding failure into a ValidationError.
func FromBinding(err error) *AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		return Validation("invalid request body").WithFieldErrors(fields)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return Validation("invalid type for field %s", typeErr.Field)
	}
	if appErr, ok := IsAppError(err); ok {
		return appErr
	}
	return Validation("malformed request body").WithCause(err)
}
