package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct validates a request struct and converts failures into a
// ValidationError listing the offending fields.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fields []string
	for _, err := range err.(validator.ValidationErrors) {
		field := strings.ToLower(err.Field())
		tag := err.Tag()
		param := err.Param()

		switch tag {
		case "required":
			fields = append(fields, field)
		case "min":
			fields = append(fields, field+" (at least "+param+")")
		case "max":
			fields = append(fields, field+" (at most "+param+")")
		case "email":
			fields = append(fields, field+" (must be a valid email)")
		case "url":
			fields = append(fields, field+" (must be a valid URL)")
		case "oneof":
			fields = append(fields, field+" (must be one of "+param+")")
		default:
			fields = append(fields, field+" (invalid)")
		}
	}

	return NewValidationError(fields...)
}
