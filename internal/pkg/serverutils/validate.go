package serverutils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"ask-backend/internal/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json field names in validation messages, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateRequest checks struct tags and folds failures into a single
// ValidationError suitable for a 400 response.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		fields := make([]string, 0, len(invalid))
		for _, f := range invalid {
			fields = append(fields, f.Field())
		}
		verb := "is"
		if len(fields) > 1 {
			verb = "are"
		}
		return apperrors.NewValidation(fmt.Sprintf("%s %s required", strings.Join(fields, " and "), verb))
	}
	return apperrors.NewValidation("invalid request payload")
}
