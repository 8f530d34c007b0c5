package response

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

// NewValidator создаёт валидатор, который называет поля по их json-тегам.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
