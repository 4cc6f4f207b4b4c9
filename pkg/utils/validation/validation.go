package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	slugRe   = regexp.MustCompile(`^[a-z0-9-]+$`)
)

func init() {
	validate = validator.New()

	// reporta los errores con el nombre json del campo
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("slugfmt", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
}

// Validate devuelve un mapa campo → mensaje, o nil si el payload es válido.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errores := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		errores[fe.Field()] = message(fe)
	}
	return errores
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Este campo es requerido"
	case "email":
		return "Email inválido"
	case "url":
		return "URL inválida"
	case "slugfmt":
		return "Solo letras minúsculas, números y guiones"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Selecciona al menos %s elemento(s)", fe.Param())
		}
		return fmt.Sprintf("Debe tener al menos %s caracteres", fe.Param())
	}
	return "Valor inválido"
}
