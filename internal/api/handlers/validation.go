package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// В ошибках используем имена полей из json тегов
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := types.NewTimeStringFromString(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
		_, err := types.ParseDate(fl.Field().String())
		return err == nil
	})

	return v
}

// Validate проверяет структуру по validate тегам.
// Возвращает nil или причины по полям
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Namespace()
		if i := strings.Index(name, "."); i >= 0 {
			name = name[i+1:]
		}
		if _, exists := fields[name]; !exists {
			fields[name] = reason(fe)
		}
	}
	return fields
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "hhmm":
		return "must be in HH:MM format"
	case "ymd":
		return "must be in YYYY-MM-DD format"
	default:
		return "is invalid"
	}
}
