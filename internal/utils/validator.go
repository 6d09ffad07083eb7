package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"freshtrack-backend/domain"

	"github.com/go-playground/validator/v10"
)

var (
	Validate      *validator.Validate
	validatorOnce sync.Once
)

func InitValidator() {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(fieldName)

		_ = v.RegisterValidation("grocery_category", func(fl validator.FieldLevel) bool {
			return domain.IsGroceryCategory(fl.Field().String())
		})
		_ = v.RegisterValidation("storage_location", func(fl validator.FieldLevel) bool {
			return domain.IsStorageLocation(fl.Field().String())
		})

		Validate = v
	})
}

// fieldName reports fields by their wire name.
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "query", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// ValidateStruct runs the shared validator and converts failures into a
// *domain.ValidationError.
func ValidateStruct(s any) error {
	InitValidator()
	return TranslateValidation(Validate.Struct(s))
}

func TranslateValidation(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return domain.NewValidationErrors(fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "grocery_category":
		return "must be one of: " + strings.Join(domain.GroceryCategories, ", ")
	case "storage_location":
		return "must be one of: " + strings.Join(domain.StorageLocations, ", ")
	default:
		return "failed on " + fe.Tag()
	}
}
