// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"maintenance-system/internal/entities"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterCustomValidations регистрирует теги закрытых множеств и формат email.
func RegisterCustomValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"team_specialization":  enumRule(entities.TeamSpecialization.IsValid),
		"equipment_department": enumRule(entities.Department.IsValid),
		"equipment_category":   enumRule(entities.EquipmentCategory.IsValid),
		"equipment_status":     enumRule(entities.EquipmentStatus.IsValid),
		"request_type":         enumRule(entities.RequestType.IsValid),
		"request_priority":     enumRule(entities.Priority.IsValid),
		"request_stage":        enumRule(entities.Stage.IsValid),
		"user_role":            enumRule(entities.UserRole.IsValid),
		"email":                isGoodEmailFormat,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func enumRule[T ~string](valid func(T) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return valid(T(fl.Field().String()))
	}
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}
