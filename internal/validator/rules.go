package validator

import (
	"strings"

	"farmwork_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules registers the domain validation tags on the given
// validator instance. Empty values pass; 'required' handles presence.
func registerCustomRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"is-salary-type":     validateSalaryType,
		"is-alert-frequency": validateAlertFrequency,
		"is-us-state":        validateUSState,
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func validateSalaryType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.SalaryType(value) {
	case models.SalaryTypeAnnual, models.SalaryTypeHourly:
		return true
	default:
		return false
	}
}

func validateAlertFrequency(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.AlertFrequency(value) {
	case models.AlertDaily, models.AlertWeekly:
		return true
	default:
		return false
	}
}

func validateUSState(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	// ResolveState echoes unknown input back in both positions; known input
	// always yields a distinct code/name pair.
	code, name := models.ResolveState(value)
	lower := strings.ToLower(strings.TrimSpace(value))
	return code != name && (lower == code || lower == name)
}
