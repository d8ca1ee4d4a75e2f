package validation

import (
	"regexp"

	"moneytrack/internal/models"

	"github.com/go-playground/validator/v10"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// New builds the validator used by the HTTP layer with the project's custom
// rules registered.
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("currency_code", validateCurrencyCode)
	_ = v.RegisterValidation("category_name", validateCategoryName)
	return v
}

// validateCurrencyCode checks the ISO-4217 shape (three uppercase letters).
// Membership in the supported set is the currency registry's concern.
func validateCurrencyCode(fl validator.FieldLevel) bool {
	return currencyCodePattern.MatchString(fl.Field().String())
}

func validateCategoryName(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) >= models.MinCategoryNameLength
}
