package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/socialchef/sous/internal/errors"
)

// MaxFoodLength is the longest food name accepted, in characters.
const MaxFoodLength = 200

// FoodQuery is a single user request for a recipe.
type FoodQuery struct {
	Food string `validate:"required,max=200,nocontrol"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("nocontrol", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsControl)
	})
	return v
}

// ValidateFood trims the food name and checks it. The returned name is what
// the pipeline should use.
func ValidateFood(food string) (string, error) {
	q := FoodQuery{Food: strings.TrimSpace(food)}

	err := validate.Struct(q)
	if err == nil {
		return q.Food, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", apperrors.NewInternalError("failed to validate food name", "VALIDATION_FAILED", err)
	}
	return "", foodError(verrs[0])
}

func foodError(e validator.FieldError) *apperrors.AppError {
	switch e.Tag() {
	case "required":
		return apperrors.NewValidationError("food is required", "FOOD_REQUIRED",
			"Enter the name of a dish, for example Lasagna.")
	case "max":
		return apperrors.NewValidationError(
			fmt.Sprintf("food must be at most %s characters", e.Param()),
			"FOOD_TOO_LONG",
			"Use the name of the dish rather than a description.")
	case "nocontrol":
		return apperrors.NewValidationError("food contains control characters", "FOOD_INVALID_CHARACTERS",
			"Remove line breaks and other non-printable characters.")
	default:
		return apperrors.NewValidationError(
			fmt.Sprintf("food failed validation '%s'", e.Tag()),
			"FOOD_INVALID", "")
	}
}
