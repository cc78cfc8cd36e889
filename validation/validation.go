// Package validation wraps go-playground/validator with the application's
// custom rules and formats rule failures into one ValidationError message.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/user/scribe-go/apperror"
)

// usernameRegex restricts usernames to letters, digits and underscores.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Validator validates request payloads against their struct tags.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the custom "username" tag registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration cannot fail for a plain func with a non-empty tag name.
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Struct validates s and converts any rule failures into a single
// ValidationError listing every offending field.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	ok := false
	if e, isValidation := err.(validator.ValidationErrors); isValidation {
		verrs, ok = e, true
	}
	if !ok {
		// InvalidValidationError: the payload was not a validatable struct.
		return apperror.NewBadRequestError("invalid request payload", err)
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, formatFieldError(fe))
	}
	return apperror.NewValidationError("validation failed: "+strings.Join(messages, ", "), nil)
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "username":
		return fmt.Sprintf("%s may only contain letters, digits and underscores", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
