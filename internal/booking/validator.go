// Package booking validates the customer booking form before it is
// forwarded to the workshop API.
package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"voltworks/pkg/logger"
	"voltworks/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type Validator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewValidator(log *logger.Logger) *Validator {
	v := validator.New()

	if err := v.RegisterValidation("vin", validateVIN); err != nil {
		log.Fatal("Failed to register 'vin' validator", "error", err)
	}

	return &Validator{
		validate: v,
		logger:   log,
	}
}

// VIN check digits never use I, O or Q; they read too much like 1 and 0
// on a windshield etching.
func validateVIN(fl validator.FieldLevel) bool {
	vin := strings.ToUpper(fl.Field().String())
	if len(vin) != 17 {
		return false
	}
	for _, r := range vin {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'A' && r <= 'Z' && r != 'I' && r != 'O' && r != 'Q':
		default:
			return false
		}
	}
	return true
}

func (v *Validator) Validate(form *model.BookingRequest) error {
	if err := v.validate.Struct(form); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if form.ScheduledAt.Before(time.Now()) {
		return ValidationErrors{
			ValidationError{
				Field:   "ScheduledAt",
				Message: "scheduled_at cannot be in the past",
			},
		}
	}

	return nil
}

func (v *Validator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "len":
			message = fmt.Sprintf("%s must be exactly %s characters", err.Field(), err.Param())
		case "vin":
			message = fmt.Sprintf("%s must be a valid 17-character VIN", err.Field())
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +31612345678)", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
