package validator

import (
	"reflect"
	"strings"

	"github.com/SAP-F-2025/academy-report-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator is the main validator instance that combines all validation types
type Validator struct {
	structValidator   *validator.Validate
	businessValidator *BusinessValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		businessValidator: NewBusinessValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates struct tags and converts failures to ValidationErrors
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// ValidateVar validates a single value and reports failures under the given field name
func (v *Validator) ValidateVar(field string, value interface{}, tag string) error {
	if err := v.structValidator.Var(value, tag); err != nil {
		errs := ToValidationErrors(err)
		if len(errs) == 0 {
			return err
		}
		for i := range errs {
			errs[i].Field = field
		}
		return errs
	}
	return nil
}

// Business returns the business validator
func (v *Validator) Business() *BusinessValidator {
	return v.businessValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("partials_count", validatePartialsCount)
	validate.RegisterValidation("attendance_status", validateAttendanceStatus)
	validate.RegisterValidation("level_name", validateLevelName)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validatePartialsCount(fl validator.FieldLevel) bool {
	n := fl.Field().Int()
	return n >= 1 && n <= models.MaxPartials
}

func validateAttendanceStatus(fl validator.FieldLevel) bool {
	return models.AttendanceStatus(fl.Field().String()).Valid()
}

func validateLevelName(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	return value != "" && len(value) <= 100
}
