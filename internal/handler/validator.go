package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/plotcodec"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("player", validatePlayer)
	_ = v.RegisterValidation("seedtype", validateSeedType)
	_ = v.RegisterValidation("cell", validateCell)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// keyed by the lower-cased field name
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "player":
			errs[field] = "Must be a 0x-prefixed 20-byte address"
		case "seedtype":
			errs[field] = fmt.Sprintf("Must be a seed type between 1 and %d", plotcodec.MaxSeedType)
		case "cell":
			errs[field] = fmt.Sprintf("Must be a cell index between 0 and %d", domain.CellsPerPlot-1)
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validatePlayer(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return strings.HasPrefix(s, "0x") && common.IsHexAddress(s)
}

// validateSeedType accepts zero so optional fields can still be tagged;
// pair with required when a seed must be named
func validateSeedType(fl validator.FieldLevel) bool {
	return fl.Field().Uint() <= plotcodec.MaxSeedType
}

func validateCell(fl validator.FieldLevel) bool {
	i := fl.Field().Int()
	return i >= 0 && i < domain.CellsPerPlot
}
