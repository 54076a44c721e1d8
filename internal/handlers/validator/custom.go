package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/sustainamine/sustainamine/internal/estimation"
	"github.com/sustainamine/sustainamine/internal/reference"
)

// parsedBy builds a field validator that accepts whatever parse accepts.
func parsedBy[T any](parse func(string) (T, error)) func(fl validator.FieldLevel) bool {
	return func(fl validator.FieldLevel) bool {
		val, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, err := parse(val)
		return err == nil
	}
}

var (
	metalValidator           = parsedBy(estimation.ParseMetal)
	oreQualityValidator      = parsedBy(estimation.ParseOreQuality)
	productionRouteValidator = parsedBy(estimation.ParseProductionRoute)
	energySourceValidator    = parsedBy(estimation.ParseEnergySource)
	endOfLifeValidator       = parsedBy(estimation.ParseEndOfLife)
	storagePracticeValidator = parsedBy(estimation.ParseStoragePractice)
)

// producingStateValidator checks the state against the metal named by the tag parameter.
// A nil state is left to omitnil and an unknown metal is reported by the metal rule.
func producingStateValidator(fl validator.FieldLevel) bool {
	state, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	metalField, _, _, found := fl.GetStructFieldOKAdvanced2(fl.Parent(), fl.Param())
	if !found {
		return false
	}
	metal, err := estimation.ParseMetal(metalField.String())
	if err != nil {
		return true
	}

	_, err = reference.NormalizeState(metal, state)
	return err == nil
}
