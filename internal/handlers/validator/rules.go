package validator

import "github.com/go-playground/validator/v10"

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

func NewEstimateValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("metal", metalValidator),
		},
		{
			Rule: registerFn("ore_quality", oreQualityValidator),
		},
		{
			Rule: registerFn("production_route", productionRouteValidator),
		},
		{
			Rule: registerFn("energy_source", energySourceValidator),
		},
		{
			Rule: registerFn("end_of_life", endOfLifeValidator),
		},
		{
			Rule: registerFn("storage_practice", storagePracticeValidator),
		},
		{
			Rule: registerFn("producing_state", producingStateValidator),
		},
	}
}
