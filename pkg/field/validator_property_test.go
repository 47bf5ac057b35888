package field_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/goliatone/go-formfield/pkg/field"
)

func mustValidator(schema field.Schema) *field.Validator {
	v, err := field.New(schema)
	if err != nil {
		panic(err)
	}
	return v
}

func TestValidatorProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("changes before the first failed blur never show an error", prop.ForAll(
		func(values []string) bool {
			v := mustValidator(emailSchema)
			for _, value := range values {
				v.HandleChange(value)
				if v.HasError() || v.HasShownError() {
					return false
				}
			}
			return v.Cadence() == field.OnBlurOnly
		},
		gen.SliceOf(gen.AnyString()),
	))

	properties.Property("escalation is one way", prop.ForAll(
		func(values []string, blurs []bool) bool {
			v := mustValidator(emailSchema)
			v.HandleBlur("invalid")
			for i, value := range values {
				if i < len(blurs) && blurs[i] {
					v.HandleBlur(value)
				} else {
					v.HandleChange(value)
				}
				if !v.HasShownError() || v.Cadence() != field.OnBlurAndChange {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
		gen.SliceOf(gen.Bool()),
	))

	properties.Property("blurring twice with the same value yields the same error", prop.ForAll(
		func(value string) bool {
			v := mustValidator(emailSchema)
			v.HandleBlur(value)
			first := v.Error()
			v.HandleBlur(value)
			return first == v.Error()
		},
		gen.AnyString(),
	))

	properties.Property("a valid change clears the error immediately once escalated", prop.ForAll(
		func(local, domain string) bool {
			v := mustValidator(emailSchema)
			v.HandleBlur(local)
			if !v.HasShownError() {
				return true
			}
			v.HandleChange(local + "x@" + domain + ".com")
			return !v.HasError()
		},
		gen.AlphaString(),
		gen.Identifier(),
	))

	properties.Property("error is set exactly when the last run failed", prop.ForAll(
		func(values []string) bool {
			v := mustValidator(emailSchema)
			for _, value := range values {
				v.HandleBlur(value)
				if v.HasError() == emailSchema.Validate(value).Valid() {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AnyString()),
	))

	properties.TestingRun(t)
}
