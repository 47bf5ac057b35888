package schema

import (
	"strings"

	"github.com/goliatone/go-formfield/pkg/field"
)

// All runs every schema in order and concatenates the issues of the failing
// ones. Nil schemas are skipped.
func All(schemas ...field.Schema) field.Schema {
	list := make([]field.Schema, 0, len(schemas))
	for _, s := range schemas {
		if s != nil {
			list = append(list, s)
		}
	}
	return field.SchemaFunc(func(value string) field.Result {
		var issues []string
		for _, s := range list {
			result := s.Validate(value)
			if !result.Valid() {
				issues = append(issues, result.First())
			}
		}
		if len(issues) == 0 {
			return field.Success()
		}
		return field.Failure(issues...)
	})
}

// Required fails for blank values.
func Required(message string) field.Schema {
	message = pick(message, MessageRequired)
	return field.SchemaFunc(func(value string) field.Result {
		if strings.TrimSpace(value) == "" {
			return field.Failure(message)
		}
		return field.Success()
	})
}

// Optional lets blank values through and delegates everything else.
func Optional(s field.Schema) field.Schema {
	return field.SchemaFunc(func(value string) field.Result {
		if strings.TrimSpace(value) == "" {
			return field.Success()
		}
		return s.Validate(value)
	})
}
