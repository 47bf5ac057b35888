package schema

import (
	"strings"

	"github.com/goliatone/go-formfield/pkg/field"
)

var formatTags = map[string]struct {
	tag     string
	message string
}{
	"email": {tag: "email", message: MessageEmail},
	"uri":   {tag: "uri", message: MessageURL},
	"url":   {tag: "url", message: MessageURL},
	"uuid":  {tag: "uuid", message: MessageUUID},
}

// Format returns a schema for a well-known string format (email, uri, url,
// uuid). The second result is false for formats that carry no check, such as
// "password" or "textarea".
func Format(name, message string) (field.Schema, bool) {
	spec, ok := formatTags[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	v := sharedValidator()
	message = pick(message, spec.message)
	return field.SchemaFunc(func(value string) field.Result {
		if err := v.Var(value, spec.tag); err != nil {
			return field.Failure(message)
		}
		return field.Success()
	}), true
}
