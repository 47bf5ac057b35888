package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/model"
)

// Rules is the schema built from a model.Field. Checks run in declaration
// order after the required check; every failing check contributes an issue.
type Rules struct {
	required        bool
	requiredMessage string
	checks          []field.Schema
}

// FromField compiles the field's format, required flag and validation rules.
// Blank values pass unless the field is required, in which case they fail
// with the required message only.
func FromField(f model.Field) (*Rules, error) {
	rules := &Rules{
		required:        f.Required,
		requiredMessage: pick(strings.TrimSpace(f.RequiredMessage), MessageRequired),
	}

	if f.Format != "" {
		if check, ok := Format(f.Format, f.Metadata["formatMessage"]); ok {
			rules.checks = append(rules.checks, check)
		}
	}

	for idx, rule := range f.Validations {
		check, err := compileRule(rule)
		if err != nil {
			return nil, fmt.Errorf("schema: field %q rule %d (%s): %w", f.Name, idx, rule.Kind, err)
		}
		rules.checks = append(rules.checks, check)
	}
	return rules, nil
}

// Validate implements field.Schema.
func (r *Rules) Validate(value string) field.Result {
	if strings.TrimSpace(value) == "" {
		if r.required {
			return field.Failure(r.requiredMessage)
		}
		return field.Success()
	}

	var issues []string
	for _, check := range r.checks {
		result := check.Validate(value)
		if !result.Valid() {
			issues = append(issues, result.First())
		}
	}
	if len(issues) == 0 {
		return field.Success()
	}
	return field.Failure(issues...)
}

func compileRule(rule model.ValidationRule) (field.Schema, error) {
	message := strings.TrimSpace(rule.Param(model.ParamMessage))

	switch rule.Kind {
	case model.ValidationRuleMinLength:
		n, ok := parseInt(rule.Param(model.ParamValue))
		if !ok || n < 0 {
			return nil, fmt.Errorf("invalid length %q", rule.Param(model.ParamValue))
		}
		message = pick(message, messageMinLength(n))
		return field.SchemaFunc(func(value string) field.Result {
			if utf8.RuneCountInString(value) < n {
				return field.Failure(message)
			}
			return field.Success()
		}), nil

	case model.ValidationRuleMaxLength:
		n, ok := parseInt(rule.Param(model.ParamValue))
		if !ok || n < 0 {
			return nil, fmt.Errorf("invalid length %q", rule.Param(model.ParamValue))
		}
		message = pick(message, messageMaxLength(n))
		return field.SchemaFunc(func(value string) field.Result {
			if utf8.RuneCountInString(value) > n {
				return field.Failure(message)
			}
			return field.Success()
		}), nil

	case model.ValidationRulePattern:
		expr := rule.Param(model.ParamPattern)
		if expr == "" {
			return nil, fmt.Errorf("pattern is empty")
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, err
		}
		message = pick(message, MessagePattern)
		return field.SchemaFunc(func(value string) field.Result {
			if !re.MatchString(value) {
				return field.Failure(message)
			}
			return field.Success()
		}), nil

	case model.ValidationRuleFormat:
		name := rule.Param(model.ParamValue)
		check, ok := Format(name, message)
		if !ok {
			return nil, fmt.Errorf("unknown format %q", name)
		}
		return check, nil

	case model.ValidationRuleTag:
		return Tag(rule.Param(model.ParamExpr), WithTagMessage(message))

	case model.ValidationRuleCEL:
		return CEL(rule.Param(model.ParamExpr), message)

	case model.ValidationRuleJSONSchema:
		return JSONSchema(rule.Param(model.ParamExpr), WithJSONSchemaMessage(message))

	default:
		return nil, fmt.Errorf("unsupported rule kind %q", rule.Kind)
	}
}

func parseInt(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}
