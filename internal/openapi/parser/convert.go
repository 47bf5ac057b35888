package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfield/pkg/model"
	pkgopenapi "github.com/goliatone/go-formfield/pkg/openapi"
)

// convertBody flattens an object schema (and its allOf members) into fields.
// Read-only, object and array properties have no text input and are skipped.
func convertBody(body *openapi3.Schema) ([]model.Field, error) {
	properties := make(map[string]*openapi3.Schema)
	required := make(map[string]bool)
	collectProperties(body, properties, required, 0)

	fields := make([]model.Field, 0, len(properties))
	for _, name := range orderedNames(body, properties) {
		prop := properties[name]
		if prop.ReadOnly || isType(prop, openapi3.TypeObject) || isType(prop, openapi3.TypeArray) {
			continue
		}
		field, err := convertProperty(name, prop, required[name])
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		fields = append(fields, field)
	}
	return fields, nil
}

const maxAllOfDepth = 8

func collectProperties(schema *openapi3.Schema, properties map[string]*openapi3.Schema, required map[string]bool, depth int) {
	if schema == nil || depth > maxAllOfDepth {
		return
	}
	for _, ref := range schema.AllOf {
		if ref != nil {
			collectProperties(ref.Value, properties, required, depth+1)
		}
	}
	for name, ref := range schema.Properties {
		if ref != nil && ref.Value != nil {
			properties[name] = ref.Value
		}
	}
	for _, name := range schema.Required {
		required[name] = true
	}
}

// orderedNames honours x-formfield-order first, then the remaining names
// alphabetically.
func orderedNames(body *openapi3.Schema, properties map[string]*openapi3.Schema) []string {
	seen := make(map[string]bool, len(properties))
	var names []string
	if list, ok := body.Extensions[pkgopenapi.ExtensionOrder].([]any); ok {
		for _, item := range list {
			name, ok := item.(string)
			if !ok || seen[name] {
				continue
			}
			if _, exists := properties[name]; exists {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	var rest []string
	for name := range properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func convertProperty(name string, prop *openapi3.Schema, required bool) (model.Field, error) {
	messages, fallback := extensionMessages(prop.Extensions)
	message := func(kind string) string {
		if msg, ok := messages[kind]; ok {
			return msg
		}
		return fallback
	}

	field := model.Field{
		Name:            name,
		Label:           prop.Title,
		Format:          prop.Format,
		Required:        required,
		RequiredMessage: message("required"),
		Description:     prop.Description,
	}
	if inputType, ok := prop.Extensions[pkgopenapi.ExtensionInputType].(string); ok {
		field.InputType = inputType
	}
	if example, ok := prop.Example.(string); ok {
		field.Placeholder = example
	}
	if prop.Default != nil {
		field.Default = fmt.Sprint(prop.Default)
	}
	if msg := message("format"); msg != "" && prop.Format != "" {
		field.Metadata = map[string]string{"formatMessage": msg}
	}

	add := func(kind string, params map[string]string) {
		if msg := message(kind); msg != "" {
			params[model.ParamMessage] = msg
		}
		field.Validations = append(field.Validations, model.ValidationRule{Kind: kind, Params: params})
	}

	switch {
	case isType(prop, openapi3.TypeInteger):
		add(model.ValidationRulePattern, map[string]string{model.ParamPattern: `^-?[0-9]+$`})
	case isType(prop, openapi3.TypeNumber):
		add(model.ValidationRuleTag, map[string]string{model.ParamExpr: "numeric"})
	case isType(prop, openapi3.TypeBoolean):
		add(model.ValidationRuleTag, map[string]string{model.ParamExpr: "boolean"})
	}
	if prop.MinLength > 0 {
		add(model.ValidationRuleMinLength, map[string]string{model.ParamValue: strconv.FormatUint(prop.MinLength, 10)})
	}
	if prop.MaxLength != nil {
		add(model.ValidationRuleMaxLength, map[string]string{model.ParamValue: strconv.FormatUint(*prop.MaxLength, 10)})
	}
	if prop.Pattern != "" {
		add(model.ValidationRulePattern, map[string]string{model.ParamPattern: prop.Pattern})
	}
	if rule, ok := enumRule(prop.Enum); ok {
		if msg := message("enum"); msg != "" {
			rule.Params[model.ParamMessage] = msg
		}
		field.Validations = append(field.Validations, rule)
	}

	cels, err := celRules(prop.Extensions[pkgopenapi.ExtensionCEL], message("cel"))
	if err != nil {
		return model.Field{}, err
	}
	field.Validations = append(field.Validations, cels...)
	return field, nil
}

// extensionMessages reads x-formfield-message: a string applies to every
// rule, a map overrides per rule kind.
func extensionMessages(ext map[string]any) (map[string]string, string) {
	switch value := ext[pkgopenapi.ExtensionMessage].(type) {
	case string:
		return nil, strings.TrimSpace(value)
	case map[string]any:
		out := make(map[string]string, len(value))
		for kind, raw := range value {
			if msg, ok := raw.(string); ok && strings.TrimSpace(msg) != "" {
				out[kind] = strings.TrimSpace(msg)
			}
		}
		return out, out["*"]
	default:
		return nil, ""
	}
}

// enumRule maps string enums onto a validator oneof tag, or a CEL membership
// test when a value contains whitespace.
func enumRule(values []any) (model.ValidationRule, bool) {
	if len(values) == 0 {
		return model.ValidationRule{}, false
	}
	items := make([]string, 0, len(values))
	spaced := false
	for _, v := range values {
		s := fmt.Sprint(v)
		if strings.ContainsAny(s, " \t\n") {
			spaced = true
		}
		items = append(items, s)
	}
	if !spaced {
		return model.ValidationRule{
			Kind:   model.ValidationRuleTag,
			Params: map[string]string{model.ParamExpr: "oneof=" + strings.Join(items, " ")},
		}, true
	}
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = strconv.Quote(s)
	}
	return model.ValidationRule{
		Kind:   model.ValidationRuleCEL,
		Params: map[string]string{model.ParamExpr: "value in [" + strings.Join(quoted, ", ") + "]"},
	}, true
}

func celRules(raw any, fallback string) ([]model.ValidationRule, error) {
	switch value := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return []model.ValidationRule{celRule(value, fallback)}, nil
	case map[string]any:
		expr, _ := value["expr"].(string)
		if strings.TrimSpace(expr) == "" {
			return nil, fmt.Errorf("%s: expr is required", pkgopenapi.ExtensionCEL)
		}
		msg, _ := value["message"].(string)
		if msg == "" {
			msg = fallback
		}
		return []model.ValidationRule{celRule(expr, msg)}, nil
	case []any:
		var out []model.ValidationRule
		for _, item := range value {
			rules, err := celRules(item, fallback)
			if err != nil {
				return nil, err
			}
			out = append(out, rules...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: unsupported value %T", pkgopenapi.ExtensionCEL, raw)
	}
}

func celRule(expr, message string) model.ValidationRule {
	params := map[string]string{model.ParamExpr: strings.TrimSpace(expr)}
	if message != "" {
		params[model.ParamMessage] = message
	}
	return model.ValidationRule{Kind: model.ValidationRuleCEL, Params: params}
}

func isType(schema *openapi3.Schema, typ string) bool {
	return schema.Type != nil && schema.Type.Is(typ)
}
