package model

const (
	ValidationRuleMinLength  = "minLength"
	ValidationRuleMaxLength  = "maxLength"
	ValidationRulePattern    = "pattern"
	ValidationRuleFormat     = "format"
	ValidationRuleTag        = "tag"
	ValidationRuleCEL        = "cel"
	ValidationRuleJSONSchema = "jsonSchema"
)

const (
	// ParamValue holds numeric thresholds and format names.
	ParamValue = "value"
	// ParamPattern holds the regular expression of a pattern rule.
	ParamPattern = "pattern"
	// ParamExpr holds a CEL expression, a validator tag or an inline JSON Schema.
	ParamExpr = "expr"
	// ParamMessage overrides the message reported when the rule fails.
	ParamMessage = "message"
)

// ValidationRule represents a single validation constraint applied to a field.
// Use the ValidationRule* constants to reference canonical constraints and the
// Param* constants for their parameters.
type ValidationRule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Param returns the named parameter or "".
func (r ValidationRule) Param(name string) string {
	if r.Params == nil {
		return ""
	}
	return r.Params[name]
}

// Field models an individual text input inside a form.
type Field struct {
	Name            string            `json:"name" yaml:"name"`
	Label           string            `json:"label,omitempty" yaml:"label,omitempty"`
	Format          string            `json:"format,omitempty" yaml:"format,omitempty"`
	InputType       string            `json:"inputType,omitempty" yaml:"inputType,omitempty"`
	Required        bool              `json:"required" yaml:"required"`
	RequiredMessage string            `json:"requiredMessage,omitempty" yaml:"requiredMessage,omitempty"`
	Placeholder     string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description     string            `json:"description,omitempty" yaml:"description,omitempty"`
	Default         string            `json:"default,omitempty" yaml:"default,omitempty"`
	Validations     []ValidationRule  `json:"validations,omitempty" yaml:"validations,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// DisplayLabel returns the label, falling back to the field name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// HTMLInputType resolves the input type attribute for the field.
func (f Field) HTMLInputType() string {
	if f.InputType != "" {
		return f.InputType
	}
	switch f.Format {
	case "email":
		return "email"
	case "password":
		return "password"
	case "uri", "url":
		return "url"
	default:
		return "text"
	}
}

// FormModel is the top-level representation loaders produce and forms consume.
type FormModel struct {
	ID          string            `json:"id" yaml:"id"`
	Endpoint    string            `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Method      string            `json:"method,omitempty" yaml:"method,omitempty"`
	Summary     string            `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field           `json:"fields" yaml:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// FieldByName returns the field with the given name.
func (m FormModel) FieldByName(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}
