package field

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Validator owns the validation state of one field instance. Construct a new
// Validator when the field is (re)mounted; escalation never carries over.
type Validator struct {
	name    string
	errorID string
	schema  Schema
	logger  *zap.Logger

	touched       bool
	dirty         bool
	hasShownError bool
	err           string
	value         string
}

// State is a read-only snapshot of a Validator.
type State struct {
	Name          string     `json:"name,omitempty"`
	Value         string     `json:"value"`
	Touched       bool       `json:"touched"`
	Dirty         bool       `json:"dirty"`
	HasShownError bool       `json:"hasShownError"`
	Cadence       Cadence    `json:"cadence"`
	Error         *string    `json:"error"`
	ErrorID       string     `json:"errorId"`
	InputProps    InputProps `json:"inputProps"`
}

// New constructs a Validator for schema. The schema is shared read-only and
// never mutated.
func New(schema Schema, options ...Option) (*Validator, error) {
	if schema == nil {
		return nil, ErrSchemaRequired
	}

	v := &Validator{
		schema: schema,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	if v.errorID == "" {
		v.errorID = generateErrorID(v.name)
	}
	return v, nil
}

// HandleBlur marks the field touched and validates value. A failure shows
// the first issue and escalates the cadence to OnBlurAndChange.
func (v *Validator) HandleBlur(value string) {
	v.touched = true
	v.value = value
	v.validate(value)
	if v.err != "" && !v.hasShownError {
		v.hasShownError = true
		v.logger.Debug("field validation escalated",
			zap.String("field", v.name),
			zap.Stringer("cadence", OnBlurAndChange),
		)
	}
}

// HandleChange records a new value. Before the first error has been shown it
// does not validate; afterwards it validates immediately.
func (v *Validator) HandleChange(value string) {
	v.dirty = true
	v.value = value
	if !v.hasShownError {
		return
	}
	v.validate(value)
}

func (v *Validator) validate(value string) {
	result := v.schema.Validate(value)
	v.err = result.First()
}

// MarkClean clears the dirty flag, typically after a successful submit. The
// cadence is unaffected.
func (v *Validator) MarkClean() {
	v.dirty = false
}

// Name returns the configured field name.
func (v *Validator) Name() string { return v.name }

// Value returns the last value passed to HandleBlur or HandleChange.
func (v *Validator) Value() string { return v.value }

// Touched reports whether the field has been blurred at least once.
func (v *Validator) Touched() bool { return v.touched }

// Dirty reports whether the value changed since construction or MarkClean.
func (v *Validator) Dirty() bool { return v.dirty }

// HasShownError reports whether an error has been shown for this instance.
func (v *Validator) HasShownError() bool { return v.hasShownError }

// Cadence returns the current validation cadence.
func (v *Validator) Cadence() Cadence {
	if v.hasShownError {
		return OnBlurAndChange
	}
	return OnBlurOnly
}

// Error returns the current message, or "" when the field is valid or has not
// been validated.
func (v *Validator) Error() string { return v.err }

// HasError reports whether a message is currently set.
func (v *Validator) HasError() bool { return v.err != "" }

// ErrorID returns the id linking the input to its error element.
func (v *Validator) ErrorID() string { return v.errorID }

// InputProps returns the aria attributes for the current error state.
func (v *Validator) InputProps() InputProps {
	return PropsFor(v.errorID, v.err)
}

// State snapshots the validator.
func (v *Validator) State() State {
	state := State{
		Name:          v.name,
		Value:         v.value,
		Touched:       v.touched,
		Dirty:         v.dirty,
		HasShownError: v.hasShownError,
		Cadence:       v.Cadence(),
		ErrorID:       v.errorID,
		InputProps:    v.InputProps(),
	}
	if v.err != "" {
		msg := v.err
		state.Error = &msg
	}
	return state
}

func generateErrorID(name string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	prefix := SanitizeID(name)
	if prefix == "" {
		prefix = "field"
	}
	return prefix + "-error-" + suffix
}

// SanitizeID keeps characters that are safe inside an HTML id and a CSS
// selector, replacing anything else with '-'. aria-describedby is a list of
// ids separated by whitespace, so an id must never contain a space.
func SanitizeID(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
