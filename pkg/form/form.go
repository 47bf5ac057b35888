package form

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/schema"
)

// Form composes one field.Validator per model field with the server errors
// returned by the last submission. Server errors take display precedence;
// the validators never see them.
type Form struct {
	model         model.FormModel
	fields        map[string]*field.Validator
	overrides     map[string]field.Schema
	logger        *zap.Logger
	errorIDPrefix string

	serverFields map[string][]string
	serverForm   []string
}

// FieldState is the per-field view of a form: the validator state plus the
// error actually displayed.
type FieldState struct {
	field.State
	Label       string `json:"label"`
	ServerError string `json:"serverError,omitempty"`
	Displayed   string `json:"displayed,omitempty"`
}

// State is a snapshot of the whole form in model order.
type State struct {
	ID         string       `json:"id,omitempty"`
	Valid      bool         `json:"valid"`
	Fields     []FieldState `json:"fields"`
	FormErrors []string     `json:"formErrors,omitempty"`
}

// New builds a form for m. Schemas come from schema.FromField unless
// overridden with WithSchema; a malformed rule fails construction.
func New(m model.FormModel, options ...Option) (*Form, error) {
	if len(m.Fields) == 0 {
		return nil, ErrNoFields
	}

	m.Fields = append([]model.Field(nil), m.Fields...)
	f := &Form{
		fields:    make(map[string]*field.Validator, len(m.Fields)),
		overrides: make(map[string]field.Schema),
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}

	for idx := range m.Fields {
		def := &m.Fields[idx]
		name := strings.TrimSpace(def.Name)
		def.Name = name
		if name == "" {
			return nil, fmt.Errorf("form %q: field name is required", m.ID)
		}
		if _, exists := f.fields[name]; exists {
			return nil, fmt.Errorf("form %q: duplicate field %q", m.ID, name)
		}

		s, err := f.schemaFor(*def)
		if err != nil {
			return nil, fmt.Errorf("form %q: %w", m.ID, err)
		}

		opts := []field.Option{field.WithName(name), field.WithLogger(f.logger)}
		if f.errorIDPrefix != "" {
			opts = append(opts, field.WithErrorID(field.SanitizeID(f.errorIDPrefix+"-"+name+"-error")))
		}
		v, err := field.New(s, opts...)
		if err != nil {
			return nil, fmt.Errorf("form %q: field %q: %w", m.ID, name, err)
		}
		f.fields[name] = v
	}

	f.model = m
	return f, nil
}

func (f *Form) schemaFor(def model.Field) (field.Schema, error) {
	if s, ok := f.overrides[def.Name]; ok {
		return s, nil
	}
	return schema.FromField(def)
}

// Model returns the form model.
func (f *Form) Model() model.FormModel {
	return f.model
}

// Field returns the validator for name.
func (f *Form) Field(name string) (*field.Validator, bool) {
	v, ok := f.fields[name]
	return v, ok
}

// HandleBlur forwards a blur event to the named field.
func (f *Form) HandleBlur(name, value string) error {
	v, ok := f.fields[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	v.HandleBlur(value)
	return nil
}

// HandleChange forwards a change event to the named field.
func (f *Form) HandleChange(name, value string) error {
	v, ok := f.fields[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	v.HandleChange(value)
	return nil
}

// SetServerErrors replaces the server errors with payload, mapped onto the
// form's fields. Keys that match no field become form-level errors.
func (f *Form) SetServerErrors(payload map[string][]string) {
	mapping := MapErrorPayload(f.model, payload)
	f.serverFields = mapping.Fields
	f.serverForm = mapping.Form
	if len(payload) > 0 {
		f.logger.Debug("server errors applied",
			zap.String("form", f.model.ID),
			zap.Int("fields", len(mapping.Fields)),
			zap.Int("form_errors", len(mapping.Form)),
		)
	}
}

// ClearServerErrors drops every server error.
func (f *Form) ClearServerErrors() {
	f.serverFields = nil
	f.serverForm = nil
}

// ClearServerError drops the server errors of one field.
func (f *Form) ClearServerError(name string) {
	delete(f.serverFields, name)
}

// ServerErrors returns the server messages attached to name.
func (f *Form) ServerErrors(name string) []string {
	return f.serverFields[name]
}

// FormErrors returns the form-level server messages.
func (f *Form) FormErrors() []string {
	return f.serverForm
}

// DisplayError returns the message to show for name: the first server error
// when one exists, otherwise the client-side error.
func (f *Form) DisplayError(name string) string {
	if msgs := f.serverFields[name]; len(msgs) > 0 {
		return msgs[0]
	}
	if v, ok := f.fields[name]; ok {
		return v.Error()
	}
	return ""
}

// InputProps returns the aria attributes matching the displayed error.
func (f *Form) InputProps(name string) field.InputProps {
	v, ok := f.fields[name]
	if !ok {
		return field.InputProps{}
	}
	return field.PropsFor(v.ErrorID(), f.DisplayError(name))
}

// Submit blurs every field with its submitted value, so each invalid field
// shows its error and switches to on-change validation. It reports whether
// the form is valid; on success every field is marked clean.
func (f *Form) Submit(values map[string]string) bool {
	for _, def := range f.model.Fields {
		f.fields[def.Name].HandleBlur(values[def.Name])
	}

	valid := f.Valid()
	if valid {
		for _, v := range f.fields {
			v.MarkClean()
		}
	}
	f.logger.Debug("form submitted",
		zap.String("form", f.model.ID),
		zap.Bool("valid", valid),
	)
	return valid
}

// Valid reports whether no error is displayed for any field and no form-level
// error remains.
func (f *Form) Valid() bool {
	if len(f.serverForm) > 0 {
		return false
	}
	for _, def := range f.model.Fields {
		if f.DisplayError(def.Name) != "" {
			return false
		}
	}
	return true
}

// Values returns the last value seen by every field.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for name, v := range f.fields {
		out[name] = v.Value()
	}
	return out
}

// State snapshots the form in model order.
func (f *Form) State() State {
	state := State{
		ID:         f.model.ID,
		Valid:      f.Valid(),
		Fields:     make([]FieldState, 0, len(f.model.Fields)),
		FormErrors: append([]string(nil), f.serverForm...),
	}
	for _, def := range f.model.Fields {
		v := f.fields[def.Name]
		fs := FieldState{
			State:     v.State(),
			Label:     def.DisplayLabel(),
			Displayed: f.DisplayError(def.Name),
		}
		if msgs := f.serverFields[def.Name]; len(msgs) > 0 {
			fs.ServerError = msgs[0]
		}
		fs.InputProps = f.InputProps(def.Name)
		state.Fields = append(state.Fields, fs)
	}
	return state
}
