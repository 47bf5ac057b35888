package form

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfield/pkg/field"
)

// Option configures a Form.
type Option func(*Form)

// WithSchema overrides the schema derived from the model for one field.
func WithSchema(name string, schema field.Schema) Option {
	return func(f *Form) {
		name = strings.TrimSpace(name)
		if name == "" || schema == nil {
			return
		}
		f.overrides[name] = schema
	}
}

// WithLogger attaches a logger shared with every field validator.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithErrorIDPrefix makes error ids deterministic: each field gets
// "<prefix>-<name>-error", with characters unsafe in an HTML id replaced by
// '-'. Server-rendered markup uses it so ids survive a round trip.
func WithErrorIDPrefix(prefix string) Option {
	return func(f *Form) {
		f.errorIDPrefix = strings.TrimSpace(prefix)
	}
}
