package field

import (
	"strings"

	"go.uber.org/zap"
)

// Option configures a Validator.
type Option func(*Validator)

// WithName sets the field name used in the generated error id and in logs.
func WithName(name string) Option {
	return func(v *Validator) {
		v.name = strings.TrimSpace(name)
	}
}

// WithErrorID fixes the error element id instead of generating one. Useful
// when markup is rendered on the server and must match across requests.
func WithErrorID(id string) Option {
	return func(v *Validator) {
		v.errorID = strings.TrimSpace(id)
	}
}

// WithLogger attaches a logger. Cadence escalation is logged at debug level;
// invalid input is never logged above that.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}
