package tui

import "go.uber.org/zap"

// Theme holds the prefixes printed before informational and error lines.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme is applied when no theme is configured.
var DefaultTheme = Theme{InfoPrefix: "", ErrorPrefix: "✗ "}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithMaxAttempts bounds how often an invalid field is re-prompted. Zero
// means unbounded.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.maxAttempts = n
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
