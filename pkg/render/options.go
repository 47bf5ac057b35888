package render

import (
	"io/fs"
	"strings"

	"go.uber.org/zap"

	rendertemplate "github.com/goliatone/go-formfield/pkg/render/template"
)

// RenderOptions carries per-request data that does not belong to the form
// state.
type RenderOptions struct {
	// Action overrides the form model endpoint.
	Action string
	// Method overrides the form model method. Verbs other than GET and POST
	// render as POST plus a hidden _method input.
	Method string
	// Values prefill inputs, taking precedence over the field values.
	Values map[string]string
	// Hidden lists extra hidden inputs such as CSRF tokens.
	Hidden []HiddenField
	// SubmitLabel overrides the renderer's submit button label.
	SubmitLabel string
}

// Option configures a Renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	logger           *zap.Logger
	submitLabel      string
}

// WithTemplatesFS supplies an alternate template bundle. It must provide
// form.tpl and field.tpl at its root.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. Templates the
// directory does not provide still resolve from the bundle, so overriding
// field.tpl alone is enough.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithLogger sets the logger used for render diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithSubmitLabel sets the default submit button label.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if label = strings.TrimSpace(label); label != "" {
			cfg.submitLabel = label
		}
	}
}
