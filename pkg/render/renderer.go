package render

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/form"
	rendertemplate "github.com/goliatone/go-formfield/pkg/render/template"
	"github.com/goliatone/go-formfield/pkg/render/template/pongo"
)

const (
	formTemplate       = "form.tpl"
	defaultSubmitLabel = "Submit"
	methodOverrideName = "_method"
)

// Renderer renders forms with the embedded pongo2 templates unless another
// engine or bundle is configured.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	logger      *zap.Logger
	submitLabel string
}

// New constructs a Renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		logger:      zap.NewNop(),
		submitLabel: defaultSubmitLabel,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine := cfg.templateRenderer
	if engine == nil {
		var engineOpts []pongo.Option
		if cfg.templateDir != "" {
			engineOpts = append(engineOpts, pongo.WithBaseDir(cfg.templateDir))
		}
		engineOpts = append(engineOpts, pongo.WithFS(cfg.templateFS))
		e, err := pongo.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("render: configure template renderer: %w", err)
		}
		engine = e
	}

	return &Renderer{
		templates:   engine,
		logger:      cfg.logger,
		submitLabel: cfg.submitLabel,
	}, nil
}

// Name identifies the renderer.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType is the media type of Render output.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the HTML for f in its current state: every displayed error
// is rendered next to its input and linked through aria-describedby.
func (r *Renderer) Render(ctx context.Context, f *form.Form, opts RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errors.New("render: form is nil")
	}
	if r.templates == nil {
		return nil, errors.New("render: template renderer is nil")
	}

	view := r.formView(f, opts)
	out, err := r.templates.RenderTemplate(formTemplate, map[string]any{"form": view})
	if err != nil {
		return nil, fmt.Errorf("render: render template: %w", err)
	}
	r.logger.Debug("form rendered",
		zap.String("form", f.Model().ID),
		zap.Int("bytes", len(out)),
	)
	return []byte(out), nil
}

func (r *Renderer) formView(f *form.Form, opts RenderOptions) map[string]any {
	m := f.Model()

	action := strings.TrimSpace(opts.Action)
	if action == "" {
		action = m.Endpoint
	}
	method, override := browserMethod(opts.Method, m.Method)

	hidden := opts.Hidden
	if override != "" {
		hidden = append(append([]HiddenField(nil), hidden...), Hidden(methodOverrideName, override))
	}

	submit := strings.TrimSpace(opts.SubmitLabel)
	if submit == "" {
		submit = r.submitLabel
	}

	fields := make([]map[string]any, 0, len(m.Fields))
	for _, def := range m.Fields {
		v, _ := f.Field(def.Name)

		value, ok := opts.Values[def.Name]
		if !ok {
			value = v.Value()
			if value == "" && !v.Touched() && !v.Dirty() {
				value = def.Default
			}
		}

		message := SanitizeMessage(f.DisplayError(def.Name))
		props := f.InputProps(def.Name)
		if message == "" {
			// markup-only messages sanitise to nothing; keep the input unlinked
			props = field.InputProps{}
		}
		fields = append(fields, map[string]any{
			"id":              inputID(f.Model().ID, def.Name),
			"name":            def.Name,
			"label":           def.DisplayLabel(),
			"inputType":       def.HTMLInputType(),
			"value":           value,
			"placeholder":     def.Placeholder,
			"description":     def.Description,
			"required":        def.Required,
			"error":           message,
			"errorId":         v.ErrorID(),
			"ariaInvalid":     props.AriaInvalid,
			"ariaDescribedBy": props.AriaDescribedBy,
		})
	}

	hiddenView := make([]map[string]any, 0, len(hidden))
	for _, h := range SortedHiddenFields(MergeHiddenFields(nil, hidden...)) {
		hiddenView = append(hiddenView, map[string]any{"name": h.Name, "value": h.Value})
	}

	return map[string]any{
		"id":          m.ID,
		"action":      action,
		"method":      method,
		"summary":     m.Summary,
		"formErrors":  sanitizeMessages(f.FormErrors()),
		"hidden":      hiddenView,
		"fields":      fields,
		"submitLabel": submit,
	}
}

// browserMethod maps the requested verb onto what an HTML form can submit,
// returning the verb to carry in _method when they differ.
func browserMethod(requested, declared string) (string, string) {
	method := strings.ToUpper(strings.TrimSpace(requested))
	if method == "" {
		method = strings.ToUpper(strings.TrimSpace(declared))
	}
	switch method {
	case "", http.MethodPost:
		return "post", ""
	case http.MethodGet:
		return "get", ""
	default:
		return "post", method
	}
}

func inputID(formID, name string) string {
	if formID == "" {
		return field.SanitizeID("field-" + name)
	}
	return field.SanitizeID(formID + "-" + name)
}
