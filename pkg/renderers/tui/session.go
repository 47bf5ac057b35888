package tui

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/model"
)

// Session walks a form field by field in a terminal. Each answer is fed to
// the form as a change followed by a blur, so the progressive cadence applies
// exactly as it does for a browser input losing focus.
type Session struct {
	driver      PromptDriver
	logger      *zap.Logger
	maxAttempts int
	theme       Theme
}

// New constructs a Session. Without WithPromptDriver it prompts on the
// process terminal through survey.
func New(options ...Option) *Session {
	s := &Session{
		logger: zap.NewNop(),
		theme:  DefaultTheme,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Run prompts every field of f in model order, re-prompting a field while it
// displays an error. It returns the collected values once every field is
// valid. Answering a field clears its server errors.
func (s *Session) Run(ctx context.Context, f *form.Form) (map[string]string, error) {
	if f == nil {
		return nil, fmt.Errorf("tui: form is nil")
	}
	m := f.Model()

	if m.Summary != "" {
		if err := s.driver.Info(ctx, s.theme.InfoPrefix+m.Summary); err != nil {
			return nil, err
		}
	}
	for _, msg := range f.FormErrors() {
		if err := s.driver.Info(ctx, s.theme.ErrorPrefix+msg); err != nil {
			return nil, err
		}
	}

	for _, def := range m.Fields {
		if err := s.promptField(ctx, f, def); err != nil {
			return nil, err
		}
	}

	values := f.Values()
	s.logger.Debug("terminal session completed",
		zap.String("form", m.ID),
		zap.Int("fields", len(values)),
	)
	return values, nil
}

func (s *Session) promptField(ctx context.Context, f *form.Form, def model.Field) error {
	if msg := f.DisplayError(def.Name); msg != "" {
		if err := s.driver.Info(ctx, s.theme.ErrorPrefix+msg); err != nil {
			return err
		}
	}

	for attempt := 1; ; attempt++ {
		answer, err := s.ask(ctx, f, def)
		if err != nil {
			return err
		}

		f.ClearServerError(def.Name)
		if err := f.HandleChange(def.Name, answer); err != nil {
			return err
		}
		if err := f.HandleBlur(def.Name, answer); err != nil {
			return err
		}

		msg := f.DisplayError(def.Name)
		if msg == "" {
			return nil
		}
		s.logger.Debug("terminal answer rejected",
			zap.String("field", def.Name),
			zap.Int("attempt", attempt),
		)
		if err := s.driver.Info(ctx, s.theme.ErrorPrefix+msg); err != nil {
			return err
		}
		if s.maxAttempts > 0 && attempt >= s.maxAttempts {
			return fmt.Errorf("%w: field %q", ErrTooManyAttempts, def.Name)
		}
	}
}

func (s *Session) ask(ctx context.Context, f *form.Form, def model.Field) (string, error) {
	cfg := InputConfig{
		Message: promptMessage(def),
		Help:    def.Description,
	}
	if v, ok := f.Field(def.Name); ok && v.Value() != "" {
		cfg.Default = v.Value()
	} else {
		cfg.Default = def.Default
	}

	if def.HTMLInputType() == "password" {
		return s.driver.Password(ctx, cfg)
	}
	return s.driver.Input(ctx, cfg)
}

func promptMessage(def model.Field) string {
	label := strings.TrimSpace(def.DisplayLabel())
	if def.Required {
		label += " *"
	}
	return label
}
