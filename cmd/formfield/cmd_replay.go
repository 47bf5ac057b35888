package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfield/pkg/form"
)

const (
	eventBlur         = "blur"
	eventChange       = "change"
	eventSubmit       = "submit"
	eventServerErrors = "server-errors"
)

// replayStep is one scripted interaction. Errors is only read by
// server-errors steps.
type replayStep struct {
	Field  string              `yaml:"field" json:"field,omitempty"`
	Event  string              `yaml:"event" json:"event"`
	Value  string              `yaml:"value" json:"value,omitempty"`
	Errors map[string][]string `yaml:"errors" json:"errors,omitempty"`
}

type replayLine struct {
	Step  int        `json:"step"`
	Event string     `json:"event"`
	Field string     `json:"field,omitempty"`
	Valid *bool      `json:"valid,omitempty"`
	State form.State `json:"state"`
}

func newReplayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay blur/change events and print the state after each step",
		Long: `replay reads a YAML (or JSON) list of steps:

  - {field: email, event: change, value: foo}
  - {field: email, event: blur, value: foo}
  - {event: server-errors, errors: {email: [Email already registered]}}
  - {event: submit}

and prints one JSON line with the form state after each step.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := readScript(args[0])
			if err != nil {
				return err
			}
			f, err := a.loadForm(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			for idx, step := range steps {
				line, err := applyStep(f, step)
				if err != nil {
					return fmt.Errorf("step %d: %w", idx+1, err)
				}
				line.Step = idx + 1
				a.logger.Debug("replay step",
					zap.Int("step", line.Step),
					zap.String("event", line.Event),
					zap.String("field", line.Field),
				)
				if err := enc.Encode(line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func readScript(path string) ([]replayStep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var steps []replayStep
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("parse script %s: %w", path, err)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("script %s defines no steps", path)
	}
	return steps, nil
}

func applyStep(f *form.Form, step replayStep) (replayLine, error) {
	event := strings.ToLower(strings.TrimSpace(step.Event))
	line := replayLine{Event: event, Field: step.Field}

	switch event {
	case eventBlur:
		if err := f.HandleBlur(step.Field, step.Value); err != nil {
			return line, err
		}
	case eventChange:
		if err := f.HandleChange(step.Field, step.Value); err != nil {
			return line, err
		}
	case eventSubmit:
		valid := f.Submit(f.Values())
		line.Valid = &valid
	case eventServerErrors:
		f.SetServerErrors(step.Errors)
	default:
		return line, fmt.Errorf("unknown event %q (want blur, change, submit or server-errors)", step.Event)
	}

	line.State = f.State()
	return line, nil
}
