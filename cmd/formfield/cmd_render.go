package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfield/pkg/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		assignments  []string
		serverErrors string
		csrf         string
		templatesDir string
		action       string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the form as accessible HTML",
		Long: `render prints the form HTML. Values given with --set are entered and blurred,
so fields show their errors exactly as a user leaving them would see. Server
errors are read from a JSON or YAML map of field path to messages.`,
		Example: `  formfield render --forms forms/ --form login --set email=foo --server-errors errors.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.loadForm(cmd.Context())
			if err != nil {
				return err
			}
			values, err := parseAssignments(f.Model(), assignments)
			if err != nil {
				return err
			}
			for _, def := range f.Model().Fields {
				if value, ok := values[def.Name]; ok {
					if err := f.HandleBlur(def.Name, value); err != nil {
						return err
					}
				}
			}

			if serverErrors != "" {
				payload, err := readErrorPayload(serverErrors)
				if err != nil {
					return err
				}
				f.SetServerErrors(payload)
			}

			opts := []render.Option{render.WithLogger(a.logger)}
			if templatesDir != "" {
				opts = append(opts, render.WithTemplatesDir(templatesDir))
			}
			renderer, err := render.New(opts...)
			if err != nil {
				return err
			}

			renderOpts := render.RenderOptions{Action: action}
			if csrf != "" {
				name, token, ok := strings.Cut(csrf, "=")
				if !ok {
					return fmt.Errorf("invalid --csrf %q, expected name=token", csrf)
				}
				renderOpts.Hidden = append(renderOpts.Hidden, render.CSRFToken(name, token))
			}

			html, err := renderer.Render(cmd.Context(), f, renderOpts)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(html)
			return err
		},
	}
	cmd.Flags().StringArrayVar(&assignments, "set", nil, "Field value as name=value (repeatable)")
	cmd.Flags().StringVar(&serverErrors, "server-errors", "", "JSON/YAML file with server errors keyed by field path")
	cmd.Flags().StringVar(&csrf, "csrf", "", "Hidden CSRF field as name=token")
	cmd.Flags().StringVar(&templatesDir, "templates", "", "Directory whose form.tpl or field.tpl override the built-in templates")
	cmd.Flags().StringVar(&action, "action", "", "Override the form action URL")
	return cmd
}

// readErrorPayload accepts JSON or YAML; a single string per key is treated
// as a one-message list.
func readErrorPayload(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read server errors: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse server errors %s: %w", path, err)
	}

	payload := make(map[string][]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			payload[key] = []string{v}
		case []any:
			for _, item := range v {
				payload[key] = append(payload[key], fmt.Sprint(item))
			}
		case nil:
		default:
			return nil, fmt.Errorf("server errors %s: key %q must be a string or list", path, key)
		}
	}
	return payload, nil
}
