package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfield/pkg/renderers/tui"
)

func newPromptCmd(a *app) *cobra.Command {
	var (
		output      string
		maxAttempts int
	)
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill the form interactively in the terminal",
		Long: `prompt asks for every field in turn. An answer that fails validation prints
its error and the field is asked again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.loadForm(cmd.Context())
			if err != nil {
				return err
			}
			d := a.promptDriver
			if d == nil {
				d = tui.NewSurveyDriver(cmd.ErrOrStderr())
			}
			session := tui.New(
				tui.WithPromptDriver(d),
				tui.WithLogger(a.logger),
				tui.WithMaxAttempts(maxAttempts),
			)

			values, err := session.Run(cmd.Context(), f)
			if err != nil {
				return err
			}
			data, err := tui.Encode(f.Model(), values, tui.OutputFormat(output))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", string(tui.OutputFormatJSON), "Output format: json, form or pretty")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "Give up after this many invalid answers for one field (0 = unlimited)")
	return cmd
}
