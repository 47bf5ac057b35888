package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	var assignments []string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Submit values and print the resulting form state as JSON",
		Long: `check submits the given values as if every field had been blurred and prints
the form state. The exit status is 1 when any field displays an error.`,
		Example: `  formfield check --forms forms/ --form signup --set email=foo --set password=secret123`,
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

			valid := f.Submit(values)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(f.State()); err != nil {
				return err
			}
			if !valid {
				return errFormInvalid
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&assignments, "set", nil, "Field value as name=value (repeatable)")
	return cmd
}
