package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	formfield "github.com/goliatone/go-formfield"
	"github.com/goliatone/go-formfield/pkg/formdef"
	pkgopenapi "github.com/goliatone/go-formfield/pkg/openapi"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List form ids (--forms) or operation ids (--openapi)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := a.listIDs(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), id); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) listIDs(ctx context.Context) ([]string, error) {
	switch {
	case a.openapiPath != "":
		src, err := pkgopenapi.ParseSource(a.openapiPath)
		if err != nil {
			return nil, err
		}
		doc, err := formfield.NewLoader(pkgopenapi.WithHTTPFallback(a.timeout)).Load(ctx, src)
		if err != nil {
			return nil, err
		}
		return formfield.NewParser().OperationIDs(ctx, doc)
	case a.formsPath != "":
		store, err := formdef.LoadPath(a.formsPath)
		if err != nil {
			return nil, err
		}
		return store.IDs(), nil
	default:
		return nil, errors.New("one of --forms or --openapi is required")
	}
}
