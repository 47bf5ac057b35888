package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	formfield "github.com/goliatone/go-formfield"
	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/formdef"
	"github.com/goliatone/go-formfield/pkg/model"
	pkgopenapi "github.com/goliatone/go-formfield/pkg/openapi"
)

// loadModel resolves the form model selected by the persistent flags.
func (a *app) loadModel(ctx context.Context) (model.FormModel, error) {
	switch {
	case a.openapiPath != "" && a.formsPath != "":
		return model.FormModel{}, errors.New("use either --forms or --openapi, not both")
	case a.openapiPath != "":
		if a.operationID == "" {
			return model.FormModel{}, errors.New("--operation is required with --openapi")
		}
		src, err := pkgopenapi.ParseSource(a.openapiPath)
		if err != nil {
			return model.FormModel{}, err
		}
		a.logger.Debug("loading openapi form",
			zap.String("source", src.Location()),
			zap.String("operation", a.operationID),
		)
		return formfield.LoadForm(ctx, src, a.operationID, pkgopenapi.WithHTTPFallback(a.timeout))
	case a.formsPath != "":
		store, err := formdef.LoadPath(a.formsPath)
		if err != nil {
			return model.FormModel{}, err
		}
		id := a.formID
		if id == "" {
			ids := store.IDs()
			if len(ids) != 1 {
				return model.FormModel{}, fmt.Errorf("--form is required; available forms: %s", strings.Join(ids, ", "))
			}
			id = ids[0]
		}
		m, ok := store.Form(id)
		if !ok {
			return model.FormModel{}, fmt.Errorf("form %q not found; available forms: %s", id, strings.Join(store.IDs(), ", "))
		}
		return m, nil
	default:
		return model.FormModel{}, errors.New("one of --forms or --openapi is required")
	}
}

func (a *app) loadForm(ctx context.Context) (*form.Form, error) {
	m, err := a.loadModel(ctx)
	if err != nil {
		return nil, err
	}
	prefix := m.ID
	if prefix == "" {
		prefix = "form"
	}
	return form.New(m, form.WithLogger(a.logger), form.WithErrorIDPrefix(prefix))
}

// parseAssignments turns repeated name=value flags into a map, rejecting names
// the model does not define.
func parseAssignments(m model.FormModel, pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q, expected name=value", pair)
		}
		if _, exists := m.FieldByName(name); !exists {
			return nil, fmt.Errorf("%w: %q", form.ErrUnknownField, name)
		}
		values[name] = value
	}
	return values, nil
}
