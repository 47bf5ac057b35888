package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfield/pkg/model"
	pkgopenapi "github.com/goliatone/go-formfield/pkg/openapi"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) *Parser {
	if len(options.ContentTypes) == 0 {
		options.ContentTypes = pkgopenapi.DefaultContentTypes
	}
	return &Parser{options: options}
}

type located struct {
	method    string
	path      string
	operation *openapi3.Operation
}

// OperationIDs lists every operationId in the document, sorted.
func (p *Parser) OperationIDs(ctx context.Context, doc pkgopenapi.Document) ([]string, error) {
	spec, err := p.load(ctx, doc)
	if err != nil {
		return nil, err
	}
	ops := operations(spec)
	ids := make([]string, 0, len(ops))
	for id := range ops {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Form converts the request body of operationID into a form model.
func (p *Parser) Form(ctx context.Context, doc pkgopenapi.Document, operationID string) (model.FormModel, error) {
	spec, err := p.load(ctx, doc)
	if err != nil {
		return model.FormModel{}, err
	}

	op, ok := operations(spec)[operationID]
	if !ok {
		return model.FormModel{}, fmt.Errorf("%w: %q", pkgopenapi.ErrOperationNotFound, operationID)
	}

	body, contentType := p.requestSchema(op.operation)
	if body == nil {
		return model.FormModel{}, fmt.Errorf("%w: %q", pkgopenapi.ErrNoRequestBody, operationID)
	}

	fields, err := convertBody(body)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("openapi parser: operation %q: %w", operationID, err)
	}
	if len(fields) == 0 {
		return model.FormModel{}, fmt.Errorf("%w: %q defines no text properties", pkgopenapi.ErrNoRequestBody, operationID)
	}

	form := model.FormModel{
		ID:          operationID,
		Endpoint:    op.path,
		Method:      op.method,
		Summary:     op.operation.Summary,
		Description: op.operation.Description,
		Fields:      fields,
		Metadata: map[string]string{
			"contentType": contentType,
		},
	}
	if location := doc.Location(); location != "" {
		form.Metadata["source"] = location
	}
	return form, nil
}

func (p *Parser) load(ctx context.Context, doc pkgopenapi.Document) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.ResolveReferences,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}
	return spec, nil
}

// operations indexes the document by operationId. Operations without an id
// cannot be addressed and are skipped.
func operations(spec *openapi3.T) map[string]located {
	out := make(map[string]located)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || op.OperationID == "" {
				continue
			}
			out[op.OperationID] = located{method: method, path: path, operation: op}
		}
	}
	return out
}

func (p *Parser) requestSchema(op *openapi3.Operation) (*openapi3.Schema, string) {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, ""
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range p.options.ContentTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value, mediaType
		}
	}
	return nil, ""
}
