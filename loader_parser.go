package formfield

import (
	"context"
	"fmt"

	internalLoader "github.com/goliatone/go-formfield/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formfield/internal/openapi/parser"
	"github.com/goliatone/go-formfield/pkg/model"
	pkgopenapi "github.com/goliatone/go-formfield/pkg/openapi"
)

// NewLoader constructs an OpenAPI loader while keeping the concrete type
// hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	return internalLoader.New(pkgopenapi.NewLoaderOptions(options...))
}

// NewParser constructs an OpenAPI parser backed by kin-openapi.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return internalParser.New(pkgopenapi.NewParserOptions(options...))
}

// LoadForm loads src and converts the request body of operationID into a
// form model.
func LoadForm(ctx context.Context, src pkgopenapi.Source, operationID string, options ...pkgopenapi.LoaderOption) (model.FormModel, error) {
	doc, err := NewLoader(options...).Load(ctx, src)
	if err != nil {
		return model.FormModel{}, err
	}
	return NewParser().Form(ctx, doc, operationID)
}

// FormFromData converts operationID of an in-memory OpenAPI document.
func FormFromData(ctx context.Context, raw []byte, operationID string, options ...pkgopenapi.ParserOption) (model.FormModel, error) {
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFS("inline"), raw)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("formfield: %w", err)
	}
	return NewParser(options...).Form(ctx, doc, operationID)
}
