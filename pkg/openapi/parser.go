package openapi

import (
	"context"

	"github.com/goliatone/go-formfield/pkg/model"
)

// Extension keys read from request body schemas and their properties.
const (
	// ExtensionMessage is either a string applied to every rule of a property
	// or a map keyed by rule kind ("required", "format", "minLength", ...).
	ExtensionMessage = "x-formfield-message"
	// ExtensionCEL is a CEL expression string, or an object with "expr" and
	// "message", evaluated against the field value.
	ExtensionCEL = "x-formfield-cel"
	// ExtensionOrder lists property names in display order on the body schema.
	ExtensionOrder = "x-formfield-order"
	// ExtensionInputType overrides the rendered input type of a property.
	ExtensionInputType = "x-formfield-input-type"
)

// Parser converts one operation of a Document into a form model.
type Parser interface {
	Form(ctx context.Context, doc Document, operationID string) (model.FormModel, error)
	OperationIDs(ctx context.Context, doc Document) ([]string, error)
}

// ParserOptions toggles document handling.
type ParserOptions struct {
	// ResolveReferences allows external $refs and validates the document.
	// Defaults to true.
	ResolveReferences bool

	// ContentTypes lists the request body media types searched in order.
	ContentTypes []string
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithReferenceResolution toggles reference resolution and validation.
func WithReferenceResolution(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ResolveReferences = enabled
	}
}

// WithContentTypes replaces the preferred request body media types.
func WithContentTypes(types ...string) ParserOption {
	return func(opts *ParserOptions) {
		if len(types) > 0 {
			opts.ContentTypes = append([]string(nil), types...)
		}
	}
}

// DefaultContentTypes are searched when no override is configured.
var DefaultContentTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// NewParserOptions applies options over the defaults.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		ResolveReferences: true,
		ContentTypes:      append([]string(nil), DefaultContentTypes...),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
