// Package formfield wires the OpenAPI loader and parser implementations
// behind the public contracts in pkg/openapi. Form state lives in pkg/field
// and pkg/form; rendering lives in pkg/render.
package formfield
