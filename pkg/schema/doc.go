// Package schema provides field.Schema implementations: rule sets derived
// from a model.Field, go-playground/validator tags, Draft 2020-12 JSON Schema
// documents and CEL expressions. Every constructor compiles its input up
// front and returns an error for malformed definitions, so a schema that made
// it into a field.Validator never fails for reasons other than the value.
package schema
