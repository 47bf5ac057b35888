// Package model defines the form model shared by the definition loaders, the
// form composition layer and the renderers. A FormModel is an ordered list of
// fields; each Field carries the presentation hints (label, placeholder,
// input type) and the validation rules used to build its schema. Validation
// rules use canonical identifiers (minLength, maxLength, pattern, format, tag,
// cel, jsonSchema) with string parameters so definitions stay stable when
// serialised to JSON or YAML.
package model
