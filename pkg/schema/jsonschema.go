package schema

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-formfield/pkg/field"
)

var jsonSchemaSeq atomic.Uint64

// JSONSchemaOption configures a JSON Schema backed field schema.
type JSONSchemaOption func(*jsonSchema)

// WithKeywordMessages replaces the message for failing keywords, for example
// {"format": "Invalid email address", "minLength": "Too short"}. minLength,
// maxLength, pattern and format already default to the package messages.
func WithKeywordMessages(messages map[string]string) JSONSchemaOption {
	return func(s *jsonSchema) {
		for keyword, message := range messages {
			keyword = strings.TrimSpace(keyword)
			if keyword == "" {
				continue
			}
			s.messages[keyword] = strings.TrimSpace(message)
		}
	}
}

// WithJSONSchemaMessage reports message for any failure.
func WithJSONSchemaMessage(message string) JSONSchemaOption {
	return func(s *jsonSchema) {
		s.message = strings.TrimSpace(message)
	}
}

type jsonSchema struct {
	compiled *jsonschema.Schema
	messages map[string]string
	message  string
}

// JSONSchema compiles a Draft 2020-12 schema applied to the field value as a
// JSON string. Formats are asserted, so {"format": "email"} rejects values
// that are not addresses.
func JSONSchema(raw string, options ...JSONSchemaOption) (field.Schema, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("schema: json schema document is empty")
	}

	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	c.AssertFormat = true
	url := fmt.Sprintf("https://formfield.schemas.local/field/%d.schema.json", jsonSchemaSeq.Add(1))
	if err := c.AddResource(url, strings.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("schema: load json schema: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("schema: compile json schema: %w", err)
	}

	s := &jsonSchema{
		compiled: compiled,
		messages: defaultKeywordMessages(compiled),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *jsonSchema) Validate(value string) field.Result {
	err := s.compiled.Validate(value)
	if err == nil {
		return field.Success()
	}
	if s.message != "" {
		return field.Failure(s.message)
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return field.Failure(MessageInvalid)
	}

	var issues []string
	for _, leaf := range leafErrors(verr) {
		keyword := lastPointerSegment(leaf.KeywordLocation)
		if message, ok := s.messages[keyword]; ok && message != "" {
			issues = append(issues, message)
			continue
		}
		issues = append(issues, leaf.Message)
	}
	return field.Failure(issues...)
}

// defaultKeywordMessages maps the string keywords of compiled onto the
// messages used by the other rule kinds. Bounds and formats are looked up
// through $ref and allOf; other keywords keep the library message.
func defaultKeywordMessages(compiled *jsonschema.Schema) map[string]string {
	messages := map[string]string{
		"pattern": MessagePattern,
		"format":  MessageInvalid,
	}
	if n := findInt(compiled, func(s *jsonschema.Schema) int { return s.MinLength }); n >= 0 {
		messages["minLength"] = messageMinLength(n)
	}
	if n := findInt(compiled, func(s *jsonschema.Schema) int { return s.MaxLength }); n >= 0 {
		messages["maxLength"] = messageMaxLength(n)
	}
	if name := findFormat(compiled); name != "" {
		if spec, ok := formatTags[strings.ToLower(name)]; ok {
			messages["format"] = spec.message
		}
	}
	return messages
}

func findInt(root *jsonschema.Schema, get func(*jsonschema.Schema) int) int {
	n := -1
	walkSchema(root, func(s *jsonschema.Schema) bool {
		if v := get(s); v >= 0 {
			n = v
			return true
		}
		return false
	})
	return n
}

func findFormat(root *jsonschema.Schema) string {
	var name string
	walkSchema(root, func(s *jsonschema.Schema) bool {
		name = s.Format
		return name != ""
	})
	return name
}

// walkSchema visits root, its $ref target and its allOf members depth first
// until visit returns true.
func walkSchema(root *jsonschema.Schema, visit func(*jsonschema.Schema) bool) {
	seen := make(map[*jsonschema.Schema]struct{})
	var walk func(*jsonschema.Schema) bool
	walk = func(s *jsonschema.Schema) bool {
		if s == nil {
			return false
		}
		if _, ok := seen[s]; ok {
			return false
		}
		seen[s] = struct{}{}
		if visit(s) {
			return true
		}
		if walk(s.Ref) {
			return true
		}
		for _, member := range s.AllOf {
			if walk(member) {
				return true
			}
		}
		return false
	}
	walk(root)
}

func leafErrors(verr *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if verr == nil {
		return nil
	}
	if len(verr.Causes) == 0 {
		return []*jsonschema.ValidationError{verr}
	}
	var out []*jsonschema.ValidationError
	for _, cause := range verr.Causes {
		out = append(out, leafErrors(cause)...)
	}
	return out
}

func lastPointerSegment(pointer string) string {
	pointer = strings.TrimRight(strings.TrimSpace(pointer), "/")
	if idx := strings.LastIndex(pointer, "/"); idx >= 0 {
		return pointer[idx+1:]
	}
	return pointer
}
