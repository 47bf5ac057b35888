package schema

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formfield/pkg/field"
)

var (
	tagValidatorOnce sync.Once
	tagValidator     *validator.Validate
)

func sharedValidator() *validator.Validate {
	tagValidatorOnce.Do(func() {
		tagValidator = validator.New()
	})
	return tagValidator
}

// TagOption configures a tag schema.
type TagOption func(*tagSchema)

// WithTagMessage reports message for every failure of the tag expression.
func WithTagMessage(message string) TagOption {
	return func(s *tagSchema) {
		s.message = strings.TrimSpace(message)
	}
}

type tagSchema struct {
	tag      string
	message  string
	validate *validator.Validate
}

// Tag validates values with a go-playground/validator tag expression such as
// "required,email" or "min=8,max=72". Unknown tags are reported here rather
// than when a value is checked.
func Tag(tag string, options ...TagOption) (field.Schema, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, errors.New("schema: tag expression is empty")
	}
	s := &tagSchema{tag: tag, validate: sharedValidator()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if err := checkTag(s.validate, tag); err != nil {
		return nil, err
	}
	return s, nil
}

// checkTag runs the expression once: the validator panics on undefined tags.
func checkTag(v *validator.Validate, tag string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("schema: invalid tag %q: %v", tag, r)
		}
	}()
	verr := v.Var("", tag)
	var invalid *validator.InvalidValidationError
	if errors.As(verr, &invalid) {
		return fmt.Errorf("schema: invalid tag %q: %w", tag, verr)
	}
	return nil
}

func (s *tagSchema) Validate(value string) field.Result {
	err := s.validate.Var(value, s.tag)
	if err == nil {
		return field.Success()
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return field.Failure(pick(s.message, MessageInvalid))
	}
	issues := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, pick(s.message, tagMessage(fe.Tag(), fe.Param())))
	}
	return field.Failure(issues...)
}

func tagMessage(tag, param string) string {
	switch tag {
	case "required":
		return MessageRequired
	case "email":
		return MessageEmail
	case "url", "uri", "http_url":
		return MessageURL
	case "uuid", "uuid4":
		return MessageUUID
	case "min", "gte":
		if n, ok := parseInt(param); ok {
			return messageMinLength(n)
		}
	case "max", "lte":
		if n, ok := parseInt(param); ok {
			return messageMaxLength(n)
		}
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", param)
	case "alphanum":
		return "Must contain only letters and digits"
	case "numeric", "number":
		return "Must be a number"
	case "oneof":
		return "Must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "containsany":
		return fmt.Sprintf("Must contain one of %q", param)
	}
	return MessageInvalid
}
