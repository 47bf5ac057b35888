package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formfield/pkg/schema"
)

func TestTag(t *testing.T) {
	s, err := schema.Tag("required,email")
	require.NoError(t, err)

	assert.Equal(t, []string{schema.MessageRequired}, s.Validate("").Issues)
	assert.Equal(t, []string{schema.MessageEmail}, s.Validate("foo").Issues)
	assert.True(t, s.Validate("foo@bar.com").Valid())

	minLen, err := schema.Tag("min=8")
	require.NoError(t, err)
	assert.Equal(t, []string{"Must be at least 8 characters"}, minLen.Validate("abc").Issues)

	custom, err := schema.Tag("oneof=admin editor", schema.WithTagMessage("Pick a role"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Pick a role"}, custom.Validate("root").Issues)
	assert.True(t, custom.Validate("editor").Valid())
}

func TestTag_Invalid(t *testing.T) {
	_, err := schema.Tag("")
	require.Error(t, err)

	_, err = schema.Tag("no_such_validator")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_validator")
}

func TestJSONSchema(t *testing.T) {
	s, err := schema.JSONSchema(`{"type": "string", "format": "email"}`,
		schema.WithKeywordMessages(map[string]string{"format": "Invalid email address"}),
	)
	require.NoError(t, err)

	assert.True(t, s.Validate("foo@bar.com").Valid())
	assert.Equal(t, []string{"Invalid email address"}, s.Validate("foo").Issues)
}

func TestJSONSchema_DefaultMessages(t *testing.T) {
	s, err := schema.JSONSchema(`{"type": "string", "minLength": 3, "pattern": "^[a-z]+$"}`)
	require.NoError(t, err)

	result := s.Validate("A")
	require.False(t, result.Valid())
	assert.ElementsMatch(t, []string{"Must be at least 3 characters", schema.MessagePattern}, result.Issues)
	assert.True(t, s.Validate("abc").Valid())

	nested, err := schema.JSONSchema(`{"allOf": [{"type": "string", "maxLength": 4}, {"format": "email"}]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Must be at most 4 characters"}, nested.Validate("a@b.c").Issues)
	assert.Equal(t, []string{schema.MessageEmail}, nested.Validate("ab").Issues)

	custom, err := schema.JSONSchema(`{"type": "string", "minLength": 3}`,
		schema.WithKeywordMessages(map[string]string{"minLength": "Too short"}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"Too short"}, custom.Validate("ab").Issues)
}

func TestJSONSchema_Invalid(t *testing.T) {
	_, err := schema.JSONSchema("  ")
	require.Error(t, err)

	_, err = schema.JSONSchema(`{"type": "string", "minLength": "three"}`)
	require.Error(t, err)
}

func TestCEL(t *testing.T) {
	s, err := schema.CEL(`value.contains("@") && size(value) <= 254`, "Invalid email address")
	require.NoError(t, err)

	assert.True(t, s.Validate("a@b").Valid())
	assert.Equal(t, []string{"Invalid email address"}, s.Validate("ab").Issues)

	fallback, err := schema.CEL(`value != ""`, "")
	require.NoError(t, err)
	assert.Equal(t, []string{schema.MessageInvalid}, fallback.Validate("").Issues)
}

func TestCEL_Invalid(t *testing.T) {
	_, err := schema.CEL("", "")
	require.Error(t, err)

	_, err = schema.CEL("value +", "")
	require.Error(t, err)

	_, err = schema.CEL("size(value)", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must evaluate to bool")

	_, err = schema.CEL("unknown_var == 1", "")
	require.Error(t, err)
}
