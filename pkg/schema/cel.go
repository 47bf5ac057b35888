package schema

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/goliatone/go-formfield/pkg/field"
)

var (
	celEnvOnce sync.Once
	celEnv     *cel.Env
	celEnvErr  error
)

func environment() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("value", cel.StringType),
		)
	})
	return celEnv, celEnvErr
}

type celSchema struct {
	expr    string
	message string
	program cel.Program
}

// CEL compiles a boolean expression over the string variable "value", for
// example `value.contains("@") && size(value) <= 254`. The expression must
// type-check to bool. An evaluation error at validation time is a programmer
// error and panics.
func CEL(expr, message string) (field.Schema, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, errors.New("schema: cel expression is empty")
	}
	env, err := environment()
	if err != nil {
		return nil, fmt.Errorf("schema: cel environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("schema: compile cel %q: %w", expr, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("schema: cel %q must evaluate to bool, got %s", expr, ast.OutputType())
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("schema: build cel program %q: %w", expr, err)
	}

	return &celSchema{
		expr:    expr,
		message: pick(strings.TrimSpace(message), MessageInvalid),
		program: program,
	}, nil
}

func (s *celSchema) Validate(value string) field.Result {
	out, _, err := s.program.Eval(map[string]any{"value": value})
	if err != nil {
		panic(fmt.Sprintf("schema: evaluate cel %q: %v", s.expr, err))
	}
	ok, isBool := out.Value().(bool)
	if !isBool {
		panic(fmt.Sprintf("schema: cel %q produced %T, want bool", s.expr, out.Value()))
	}
	if !ok {
		return field.Failure(s.message)
	}
	return field.Success()
}
