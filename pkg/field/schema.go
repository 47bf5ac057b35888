package field

import "strings"

// Schema judges whether a field value is acceptable. Implementations must be
// pure and synchronous: the same value always yields the same Result. A schema
// that panics is a programmer error and the panic is not recovered.
type Schema interface {
	Validate(value string) Result
}

// SchemaFunc adapts a plain function to the Schema interface.
type SchemaFunc func(value string) Result

// Validate calls fn(value).
func (fn SchemaFunc) Validate(value string) Result {
	return fn(value)
}

// Result is the outcome of a schema run. A Result without issues is a success.
type Result struct {
	Issues []string `json:"issues,omitempty"`
}

// Valid reports whether the run succeeded.
func (r Result) Valid() bool {
	return len(r.Issues) == 0
}

// Success returns a passing Result.
func Success() Result {
	return Result{}
}

// Failure returns a failing Result carrying the given issues. A failure with
// no issues still fails and is reported with DefaultMessage.
func Failure(issues ...string) Result {
	if len(issues) == 0 {
		return Result{Issues: []string{DefaultMessage}}
	}
	return Result{Issues: append([]string(nil), issues...)}
}

// First returns the first non-blank issue, or DefaultMessage when the result
// failed with blank issues only. It returns "" for a passing result.
func (r Result) First() string {
	if r.Valid() {
		return ""
	}
	for _, issue := range r.Issues {
		if trimmed := strings.TrimSpace(issue); trimmed != "" {
			return trimmed
		}
	}
	return DefaultMessage
}
