package field_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formfield/pkg/field"
)

var emailSchema = field.SchemaFunc(func(value string) field.Result {
	at := strings.Index(value, "@")
	if at <= 0 {
		return field.Failure("Invalid email address")
	}
	domain := value[at+1:]
	if !strings.Contains(domain, ".") || strings.HasSuffix(domain, ".") {
		return field.Failure("Email must include a domain")
	}
	return field.Success()
})

func newEmailValidator(t *testing.T) *field.Validator {
	t.Helper()
	v, err := field.New(emailSchema, field.WithName("email"), field.WithErrorID("email-error"))
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return v
}

func TestValidator_EmailScenarios(t *testing.T) {
	v := newEmailValidator(t)

	v.HandleChange("foo")
	if v.HasError() || v.HasShownError() {
		t.Fatalf("change before first blur must not validate: error=%q shown=%v", v.Error(), v.HasShownError())
	}
	if !v.Dirty() || v.Touched() {
		t.Fatalf("expected dirty untouched field, got dirty=%v touched=%v", v.Dirty(), v.Touched())
	}

	v.HandleBlur("foo")
	if got := v.Error(); got != "Invalid email address" {
		t.Fatalf("expected blur error, got %q", got)
	}
	if !v.HasShownError() || v.Cadence() != field.OnBlurAndChange {
		t.Fatalf("expected escalation after failed blur, cadence=%s", v.Cadence())
	}

	v.HandleChange("foo@")
	if got := v.Error(); got != "Email must include a domain" {
		t.Fatalf("expected updated error after change, got %q", got)
	}

	v.HandleChange("foo@bar.com")
	if v.HasError() {
		t.Fatalf("expected error to clear on valid change, got %q", v.Error())
	}
	if !v.HasShownError() {
		t.Fatalf("escalation must survive a valid value")
	}

	fresh := newEmailValidator(t)
	fresh.HandleChange("foo")
	if fresh.HasShownError() || fresh.HasError() {
		t.Fatalf("a new instance must start unescalated")
	}
}

func TestValidator_StateSnapshot(t *testing.T) {
	v := newEmailValidator(t)
	v.HandleBlur("nope")

	msg := "Invalid email address"
	want := field.State{
		Name:          "email",
		Value:         "nope",
		Touched:       true,
		HasShownError: true,
		Cadence:       field.OnBlurAndChange,
		Error:         &msg,
		ErrorID:       "email-error",
		InputProps: field.InputProps{
			AriaInvalid:     "true",
			AriaDescribedBy: "email-error",
		},
	}
	if diff := cmp.Diff(want, v.State()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}

	v.HandleChange("a@b.io")
	state := v.State()
	if state.Error != nil {
		t.Fatalf("expected nil error after valid change, got %q", *state.Error)
	}
	if diff := cmp.Diff(field.InputProps{}, state.InputProps); diff != "" {
		t.Fatalf("expected empty input props (-want +got):\n%s", diff)
	}
}

func TestValidator_SuccessfulBlurKeepsBlurCadence(t *testing.T) {
	v := newEmailValidator(t)
	v.HandleBlur("user@example.com")
	if v.HasError() || v.HasShownError() {
		t.Fatalf("valid blur must not escalate")
	}
	v.HandleChange("broken")
	if v.HasError() {
		t.Fatalf("change after a valid blur must not validate, got %q", v.Error())
	}
	if got := v.Value(); got != "broken" {
		t.Fatalf("expected last value to be recorded, got %q", got)
	}
}

func TestValidator_EmptyValueFollowsSchema(t *testing.T) {
	permissive, err := field.New(field.SchemaFunc(func(string) field.Result { return field.Success() }))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	permissive.HandleBlur("")
	if permissive.HasError() {
		t.Fatalf("permissive schema must accept the empty string")
	}

	strict := newEmailValidator(t)
	strict.HandleBlur("")
	if got := strict.Error(); got != "Invalid email address" {
		t.Fatalf("expected schema message for empty value, got %q", got)
	}
}

func TestValidator_BlankIssuesUseDefaultMessage(t *testing.T) {
	v, err := field.New(field.SchemaFunc(func(string) field.Result {
		return field.Result{Issues: []string{"  ", ""}}
	}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	v.HandleBlur("x")
	if got := v.Error(); got != field.DefaultMessage {
		t.Fatalf("expected default message, got %q", got)
	}
}

func TestValidator_UsesFirstIssue(t *testing.T) {
	v, err := field.New(field.SchemaFunc(func(string) field.Result {
		return field.Failure("", "Too short", "Missing digit")
	}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	v.HandleBlur("x")
	if got := v.Error(); got != "Too short" {
		t.Fatalf("expected first non-blank issue, got %q", got)
	}
}

func TestValidator_MarkClean(t *testing.T) {
	v := newEmailValidator(t)
	v.HandleChange("a")
	v.HandleBlur("a")
	v.MarkClean()
	if v.Dirty() {
		t.Fatalf("expected MarkClean to reset dirty")
	}
	if !v.HasShownError() {
		t.Fatalf("MarkClean must not reset escalation")
	}
}

func TestValidator_ErrorIDGeneration(t *testing.T) {
	a, err := field.New(emailSchema, field.WithName("user email"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	b, err := field.New(emailSchema, field.WithName("user email"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !strings.HasPrefix(a.ErrorID(), "user-email-error-") {
		t.Fatalf("unexpected error id %q", a.ErrorID())
	}
	if a.ErrorID() == b.ErrorID() {
		t.Fatalf("expected distinct ids per instance, got %q twice", a.ErrorID())
	}

	id := a.ErrorID()
	a.HandleBlur("x")
	a.HandleChange("x@y.z")
	if a.ErrorID() != id {
		t.Fatalf("error id must be stable, %q became %q", id, a.ErrorID())
	}

	anon, err := field.New(emailSchema)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !strings.HasPrefix(anon.ErrorID(), "field-error-") {
		t.Fatalf("unexpected anonymous error id %q", anon.ErrorID())
	}
}

func TestValidator_NilSchema(t *testing.T) {
	if _, err := field.New(nil); err != field.ErrSchemaRequired {
		t.Fatalf("expected ErrSchemaRequired, got %v", err)
	}
}

func TestValidator_PanickingSchemaPropagates(t *testing.T) {
	v, err := field.New(field.SchemaFunc(func(string) field.Result {
		panic("bad pattern")
	}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected schema panic to propagate")
		}
		if v.HasError() {
			t.Fatalf("a panicking schema must not be turned into a field error")
		}
	}()
	v.HandleBlur("x")
}

func TestInputProps_Attrs(t *testing.T) {
	got := field.PropsFor("pw-error", "Too short").Attrs()
	want := map[string]string{"aria-invalid": "true", "aria-describedby": "pw-error"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{}, field.PropsFor("pw-error", "").Attrs(), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("expected no attrs without an error (-want +got):\n%s", diff)
	}
}

func TestValidator_ConstructionDoesNotValidate(t *testing.T) {
	calls := 0
	counting := field.SchemaFunc(func(value string) field.Result {
		calls++
		return field.Failure("always")
	})

	v, err := field.New(counting, field.WithName("email"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no validation on construction, got %d calls", calls)
	}
	if v.HasError() || v.Touched() || v.Dirty() || v.HasShownError() {
		t.Fatalf("unexpected initial state %+v", v.State())
	}

	v.HandleChange("a")
	if calls != 0 {
		t.Fatalf("expected change before first blur not to validate, got %d calls", calls)
	}
	v.HandleBlur("a")
	if calls != 1 {
		t.Fatalf("expected one validation after blur, got %d", calls)
	}
}

func TestCadence_Text(t *testing.T) {
	for _, want := range []field.Cadence{field.OnBlurOnly, field.OnBlurAndChange} {
		text, err := want.MarshalText()
		if err != nil {
			t.Fatalf("marshal %v: %v", want, err)
		}
		var got field.Cadence
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("unmarshal %q: %v", text, err)
		}
		if got != want {
			t.Fatalf("cadence mismatch: want %v got %v", want, got)
		}
	}

	var c field.Cadence
	err := c.UnmarshalText([]byte("on-keystroke"))
	if err == nil {
		t.Fatalf("expected error for unknown cadence")
	}
	if !strings.Contains(err.Error(), `"on-keystroke"`) {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestSanitizeID(t *testing.T) {
	cases := map[string]string{
		"email":          "email",
		"user email":     "user-email",
		" x-user email ": "x-user-email",
		"a.b[0]":         "a-b-0-",
		"":               "",
	}
	for in, want := range cases {
		if got := field.SanitizeID(in); got != want {
			t.Fatalf("SanitizeID(%q) = %q, want %q", in, got, want)
		}
	}
}
