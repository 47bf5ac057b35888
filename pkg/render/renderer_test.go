package render_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/schema"
)

func loginForm(t *testing.T) *form.Form {
	t.Helper()
	m := model.FormModel{
		ID:       "login",
		Endpoint: "/session",
		Method:   "POST",
		Summary:  "Sign in",
		Fields: []model.Field{
			{Name: "email", Label: "Email", Format: "email", Required: true, Placeholder: "you@example.com"},
			{Name: "password", Format: "password", Required: true},
			{Name: "remember", Default: "yes"},
		},
	}
	f, err := form.New(m, form.WithErrorIDPrefix("login"))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

func renderForm(t *testing.T, f *form.Form, opts render.RenderOptions) string {
	t.Helper()
	r, err := render.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), f, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func assertNotContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(html, fragment) {
			t.Fatalf("expected output not to contain %q\n%s", fragment, html)
		}
	}
}

func TestRenderPristineFormHasNoErrorChrome(t *testing.T) {
	html := renderForm(t, loginForm(t), render.RenderOptions{})

	assertContains(t, html,
		`<form id="login" action="/session" method="post" novalidate>`,
		`<label for="login-email">Email <span aria-hidden="true">*</span></label>`,
		`placeholder="you@example.com"`,
		`type="password"`,
		`name="remember" type="text" value="yes"`,
		`<button type="submit">Submit</button>`,
	)
	assertNotContains(t, html, "aria-invalid", "aria-describedby", `role="alert"`)
}

func TestRenderDisplayedErrorIsLinked(t *testing.T) {
	f := loginForm(t)
	if err := f.HandleBlur("email", "foo"); err != nil {
		t.Fatalf("blur: %v", err)
	}

	html := renderForm(t, f, render.RenderOptions{})

	assertContains(t, html,
		`value="foo" placeholder="you@example.com" required aria-invalid="true" aria-describedby="login-email-error">`,
		`<p id="login-email-error" role="alert" aria-live="polite">`+schema.MessageEmail+`</p>`,
	)
	assertNotContains(t, html, `id="login-password-error"`)

	if err := f.HandleChange("email", "foo@bar.com"); err != nil {
		t.Fatalf("change: %v", err)
	}
	html = renderForm(t, f, render.RenderOptions{})
	assertNotContains(t, html, "aria-invalid", `id="login-email-error"`)
}

func TestRenderSpacedFieldNameKeepsIDsLinkable(t *testing.T) {
	f, err := form.New(model.FormModel{
		ID:     "signup",
		Fields: []model.Field{{Name: "user email", Format: "email"}},
	}, form.WithErrorIDPrefix("signup"))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	if err := f.HandleBlur("user email", "foo"); err != nil {
		t.Fatalf("blur: %v", err)
	}

	html := renderForm(t, f, render.RenderOptions{})

	assertContains(t, html,
		`<label for="signup-user-email">`,
		`<input id="signup-user-email" name="user email"`,
		`aria-describedby="signup-user-email-error">`,
		`<p id="signup-user-email-error" role="alert"`,
	)
	assertNotContains(t, html, `id="signup-user email`, `"signup-user email-error"`)
}

func TestRenderTemplatesDirOverridesField(t *testing.T) {
	dir := t.TempDir()
	override := `<em id="{{ field.id }}">{{ field.label }}</em>` + "\n"
	if err := os.WriteFile(filepath.Join(dir, "field.tpl"), []byte(override), 0o600); err != nil {
		t.Fatalf("write override: %v", err)
	}

	r, err := render.New(render.WithTemplatesDir(dir))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), loginForm(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(out)
	assertContains(t, html, `<em id="login-email">Email</em>`, `<form`, `<button type="submit">Submit</button>`)
	assertNotContains(t, html, `<input id="login-email"`)

	if _, err := render.New(render.WithTemplatesDir(filepath.Join(dir, "missing"))); err == nil {
		t.Fatalf("expected error for missing templates dir")
	}
}

func TestRenderSanitisesServerMessages(t *testing.T) {
	f := loginForm(t)
	f.SetServerErrors(map[string][]string{
		"/body/email": {`<script>alert(1)</script>Email already registered`},
		"form":        {`<b>Too many attempts</b>`},
		"password":    {`<img src=x onerror=alert(1)>`},
	})

	html := renderForm(t, f, render.RenderOptions{})

	assertContains(t, html,
		`<p id="login-email-error" role="alert" aria-live="polite">Email already registered</p>`,
		`<div class="form-errors" role="alert">`,
		`<p>Too many attempts</p>`,
	)
	assertNotContains(t, html, "<script>", "<b>", "onerror", `id="login-password-error"`)
}

func TestRenderOptionsOverrideMethodValuesAndHidden(t *testing.T) {
	f := loginForm(t)

	html := renderForm(t, f, render.RenderOptions{
		Action:      "/override",
		Method:      "patch",
		Values:      map[string]string{"email": `a"b@example.com`},
		Hidden:      []render.HiddenField{render.CSRFToken("_csrf", "tok")},
		SubmitLabel: "Save",
	})

	assertContains(t, html,
		`action="/override" method="post"`,
		`<input type="hidden" name="_csrf" value="tok">`,
		`<input type="hidden" name="_method" value="PATCH">`,
		`value="a&quot;b@example.com"`,
		`<button type="submit">Save</button>`,
	)
}

func TestRenderHonoursContext(t *testing.T) {
	r, err := render.New(render.WithSubmitLabel("Go"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, loginForm(t), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
	if _, err := r.Render(context.Background(), nil, render.RenderOptions{}); err == nil {
		t.Fatalf("expected nil form error")
	}
}

func TestSanitizeMessage(t *testing.T) {
	cases := map[string]string{
		"  plain  ":              "plain",
		"<i>x</i>":               "x",
		"<script>bad()</script>": "",
		"Tom & Jerry":            "Tom &amp; Jerry",
	}
	for in, want := range cases {
		if got := render.SanitizeMessage(in); got != want {
			t.Fatalf("SanitizeMessage(%q) = %q, want %q", in, got, want)
		}
	}
}
