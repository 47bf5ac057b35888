package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formfield/pkg/render/template/pongo"
	"github.com/goliatone/go-formfield/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func newEngine(t *testing.T, options ...pongo.Option) *pongo.Engine {
	t.Helper()
	sub, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := pongo.New(append([]pongo.Option{pongo.WithFS(sub)}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestPongoEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestPongoEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, pongo.WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))

	result, err := engine.RenderTemplate("use-global.tpl", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging\n" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestPongoEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!\n" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestPongoEngine_AutoEscapesStructData(t *testing.T) {
	engine := newEngine(t)

	data := struct {
		Message string `json:"message"`
	}{Message: "  <b>bold</b>  "}

	result, err := engine.RenderTemplate("escape", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "<p>&lt;b&gt;bold&lt;/b&gt;</p>\n"
	if result != want {
		t.Fatalf("escape mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestPongoEngine_RenderString(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderString("{{ a }}-{{ b }}", map[string]any{"a": 1, "b": "two"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "1-two" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestPongoEngine_RequiresSource(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestPongoEngine_BaseDirAndExtension(t *testing.T) {
	engine, err := pongo.New(
		pongo.WithBaseDir(filepath.Join("testdata", "html")),
		pongo.WithExtension("html"),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.RenderTemplate("greet", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hi Ada from disk\n" {
		t.Fatalf("unexpected output %q", result)
	}

	if _, err := pongo.New(pongo.WithBaseDir(filepath.Join("testdata", "missing"))); err == nil {
		t.Fatalf("expected error for missing base dir")
	}
}

func TestPongoEngine_BaseDirOverridesFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.tpl"), []byte("Howdy, {{ name }}!\n"), 0o600); err != nil {
		t.Fatalf("write override: %v", err)
	}
	engine := newEngine(t, pongo.WithBaseDir(dir))

	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Howdy, Ada!\n" {
		t.Fatalf("unexpected output %q", result)
	}

	fallback, err := engine.RenderTemplate("escape", map[string]any{"message": "hi"})
	if err != nil {
		t.Fatalf("render fallback: %v", err)
	}
	if fallback != "<p>hi</p>\n" {
		t.Fatalf("unexpected fallback output %q", fallback)
	}
}
