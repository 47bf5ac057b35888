// Package testsupport holds fixture and golden-file helpers shared by the
// package tests. Set UPDATE_GOLDENS=1 to rewrite goldens from current output.
package testsupport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-formfield/pkg/model"
	pkgopenapi "github.com/goliatone/go-formfield/pkg/openapi"
)

const updateEnv = "UPDATE_GOLDENS"

// LoadDocument reads an OpenAPI fixture into a Document with a file source.
func LoadDocument(t *testing.T, path string) pkgopenapi.Document {
	t.Helper()
	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath is LoadDocument for setup code without a *testing.T.
func LoadDocumentFromPath(path string) (pkgopenapi.Document, error) {
	if path == "" {
		return pkgopenapi.Document{}, errors.New("testsupport: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	return pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), data)
}

// MustLoadFormModel reads a JSON golden into a FormModel.
func MustLoadFormModel(t *testing.T, path string) pkgmodel.FormModel {
	t.Helper()
	data := MustReadGolden(t, path)
	var out pkgmodel.FormModel
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal form model %s: %v", path, err)
	}
	return out
}

// WriteGolden stores value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()
	if os.Getenv(updateEnv) == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	writeFile(t, path, append(payload, '\n'))
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file as a string.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written, so tests can assert they agree.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()
	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}
