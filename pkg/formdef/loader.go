package formdef

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfield/pkg/model"
)

// Store holds the forms loaded from one or more definition files.
type Store struct {
	forms   map[string]model.FormModel
	sources map[string]string
}

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	Endpoint    string            `json:"endpoint" yaml:"endpoint"`
	Method      string            `json:"method" yaml:"method"`
	Summary     string            `json:"summary" yaml:"summary"`
	Description string            `json:"description" yaml:"description"`
	Fields      []model.Field     `json:"fields" yaml:"fields"`
	Metadata    map[string]string `json:"metadata" yaml:"metadata"`
}

// LoadFS walks fsys and parses every JSON/YAML definition file. A nil fsys
// yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := newStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formdef: read %s: %w", path, err)
		}
		return store.add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadPath loads a single definition file or every definition file under a
// directory.
func LoadPath(path string) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("formdef: %w", err)
	}
	if info.IsDir() {
		return LoadFS(os.DirFS(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formdef: read %s: %w", path, err)
	}
	return Parse(data, filepath.Base(path))
}

// Parse parses one definition document. source names it in error messages.
func Parse(data []byte, source string) (*Store, error) {
	store := newStore()
	if err := store.add(data, source); err != nil {
		return nil, err
	}
	return store, nil
}

// Form returns the form registered under id.
func (s *Store) Form(id string) (model.FormModel, bool) {
	if s == nil {
		return model.FormModel{}, false
	}
	form, ok := s.forms[id]
	return form, ok
}

// IDs returns the sorted form ids.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any form.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func newStore() *Store {
	return &Store{
		forms:   make(map[string]model.FormModel),
		sources: make(map[string]string),
	}
}

func (s *Store) add(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}

	for rawID, raw := range doc.Forms {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return fmt.Errorf("formdef: file %s defines an empty form id", source)
		}
		if prev, exists := s.sources[id]; exists {
			return fmt.Errorf("formdef: duplicate form %q (files %s and %s)", id, prev, source)
		}
		form, err := normaliseForm(raw, id, source)
		if err != nil {
			return err
		}
		s.forms[id] = form
		s.sources[id] = source
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("formdef: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("formdef: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return doc, nil
}

func normaliseForm(raw formFile, id, source string) (model.FormModel, error) {
	if len(raw.Fields) == 0 {
		return model.FormModel{}, fmt.Errorf("formdef: form %q (file %s) has no fields", id, source)
	}

	form := model.FormModel{
		ID:          id,
		Endpoint:    strings.TrimSpace(raw.Endpoint),
		Method:      strings.ToUpper(strings.TrimSpace(raw.Method)),
		Summary:     raw.Summary,
		Description: raw.Description,
		Fields:      make([]model.Field, 0, len(raw.Fields)),
		Metadata:    raw.Metadata,
	}
	if form.Method == "" {
		form.Method = "POST"
	}

	seen := make(map[string]struct{}, len(raw.Fields))
	for idx, f := range raw.Fields {
		f.Name = strings.TrimSpace(f.Name)
		if f.Name == "" {
			return model.FormModel{}, fmt.Errorf("formdef: form %q (file %s) field %d has no name", id, source, idx)
		}
		if _, exists := seen[f.Name]; exists {
			return model.FormModel{}, fmt.Errorf("formdef: form %q (file %s) defines duplicate field %q", id, source, f.Name)
		}
		seen[f.Name] = struct{}{}
		for ridx, rule := range f.Validations {
			if strings.TrimSpace(rule.Kind) == "" {
				return model.FormModel{}, fmt.Errorf("formdef: form %q (file %s) field %q rule %d has no kind", id, source, f.Name, ridx)
			}
		}
		form.Fields = append(form.Fields, f)
	}
	return form, nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
