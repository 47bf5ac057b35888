package formdef_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/formdef"
	"github.com/goliatone/go-formfield/pkg/model"
)

func TestLoadFS_Testdata(t *testing.T) {
	store, err := formdef.LoadFS(os.DirFS("testdata"))
	require.NoError(t, err)
	require.False(t, store.Empty())

	assert.Equal(t, []string{"login", "reset-password", "signup"}, store.IDs())

	login, ok := store.Form("login")
	require.True(t, ok)
	assert.Equal(t, "POST", login.Method)
	assert.Equal(t, "/auth/login", login.Endpoint)
	require.Len(t, login.Fields, 2)
	assert.Equal(t, "email", login.Fields[0].Name)
	assert.Equal(t, "you@example.com", login.Fields[0].Placeholder)
	assert.Equal(t, "Password is required", login.Fields[1].RequiredMessage)

	signup, ok := store.Form("signup")
	require.True(t, ok)
	password, ok := signup.FieldByName("password")
	require.True(t, ok)
	require.Len(t, password.Validations, 2)
	assert.Equal(t, model.ValidationRulePattern, password.Validations[1].Kind)
	assert.Equal(t, "Password must contain a number", password.Validations[1].Param(model.ParamMessage))

	reset, ok := store.Form("reset-password")
	require.True(t, ok)
	assert.Equal(t, "tag", reset.Fields[0].Validations[0].Kind)
}

func TestLoadFS_FormsBuild(t *testing.T) {
	store, err := formdef.LoadFS(os.DirFS("testdata"))
	require.NoError(t, err)

	for _, id := range store.IDs() {
		m, _ := store.Form(id)
		_, err := form.New(m)
		require.NoError(t, err, "form %s", id)
	}

	signup, _ := store.Form("signup")
	f, err := form.New(signup)
	require.NoError(t, err)
	require.NoError(t, f.HandleBlur("handle", "admin"))
	assert.Equal(t, "Handle is reserved", f.DisplayError("handle"))
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]string{
		"empty file":     "",
		"no fields":      "forms:\n  login: {}\n",
		"unnamed field":  "forms:\n  login:\n    fields:\n      - label: Email\n",
		"duplicate":      "forms:\n  login:\n    fields:\n      - name: a\n      - name: a\n",
		"rule kind":      "forms:\n  login:\n    fields:\n      - name: a\n        validations:\n          - params: {value: \"1\"}\n",
		"invalid syntax": "forms: [\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := formdef.LoadFS(fstest.MapFS{
				"forms.yaml": &fstest.MapFile{Data: []byte(content)},
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "formdef:")
		})
	}
}

func TestLoadFS_DuplicateAcrossFiles(t *testing.T) {
	doc := []byte("forms:\n  login:\n    fields:\n      - name: email\n")
	_, err := formdef.LoadFS(fstest.MapFS{
		"a.yaml": &fstest.MapFile{Data: doc},
		"b.yml":  &fstest.MapFile{Data: doc},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate form "login"`)
}

func TestLoadFS_IgnoresOtherFiles(t *testing.T) {
	store, err := formdef.LoadFS(fstest.MapFS{
		"README.md": &fstest.MapFile{Data: []byte("# forms")},
	})
	require.NoError(t, err)
	assert.True(t, store.Empty())

	empty, err := formdef.LoadFS(nil)
	require.NoError(t, err)
	assert.True(t, empty.Empty())
}

func TestLoadPath(t *testing.T) {
	store, err := formdef.LoadPath(filepath.Join("testdata", "reset.json"))
	require.NoError(t, err)
	assert.Equal(t, []string{"reset-password"}, store.IDs())

	dir, err := formdef.LoadPath("testdata")
	require.NoError(t, err)
	assert.Len(t, dir.IDs(), 3)

	_, err = formdef.LoadPath(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
}
