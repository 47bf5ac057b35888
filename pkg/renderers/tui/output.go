package tui

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-formfield/pkg/model"
)

// OutputFormat controls how collected values are serialised.
type OutputFormat string

const (
	// OutputFormatJSON emits a JSON object.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one "label: value" line per field.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Encode serialises values in the field order of m. Password values are
// masked in pretty output.
func Encode(m model.FormModel, values map[string]string, format OutputFormat) ([]byte, error) {
	switch format {
	case "", OutputFormatJSON:
		return json.MarshalIndent(values, "", "  ")
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for _, def := range m.Fields {
			form.Set(def.Name, values[def.Name])
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, def := range m.Fields {
			value := values[def.Name]
			if def.HTMLInputType() == "password" && value != "" {
				value = strings.Repeat("*", 8)
			}
			fmt.Fprintf(&b, "%s: %s\n", def.DisplayLabel(), value)
		}
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", format)
	}
}
