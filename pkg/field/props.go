package field

// InputProps carries the accessibility attributes a renderer applies to the
// input element. Empty members are omitted.
type InputProps struct {
	AriaInvalid     string `json:"aria-invalid,omitempty"`
	AriaDescribedBy string `json:"aria-describedby,omitempty"`
}

// Attrs returns the non-empty attributes keyed by their HTML name.
func (p InputProps) Attrs() map[string]string {
	attrs := make(map[string]string, 2)
	if p.AriaInvalid != "" {
		attrs["aria-invalid"] = p.AriaInvalid
	}
	if p.AriaDescribedBy != "" {
		attrs["aria-describedby"] = p.AriaDescribedBy
	}
	return attrs
}

// PropsFor derives InputProps for a displayed error. Callers that display an
// error from another source (a server response, for instance) use it to keep
// the attributes consistent with what is on screen.
func PropsFor(errorID, displayed string) InputProps {
	if displayed == "" {
		return InputProps{}
	}
	return InputProps{
		AriaInvalid:     "true",
		AriaDescribedBy: errorID,
	}
}
