package field

import "fmt"

// Cadence describes when a field runs its schema.
type Cadence int

const (
	// OnBlurOnly validates only when the field loses focus.
	OnBlurOnly Cadence = iota
	// OnBlurAndChange validates on blur and on every change.
	OnBlurAndChange
)

func (c Cadence) String() string {
	switch c {
	case OnBlurAndChange:
		return "on-blur-and-change"
	default:
		return "on-blur-only"
	}
}

// MarshalText renders the cadence name.
func (c Cadence) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a name produced by MarshalText.
func (c *Cadence) UnmarshalText(text []byte) error {
	switch string(text) {
	case "on-blur-only":
		*c = OnBlurOnly
	case "on-blur-and-change":
		*c = OnBlurAndChange
	default:
		return fmt.Errorf("field: unknown cadence %q", text)
	}
	return nil
}
