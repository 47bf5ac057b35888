package schema

import "fmt"

// Default messages reported when a rule carries no message of its own.
const (
	// MessageRequired is reported for a blank required field.
	MessageRequired = "This field is required"
	// MessageEmail is reported by the email format and tag.
	MessageEmail = "Invalid email address"
	// MessageURL is reported by the uri and url formats.
	MessageURL = "Invalid URL"
	// MessageUUID is reported by the uuid format.
	MessageUUID = "Invalid identifier"
	// MessagePattern is reported when a value does not match a pattern rule.
	MessagePattern = "Invalid format"
	// MessageInvalid is the fallback when no specific message applies.
	MessageInvalid = "Invalid value"
)

func messageMinLength(n int) string {
	if n == 1 {
		return "Must be at least 1 character"
	}
	return fmt.Sprintf("Must be at least %d characters", n)
}

func messageMaxLength(n int) string {
	if n == 1 {
		return "Must be at most 1 character"
	}
	return fmt.Sprintf("Must be at most %d characters", n)
}

func pick(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}
