// Package field implements progressive validation for a single form field.
//
// A Validator starts in the on-blur cadence: HandleChange only records that
// the value changed, and the schema runs when the field loses focus. The first
// failing blur shows an error and permanently escalates the instance to the
// on-change cadence, after which every HandleChange re-validates so the error
// clears as soon as the value becomes valid.
//
// Callers mutate a Validator through HandleBlur and HandleChange and then read
// Error, ErrorID and InputProps to refresh their presentation. A Validator is
// not safe for concurrent use; it belongs to the single field that owns it.
//
//	v, err := field.New(emailSchema, field.WithName("email"))
//	v.HandleChange("foo")  // no validation yet
//	v.HandleBlur("foo")    // v.Error() == "Invalid email address"
//	v.HandleChange("a@b.co") // v.HasError() == false
package field
