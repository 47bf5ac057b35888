package field

import "errors"

// DefaultMessage is displayed when a schema fails without a usable message.
const DefaultMessage = "Invalid value"

// ErrSchemaRequired is returned by New when no schema is supplied.
var ErrSchemaRequired = errors.New("field: schema is required")
