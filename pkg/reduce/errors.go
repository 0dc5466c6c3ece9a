package reduce

import "errors"

// Error taxonomy for one consumer run. Malformed and missing-field errors
// are recovered inside the reducer loop; a source error ends the run; sink
// errors are contained at the sink boundary.
var (
	ErrMalformedMessage  = errors.New("reduce: malformed message")
	ErrMissingField      = errors.New("reduce: missing field")
	ErrSourceUnavailable = errors.New("reduce: source unavailable")
	ErrSinkFailure       = errors.New("reduce: sink failure")
)
