package record

import "errors"

// Sentinel kinds for record errors.
var (
	ErrUnknownMetric   = errors.New("unknown metric")
	ErrMalformedRecord = errors.New("malformed record")
)
