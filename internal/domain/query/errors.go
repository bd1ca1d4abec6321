package query

import "errors"

// Criteria validation errors, reported in this order by Criteria.Validate.
var (
	ErrPropertyNotSpecified  = errors.New("property not specified")
	ErrOperationNotSpecified = errors.New("operation not specified")
	ErrOperationNotSupported = errors.New("operation not supported by property")
)

// Value validation errors reported by Property.ValidateValue.
var (
	ErrValueNotSpecified = errors.New("value not specified")
	ErrInvalidNumber     = errors.New("value is not a whole number")
	ErrValueOutOfRange   = errors.New("value is out of range")
	ErrUnknownDateRange  = errors.New("unknown date range")
	ErrInvalidValue      = errors.New("value is not one of the allowed values")
)

var (
	ErrUnsupportedTarget = errors.New("target does not expose the property")
	ErrIndexOutOfRange   = errors.New("criteria index out of range")
	ErrMalformedQuery    = errors.New("malformed query string")
)
