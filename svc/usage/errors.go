package usage

import "errors"

var (
	ErrInvalidMetric = errors.New("invalid usage metric")
	ErrLimitExceeded = errors.New("usage limit exceeded")
)
