package pomdp

import "errors"

var (
	errEmptySupport   = errors.New("categorical distribution requires at least one value")
	errWeightMismatch = errors.New("categorical values and weights must have equal length")
	errNegativeWeight = errors.New("categorical weights must be >= 0")
	errZeroWeight     = errors.New("at least one categorical weight must be > 0")
)
