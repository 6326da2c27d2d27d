package remote

import (
	"errors"
)

// Sentinel kinds for this package. Transport and status failures are
// reported as *scoring.Failure instead; ErrDecode covers a 200 answer
// whose body is not valid JSON.
var (
	ErrDecode = errors.New("decode scoring response failed")
)
