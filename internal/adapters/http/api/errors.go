package api

import "errors"

// Sentinel kinds for API errors. ErrNoData's text is the client-facing
// body for an empty request and is part of the wire contract.
var (
	ErrNoData = errors.New("No data provided in request body") //nolint:staticcheck // client-facing message
)
