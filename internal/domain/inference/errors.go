package inference

import "errors"

// ErrInferenceFailed covers every failure of a prediction attempt: transport
// errors, non-200 responses and an explicit error field in the body.
var ErrInferenceFailed = errors.New("inference failed")
