package answer

import "errors"

// ErrGeneratorRequired is returned when a Synthesizer is constructed
// without a generative backend.
var ErrGeneratorRequired = errors.New("generator is required")
