package config

import "errors"

// ErrKeyNotSet is returned when the Groq API key is missing or blank.
var ErrKeyNotSet = errors.New("groq api key is not set")
