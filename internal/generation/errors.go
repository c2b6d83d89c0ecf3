package generation

import "errors"

// Errors returned by JSONGenerator implementations and by result decoding.
var (
	// ErrInvalidConfig is returned before any network call when the generator
	// is not usable, most often because no API key is configured.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrServiceFailure is returned when the model call itself fails.
	ErrServiceFailure = errors.New("language model request failed")

	// ErrContentBlocked is returned when the model refuses the prompt on
	// safety grounds.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrMalformedResponse is returned when the model text is not valid JSON
	// even after code fences are stripped.
	ErrMalformedResponse = errors.New("language model returned malformed JSON")

	// ErrUnexpectedShape is returned when the JSON parses but is not the
	// object the caller asked for.
	ErrUnexpectedShape = errors.New("language model returned an unexpected JSON shape")
)
