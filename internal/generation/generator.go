package generation

import (
	"context"
	"encoding/json"

	"google.golang.org/genai"
)

// ContentKind names what a generation request produces. It labels logs and
// metrics.
type ContentKind string

// Supported content kinds.
const (
	KindSummary ContentKind = "summary"
	KindQuiz    ContentKind = "quiz"
)

// Request is a single structured-output call.
type Request struct {
	Kind   ContentKind
	Prompt string
	Schema *genai.Schema
}

// JSONGenerator sends a prompt to a language model and returns the model's
// answer as raw JSON. Implementations make exactly one upstream call per
// invocation and honor ctx for cancellation and deadlines.
//
// Errors wrap one of ErrInvalidConfig, ErrServiceFailure, ErrContentBlocked
// or ErrMalformedResponse.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, req Request) (json.RawMessage, error)
}
