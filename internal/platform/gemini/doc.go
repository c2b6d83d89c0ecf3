// Package gemini implements generation.JSONGenerator on top of Google's
// Gemini API.
//
// It is an infrastructure adapter: the study service hands it a prompt and
// a response schema and gets raw JSON back, without knowing which model or
// SDK produced it.
//
// Key components:
//
// 1. Generator:
//   - Holds a constructed genai.Client instead of a package-level singleton
//   - Requests schema-constrained JSON output at a low temperature
//   - Makes exactly one upstream call per request; there is no retry
//
// 2. Response Processing:
//   - Strips a single pair of Markdown code fences (CleanResponseText)
//   - Rejects text that is not valid JSON
//
// 3. Error Handling:
//   - A missing API key fails with generation.ErrInvalidConfig before any
//     network activity
//   - SDK and transport errors map to generation.ErrServiceFailure, safety
//     blocks to generation.ErrContentBlocked and unparsable output to
//     generation.ErrMalformedResponse
//
// Every call is counted in the study_llm_* Prometheus collectors.
package gemini
