// Package generation is the boundary between the study endpoints and the
// language model. It owns the prompt templates, the structured-output
// schemas handed to the model, and the JSONGenerator interface that the
// Gemini adapter in internal/platform/gemini implements.
package generation
