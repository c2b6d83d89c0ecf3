package generation

import "google.golang.org/genai"

// SummarySchema describes the structured output expected for a summary.
// A fresh value is returned on every call so callers may not share state.
func SummarySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": {
				Type:        genai.TypeString,
				Description: "Short title for the summary.",
			},
			"bullets": {
				Type:        genai.TypeArray,
				Description: "Bullet-point summary. Each item is one bullet.",
				Items:       &genai.Schema{Type: genai.TypeString},
				MinItems:    genai.Ptr[int64](3),
			},
			"keyTerms": {
				Type:        genai.TypeArray,
				Description: "Key terms and definitions from the note.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"term":       {Type: genai.TypeString},
						"definition": {Type: genai.TypeString},
					},
					Required:         []string{"term", "definition"},
					PropertyOrdering: []string{"term", "definition"},
				},
			},
		},
		Required:         []string{"title", "bullets", "keyTerms"},
		PropertyOrdering: []string{"title", "bullets", "keyTerms"},
	}
}

// QuizSchema describes the structured output expected for a quiz.
// Explanation is nullable; nothing ties answer to the listed choice IDs.
func QuizSchema() *genai.Schema {
	choice := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":   {Type: genai.TypeString, Description: "Choice label like A/B/C/D."},
			"text": {Type: genai.TypeString, Description: "Choice text."},
		},
		Required:         []string{"id", "text"},
		PropertyOrdering: []string{"id", "text"},
	}

	question := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":       {Type: genai.TypeString, Description: "Unique question id like q1, q2, ..."},
			"question": {Type: genai.TypeString, Description: "The question text."},
			"choices": {
				Type:        genai.TypeArray,
				Description: "Multiple choice options.",
				Items:       choice,
				MinItems:    genai.Ptr[int64](2),
			},
			"answer": {Type: genai.TypeString, Description: "Correct choice id (e.g., 'B')."},
			"explanation": {
				Type:        genai.TypeString,
				Description: "Short explanation (optional).",
				Nullable:    genai.Ptr(true),
			},
			"difficulty": {Type: genai.TypeString, Description: "easy|medium|hard"},
		},
		Required:         []string{"id", "question", "choices", "answer", "difficulty"},
		PropertyOrdering: []string{"id", "question", "choices", "answer", "explanation", "difficulty"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": {Type: genai.TypeString, Description: "Short title for the quiz."},
			"questions": {
				Type:        genai.TypeArray,
				Description: "List of multiple choice questions.",
				Items:       question,
				MinItems:    genai.Ptr[int64](1),
			},
		},
		Required:         []string{"title", "questions"},
		PropertyOrdering: []string{"title", "questions"},
	}
}
