package generation_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/domain"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const photosynthesis = "Photosynthesis converts light to energy."

const defaultSummaryPrompt = `You are a helpful study assistant.
Summarize the note below.

Style: bullet
Length: medium
Focus: key ideas, definitions, examples

Return JSON ONLY:
{
  "title": "string",
  "bullets": ["string", "..."],
  "keyTerms": [{"term":"string","definition":"string"}]
}

NOTE:
Photosynthesis converts light to energy.`

const defaultQuizPrompt = `You are a helpful study assistant.
Create a medium MCQ quiz from the note below.

Rules:
- 10 questions
- 4 choices per question
- Exactly ONE correct answer
- Clear questions
- includeExplanations=true

Return JSON ONLY:
{
  "title": "string",
  "questions": [
    {
      "id": "q1",
      "question": "string",
      "choices": [{"id":"A","text":"..."},{"id":"B","text":"..."},{"id":"C","text":"..."},{"id":"D","text":"..."}],
      "answer": "B",
      "explanation": "string",
      "difficulty": "medium"
    }
  ]
}

NOTE:
Photosynthesis converts light to energy.`

func TestBuildSummaryPromptDefaults(t *testing.T) {
	t.Parallel()
	opts := domain.ParseSummaryOptions(nil)

	prompt, err := generation.BuildSummaryPrompt(photosynthesis, opts)
	require.NoError(t, err)
	assert.Equal(t, defaultSummaryPrompt, prompt)
}

func TestBuildSummaryPromptOptions(t *testing.T) {
	t.Parallel()
	opts := domain.ParseSummaryOptions(json.RawMessage(`{"style":"paragraph","length":"short","focus":["dates","people"]}`))

	prompt, err := generation.BuildSummaryPrompt("The French Revolution began in 1789.", opts)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Style: paragraph\n")
	assert.Contains(t, prompt, "Length: short\n")
	assert.Contains(t, prompt, "Focus: dates, people\n")
	assert.True(t, strings.HasSuffix(prompt, "NOTE:\nThe French Revolution began in 1789."))
}

func TestBuildQuizPromptDefaults(t *testing.T) {
	t.Parallel()
	opts, err := domain.ValidateQuizOptions(nil)
	require.NoError(t, err)

	prompt, err := generation.BuildQuizPrompt(photosynthesis, opts)
	require.NoError(t, err)
	assert.Equal(t, defaultQuizPrompt, prompt)
}

func TestBuildQuizPromptOptions(t *testing.T) {
	t.Parallel()
	opts, err := domain.ValidateQuizOptions(json.RawMessage(
		`{"numQuestions":3,"numChoices":5,"difficulty":"hard","includeExplanations":false}`))
	require.NoError(t, err)

	prompt, err := generation.BuildQuizPrompt(photosynthesis, opts)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Create a hard MCQ quiz")
	assert.Contains(t, prompt, "- 3 questions\n")
	assert.Contains(t, prompt, "- 5 choices per question\n")
	assert.Contains(t, prompt, "- Exactly ONE correct answer\n")
	assert.Contains(t, prompt, "includeExplanations=false")
	assert.Contains(t, prompt, `"difficulty": "hard"`)
}

func TestPromptBuildersAreDeterministic(t *testing.T) {
	t.Parallel()
	summaryOpts := domain.ParseSummaryOptions(nil)
	quizOpts, _ := domain.ValidateQuizOptions(nil)

	first, err := generation.BuildSummaryPrompt(photosynthesis, summaryOpts)
	require.NoError(t, err)
	quizFirst, err := generation.BuildQuizPrompt(photosynthesis, quizOpts)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, _ := generation.BuildSummaryPrompt(photosynthesis, summaryOpts)
		assert.Equal(t, first, again)
		quizAgain, _ := generation.BuildQuizPrompt(photosynthesis, quizOpts)
		assert.Equal(t, quizFirst, quizAgain)
	}
}

func TestPromptNoteTextIsNotEscaped(t *testing.T) {
	t.Parallel()
	opts := domain.ParseSummaryOptions(nil)
	note := `<b>bold</b> & "quoted" {{.Style}}`

	prompt, err := generation.BuildSummaryPrompt(note, opts)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(prompt, note), "note text must be embedded literally")
}

func TestPromptTrimsSurroundingWhitespace(t *testing.T) {
	t.Parallel()
	opts, _ := domain.ValidateQuizOptions(nil)

	prompt, err := generation.BuildQuizPrompt("Cells divide.\n\n  ", opts)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(prompt, "You are a helpful study assistant."))
	assert.True(t, strings.HasSuffix(prompt, "NOTE:\nCells divide."))
}
