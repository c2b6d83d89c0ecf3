package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Difficulty is the requested difficulty of a quiz.
type Difficulty string

// Supported quiz difficulties.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Defaults applied to omitted generation options.
const (
	DefaultSummaryStyle        = "bullet"
	DefaultSummaryLength       = "medium"
	DefaultNumQuestions        = 10
	DefaultNumChoices          = 4
	DefaultDifficulty          = DifficultyMedium
	DefaultIncludeExplanations = true
)

// DefaultSummaryFocus is the focus list used when a summary request names none.
func DefaultSummaryFocus() []string {
	return []string{"key ideas", "definitions", "examples"}
}

var optionsValidator = validator.New()

// Note is user-supplied text to be summarized or quizzed. ID is echoed back
// verbatim and may be absent.
type Note struct {
	ID   json.RawMessage
	Text string
}

// ValidateNote checks the raw "note" member of a request body.
//
// It returns ErrMissingNote when the value is absent or not an object and
// ErrMissingNoteText when "text" is absent, not a string, or blank. The text
// itself is kept as sent; only the emptiness check trims it.
func ValidateNote(raw json.RawMessage) (*Note, error) {
	if isNullOrEmpty(raw) {
		return nil, ErrMissingNote
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, ErrMissingNote
	}

	var text string
	rawText, ok := fields["text"]
	if !ok || json.Unmarshal(rawText, &text) != nil || strings.TrimSpace(text) == "" {
		return nil, ErrMissingNoteText
	}

	note := &Note{Text: text}
	if id, ok := fields["id"]; ok && !isNullOrEmpty(id) {
		note.ID = id
	}
	return note, nil
}

// SummaryOptions are the caller's summary settings. Every field is optional.
type SummaryOptions struct {
	Style  *string  `json:"style"`
	Length *string  `json:"length"`
	Focus  []string `json:"focus"`
}

// ResolvedSummaryOptions are SummaryOptions with defaults applied.
type ResolvedSummaryOptions struct {
	Style  string
	Length string
	Focus  []string
}

// Resolve applies defaults to omitted fields. An explicitly empty focus list
// is kept empty.
func (o SummaryOptions) Resolve() ResolvedSummaryOptions {
	resolved := ResolvedSummaryOptions{
		Style:  DefaultSummaryStyle,
		Length: DefaultSummaryLength,
		Focus:  DefaultSummaryFocus(),
	}
	if o.Style != nil {
		resolved.Style = *o.Style
	}
	if o.Length != nil {
		resolved.Length = *o.Length
	}
	if o.Focus != nil {
		resolved.Focus = append([]string(nil), o.Focus...)
	}
	return resolved
}

// ParseSummaryOptions decodes the raw "options" member of a summary request.
// It never rejects input: absent, null or non-object options resolve to the
// defaults, a string focus is a one-item list, and a value of any other type
// is rendered as its JSON text.
func ParseSummaryOptions(raw json.RawMessage) ResolvedSummaryOptions {
	var fields map[string]json.RawMessage
	if isNullOrEmpty(raw) || json.Unmarshal(raw, &fields) != nil {
		return SummaryOptions{}.Resolve()
	}

	var opts SummaryOptions
	if style, ok := optionText(fields["style"]); ok {
		opts.Style = &style
	}
	if length, ok := optionText(fields["length"]); ok {
		opts.Length = &length
	}
	opts.Focus = focusList(fields["focus"])
	return opts.Resolve()
}

// optionText returns a JSON string as is and any other non-null value as its
// JSON text.
func optionText(raw json.RawMessage) (string, bool) {
	if isNullOrEmpty(raw) {
		return "", false
	}
	var text string
	if json.Unmarshal(raw, &text) == nil {
		return text, true
	}
	return string(bytes.TrimSpace(raw)), true
}

// focusList accepts a list of values or a single value. Nil means absent.
func focusList(raw json.RawMessage) []string {
	if isNullOrEmpty(raw) {
		return nil
	}
	var items []json.RawMessage
	if json.Unmarshal(raw, &items) != nil {
		text, _ := optionText(raw)
		return []string{text}
	}
	focus := make([]string, 0, len(items))
	for _, item := range items {
		if text, ok := optionText(item); ok {
			focus = append(focus, text)
		}
	}
	return focus
}

// QuizOptions are the caller's quiz settings. Every field is optional.
type QuizOptions struct {
	NumQuestions        *int        `json:"numQuestions"`
	NumChoices          *int        `json:"numChoices"`
	Difficulty          *Difficulty `json:"difficulty"`
	IncludeExplanations *bool       `json:"includeExplanations"`
}

// ResolvedQuizOptions are QuizOptions with defaults applied. Bounds are
// checked on this struct, never on the raw input, so the validator and the
// prompt builder see the same values.
type ResolvedQuizOptions struct {
	NumQuestions        int        `validate:"min=1,max=30"`
	NumChoices          int        `validate:"min=2,max=6"`
	Difficulty          Difficulty `validate:"oneof=easy medium hard"`
	IncludeExplanations bool
}

// Resolve applies defaults to omitted fields without touching o.
func (o QuizOptions) Resolve() ResolvedQuizOptions {
	resolved := ResolvedQuizOptions{
		NumQuestions:        DefaultNumQuestions,
		NumChoices:          DefaultNumChoices,
		Difficulty:          DefaultDifficulty,
		IncludeExplanations: DefaultIncludeExplanations,
	}
	if o.NumQuestions != nil {
		resolved.NumQuestions = *o.NumQuestions
	}
	if o.NumChoices != nil {
		resolved.NumChoices = *o.NumChoices
	}
	if o.Difficulty != nil {
		resolved.Difficulty = *o.Difficulty
	}
	if o.IncludeExplanations != nil {
		resolved.IncludeExplanations = *o.IncludeExplanations
	}
	return resolved
}

// Validate reports ErrInvalidOptions when a field is out of bounds.
func (o ResolvedQuizOptions) Validate() error {
	if err := optionsValidator.Struct(o); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}

// ValidateQuizOptions decodes the raw "options" member of a quiz request,
// applies defaults and checks bounds. Non-integer counts and unknown
// difficulties fail with ErrInvalidOptions; nothing is clamped.
func ValidateQuizOptions(raw json.RawMessage) (ResolvedQuizOptions, error) {
	var wire quizOptionsJSON
	if !isNullOrEmpty(raw) {
		if err := json.Unmarshal(raw, &wire); err != nil {
			return ResolvedQuizOptions{}, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
		}
	}

	opts, err := wire.options()
	if err != nil {
		return ResolvedQuizOptions{}, err
	}
	resolved := opts.Resolve()
	if err := resolved.Validate(); err != nil {
		return ResolvedQuizOptions{}, err
	}
	return resolved, nil
}

// quizOptionsJSON is the wire form of QuizOptions. JSON has a single number
// type, so counts are decoded as floats and 10, 10.0 and 1e1 all mean ten.
type quizOptionsJSON struct {
	NumQuestions        *float64    `json:"numQuestions"`
	NumChoices          *float64    `json:"numChoices"`
	Difficulty          *Difficulty `json:"difficulty"`
	IncludeExplanations *bool       `json:"includeExplanations"`
}

func (w quizOptionsJSON) options() (QuizOptions, error) {
	numQuestions, err := wholeCount("numQuestions", w.NumQuestions)
	if err != nil {
		return QuizOptions{}, err
	}
	numChoices, err := wholeCount("numChoices", w.NumChoices)
	if err != nil {
		return QuizOptions{}, err
	}
	return QuizOptions{
		NumQuestions:        numQuestions,
		NumChoices:          numChoices,
		Difficulty:          w.Difficulty,
		IncludeExplanations: w.IncludeExplanations,
	}, nil
}

// wholeCount converts a decoded count to int. Values with a fractional part
// or beyond int32 fail with ErrInvalidOptions.
func wholeCount(name string, value *float64) (*int, error) {
	if value == nil {
		return nil, nil
	}
	if *value != math.Trunc(*value) || math.Abs(*value) > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %s must be a whole number, got %v", ErrInvalidOptions, name, *value)
	}
	n := int(*value)
	return &n, nil
}

// KeyTerm is a term and its definition extracted from a note.
type KeyTerm struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// SummaryResult is a generated study summary.
type SummaryResult struct {
	Title    string    `json:"title"`
	Bullets  []string  `json:"bullets"`
	KeyTerms []KeyTerm `json:"keyTerms"`
}

// Choice is one option of a multiple-choice question.
type Choice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is one multiple-choice question. Answer is expected to name one
// of Choices[].ID, but that is not checked here.
type Question struct {
	ID          string     `json:"id"`
	Question    string     `json:"question"`
	Choices     []Choice   `json:"choices"`
	Answer      string     `json:"answer"`
	Explanation *string    `json:"explanation"`
	Difficulty  Difficulty `json:"difficulty"`
}

// QuizResult is a generated quiz.
type QuizResult struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

func isNullOrEmpty(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
