package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/domain"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/generation"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/platform/logger"
)

// StudyService generates study material from note text.
type StudyService interface {
	// Summarize generates a summary of noteText.
	Summarize(ctx context.Context, noteText string, opts domain.ResolvedSummaryOptions) (*domain.SummaryResult, error)

	// GenerateQuiz generates a multiple-choice quiz from noteText.
	GenerateQuiz(ctx context.Context, noteText string, opts domain.ResolvedQuizOptions) (*domain.QuizResult, error)
}

// studyServiceImpl implements StudyService over a generation.JSONGenerator.
type studyServiceImpl struct {
	generator generation.JSONGenerator
	logger    *slog.Logger
}

var _ StudyService = (*studyServiceImpl)(nil)

// NewStudyService creates a StudyService that calls generator once per request.
func NewStudyService(generator generation.JSONGenerator, logger *slog.Logger) (StudyService, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &studyServiceImpl{
		generator: generator,
		logger:    logger.With("component", "study_service"),
	}, nil
}

// Summarize implements StudyService.Summarize
func (s *studyServiceImpl) Summarize(
	ctx context.Context,
	noteText string,
	opts domain.ResolvedSummaryOptions,
) (*domain.SummaryResult, error) {
	prompt, err := generation.BuildSummaryPrompt(noteText, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary prompt: %w", err)
	}

	raw, err := s.generator.GenerateJSON(ctx, generation.Request{
		Kind:   generation.KindSummary,
		Prompt: prompt,
		Schema: generation.SummarySchema(),
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.decodeObject(ctx, generation.KindSummary, raw); err != nil {
		return nil, err
	}

	var result domain.SummaryResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, s.shapeError(ctx, generation.KindSummary, err)
	}
	return &result, nil
}

// GenerateQuiz implements StudyService.GenerateQuiz. The result must carry a
// questions array; whether each answer names one of its choices is not checked.
func (s *studyServiceImpl) GenerateQuiz(
	ctx context.Context,
	noteText string,
	opts domain.ResolvedQuizOptions,
) (*domain.QuizResult, error) {
	prompt, err := generation.BuildQuizPrompt(noteText, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build quiz prompt: %w", err)
	}

	raw, err := s.generator.GenerateJSON(ctx, generation.Request{
		Kind:   generation.KindQuiz,
		Prompt: prompt,
		Schema: generation.QuizSchema(),
	})
	if err != nil {
		return nil, err
	}

	fields, err := s.decodeObject(ctx, generation.KindQuiz, raw)
	if err != nil {
		return nil, err
	}
	questions, ok := fields["questions"]
	if !ok || !isJSONArray(questions) {
		return nil, s.shapeError(ctx, generation.KindQuiz, fmt.Errorf("questions array is missing"))
	}

	var result domain.QuizResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, s.shapeError(ctx, generation.KindQuiz, err)
	}
	return &result, nil
}

// decodeObject checks that raw is a JSON object and returns its fields.
func (s *studyServiceImpl) decodeObject(
	ctx context.Context,
	kind generation.ContentKind,
	raw json.RawMessage,
) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		if err == nil {
			err = fmt.Errorf("result is null")
		}
		return nil, s.shapeError(ctx, kind, err)
	}
	return fields, nil
}

func (s *studyServiceImpl) shapeError(ctx context.Context, kind generation.ContentKind, err error) error {
	logger.FromContextOrDefault(ctx, s.logger).Warn("generated content has unexpected shape",
		"kind", kind,
		"error", err)
	return fmt.Errorf("%w: %s: %v", generation.ErrUnexpectedShape, kind, err)
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
