package mocks

import (
	"context"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/domain"
)

// MockStudyService implements service.StudyService for testing
type MockStudyService struct {
	SummarizeFn    func(ctx context.Context, noteText string, opts domain.ResolvedSummaryOptions) (*domain.SummaryResult, error)
	GenerateQuizFn func(ctx context.Context, noteText string, opts domain.ResolvedQuizOptions) (*domain.QuizResult, error)

	// Calls counts invocations of either method.
	Calls int
}

// Summarize implements the StudyService.Summarize method
func (m *MockStudyService) Summarize(
	ctx context.Context,
	noteText string,
	opts domain.ResolvedSummaryOptions,
) (*domain.SummaryResult, error) {
	m.Calls++
	if m.SummarizeFn != nil {
		return m.SummarizeFn(ctx, noteText, opts)
	}
	return &domain.SummaryResult{}, nil
}

// GenerateQuiz implements the StudyService.GenerateQuiz method
func (m *MockStudyService) GenerateQuiz(
	ctx context.Context,
	noteText string,
	opts domain.ResolvedQuizOptions,
) (*domain.QuizResult, error) {
	m.Calls++
	if m.GenerateQuizFn != nil {
		return m.GenerateQuizFn(ctx, noteText, opts)
	}
	return &domain.QuizResult{Questions: []domain.Question{}}, nil
}
