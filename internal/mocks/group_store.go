package mocks

import (
	"context"
	"database/sql"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/domain"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/store"
	"github.com/google/uuid"
)

// MockGroupStore implements store.GroupStore for testing.
// WithTx returns the same mock, so transactional calls reach the same functions.
type MockGroupStore struct {
	CreateFn       func(ctx context.Context, group *domain.Group) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	SearchFn       func(ctx context.Context, query string) ([]domain.GroupSummary, error)
	ListByMemberFn func(ctx context.Context, userID string) ([]domain.GroupSummary, error)
	AddMemberFn    func(ctx context.Context, groupID uuid.UUID, userID string) (bool, error)
	RemoveMemberFn func(ctx context.Context, groupID uuid.UUID, userID string) error

	// SQLDB is returned by DB; tests that go through transactions set it to a sqlmock connection.
	SQLDB *sql.DB

	// DefaultError is returned by methods without a custom function.
	DefaultError error
}

var _ store.GroupStore = (*MockGroupStore)(nil)

// Create implements store.GroupStore.Create
func (m *MockGroupStore) Create(ctx context.Context, group *domain.Group) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, group)
	}
	return m.DefaultError
}

// GetByID implements store.GroupStore.GetByID
func (m *MockGroupStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.DefaultError != nil {
		return nil, m.DefaultError
	}
	return nil, store.ErrGroupNotFound
}

// Search implements store.GroupStore.Search
func (m *MockGroupStore) Search(ctx context.Context, query string) ([]domain.GroupSummary, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, query)
	}
	return []domain.GroupSummary{}, m.DefaultError
}

// ListByMember implements store.GroupStore.ListByMember
func (m *MockGroupStore) ListByMember(ctx context.Context, userID string) ([]domain.GroupSummary, error) {
	if m.ListByMemberFn != nil {
		return m.ListByMemberFn(ctx, userID)
	}
	return []domain.GroupSummary{}, m.DefaultError
}

// AddMember implements store.GroupStore.AddMember
func (m *MockGroupStore) AddMember(ctx context.Context, groupID uuid.UUID, userID string) (bool, error) {
	if m.AddMemberFn != nil {
		return m.AddMemberFn(ctx, groupID, userID)
	}
	return m.DefaultError == nil, m.DefaultError
}

// RemoveMember implements store.GroupStore.RemoveMember
func (m *MockGroupStore) RemoveMember(ctx context.Context, groupID uuid.UUID, userID string) error {
	if m.RemoveMemberFn != nil {
		return m.RemoveMemberFn(ctx, groupID, userID)
	}
	return m.DefaultError
}

// WithTx implements store.GroupStore.WithTx
func (m *MockGroupStore) WithTx(*sql.Tx) store.GroupStore {
	return m
}

// DB implements store.GroupStore.DB
func (m *MockGroupStore) DB() *sql.DB {
	return m.SQLDB
}
