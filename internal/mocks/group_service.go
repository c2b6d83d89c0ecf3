package mocks

import (
	"context"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/domain"
	"github.com/google/uuid"
)

// MockGroupService implements service.GroupService for testing
type MockGroupService struct {
	CreateGroupFn     func(ctx context.Context, userID, name, about string) (*domain.Group, error)
	FindGroupsFn      func(ctx context.Context, query string) ([]domain.GroupSummary, error)
	ListMyGroupsFn    func(ctx context.Context, userID string) ([]domain.GroupSummary, error)
	GetGroupDetailsFn func(ctx context.Context, userID string, groupID uuid.UUID) (*domain.Group, error)
	JoinGroupFn       func(ctx context.Context, userID string, groupID uuid.UUID) error
	LeaveGroupFn      func(ctx context.Context, userID string, groupID uuid.UUID) error

	// DefaultError is returned by methods without a custom function.
	DefaultError error
}

// CreateGroup implements the GroupService.CreateGroup method
func (m *MockGroupService) CreateGroup(ctx context.Context, userID, name, about string) (*domain.Group, error) {
	if m.CreateGroupFn != nil {
		return m.CreateGroupFn(ctx, userID, name, about)
	}
	if m.DefaultError != nil {
		return nil, m.DefaultError
	}
	return domain.NewGroup(name, about, userID)
}

// FindGroups implements the GroupService.FindGroups method
func (m *MockGroupService) FindGroups(ctx context.Context, query string) ([]domain.GroupSummary, error) {
	if m.FindGroupsFn != nil {
		return m.FindGroupsFn(ctx, query)
	}
	return []domain.GroupSummary{}, m.DefaultError
}

// ListMyGroups implements the GroupService.ListMyGroups method
func (m *MockGroupService) ListMyGroups(ctx context.Context, userID string) ([]domain.GroupSummary, error) {
	if m.ListMyGroupsFn != nil {
		return m.ListMyGroupsFn(ctx, userID)
	}
	return []domain.GroupSummary{}, m.DefaultError
}

// GetGroupDetails implements the GroupService.GetGroupDetails method
func (m *MockGroupService) GetGroupDetails(ctx context.Context, userID string, groupID uuid.UUID) (*domain.Group, error) {
	if m.GetGroupDetailsFn != nil {
		return m.GetGroupDetailsFn(ctx, userID, groupID)
	}
	return nil, m.DefaultError
}

// JoinGroup implements the GroupService.JoinGroup method
func (m *MockGroupService) JoinGroup(ctx context.Context, userID string, groupID uuid.UUID) error {
	if m.JoinGroupFn != nil {
		return m.JoinGroupFn(ctx, userID, groupID)
	}
	return m.DefaultError
}

// LeaveGroup implements the GroupService.LeaveGroup method
func (m *MockGroupService) LeaveGroup(ctx context.Context, userID string, groupID uuid.UUID) error {
	if m.LeaveGroupFn != nil {
		return m.LeaveGroupFn(ctx, userID, groupID)
	}
	return m.DefaultError
}
