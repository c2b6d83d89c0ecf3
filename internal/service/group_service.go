package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/domain"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/platform/logger"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/platform/metrics"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/store"
	"github.com/google/uuid"
)

// GroupService provides study group operations on behalf of a caller.
type GroupService interface {
	// CreateGroup creates a group administered by userID, who becomes its first member.
	CreateGroup(ctx context.Context, userID, name, about string) (*domain.Group, error)

	// FindGroups lists groups whose name contains query, ignoring case.
	FindGroups(ctx context.Context, query string) ([]domain.GroupSummary, error)

	// ListMyGroups lists the groups userID belongs to.
	ListMyGroups(ctx context.Context, userID string) ([]domain.GroupSummary, error)

	// GetGroupDetails returns the full group. Only members may read it.
	GetGroupDetails(ctx context.Context, userID string, groupID uuid.UUID) (*domain.Group, error)

	// JoinGroup adds userID to the group. Returns ErrAlreadyMember when
	// nothing changed.
	JoinGroup(ctx context.Context, userID string, groupID uuid.UUID) error

	// LeaveGroup removes userID from the group.
	LeaveGroup(ctx context.Context, userID string, groupID uuid.UUID) error
}

// GroupServiceError wraps unexpected errors from the group service with context.
type GroupServiceError struct {
	// Operation is the operation that failed (e.g., "create_group", "join_group")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for GroupServiceError.
func (e *GroupServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("group service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("group service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GroupServiceError) Unwrap() error {
	return e.Err
}

// NewGroupServiceError creates a new GroupServiceError.
// Known sentinel errors are returned directly without wrapping.
func NewGroupServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range []error{
		ErrNotMember,
		ErrAlreadyMember,
		store.ErrGroupNotFound,
		store.ErrGroupNameExists,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}

	return &GroupServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// groupServiceImpl implements the GroupService interface
type groupServiceImpl struct {
	groups store.GroupStore
	logger *slog.Logger
}

var _ GroupService = (*groupServiceImpl)(nil)

// NewGroupService creates a new GroupService.
// It returns an error if the store is nil.
func NewGroupService(groups store.GroupStore, logger *slog.Logger) (GroupService, error) {
	if groups == nil {
		return nil, &GroupServiceError{
			Operation: "create_service",
			Message:   "group store cannot be nil",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &groupServiceImpl{
		groups: groups,
		logger: logger.With("component", "group_service"),
	}, nil
}

// CreateGroup implements GroupService.CreateGroup. The group row and the
// admin membership are written in one transaction.
func (s *groupServiceImpl) CreateGroup(ctx context.Context, userID, name, about string) (*domain.Group, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	group, err := domain.NewGroup(name, about, userID)
	if err != nil {
		recordGroupOperation("create", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	err = store.RunInTransaction(ctx, s.groups.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.groups.WithTx(tx).Create(ctx, group)
	})
	recordGroupOperation("create", err)
	if err != nil {
		if !errors.Is(err, store.ErrGroupNameExists) {
			log.Error("failed to create group", "error", err, "user_id", userID)
		}
		return nil, NewGroupServiceError("create_group", "failed to save group", err)
	}

	log.Info("group created",
		"group_id", group.ID,
		"user_id", userID)
	return group, nil
}

// FindGroups implements GroupService.FindGroups
func (s *groupServiceImpl) FindGroups(ctx context.Context, query string) ([]domain.GroupSummary, error) {
	groups, err := s.groups.Search(ctx, query)
	recordGroupOperation("find", err)
	if err != nil {
		return nil, NewGroupServiceError("find_groups", "failed to search groups", err)
	}
	return groups, nil
}

// ListMyGroups implements GroupService.ListMyGroups
func (s *groupServiceImpl) ListMyGroups(ctx context.Context, userID string) ([]domain.GroupSummary, error) {
	groups, err := s.groups.ListByMember(ctx, userID)
	recordGroupOperation("list_mine", err)
	if err != nil {
		return nil, NewGroupServiceError("list_my_groups", "failed to list groups", err)
	}
	return groups, nil
}

// GetGroupDetails implements GroupService.GetGroupDetails
func (s *groupServiceImpl) GetGroupDetails(
	ctx context.Context,
	userID string,
	groupID uuid.UUID,
) (*domain.Group, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err == nil && !group.IsMember(userID) {
		logger.FromContextOrDefault(ctx, s.logger).Debug("non-member asked for group details",
			"group_id", groupID,
			"user_id", userID)
		err = ErrNotMember
	}
	recordGroupOperation("details", err)
	if err != nil {
		return nil, NewGroupServiceError("get_group_details", "failed to get group", err)
	}
	return group, nil
}

// JoinGroup implements GroupService.JoinGroup
func (s *groupServiceImpl) JoinGroup(ctx context.Context, userID string, groupID uuid.UUID) error {
	added, err := s.groups.AddMember(ctx, groupID, userID)
	if err == nil && !added {
		err = ErrAlreadyMember
	}
	recordGroupOperation("join", err)
	if err != nil {
		return NewGroupServiceError("join_group", "failed to add member", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user joined group",
		"group_id", groupID,
		"user_id", userID)
	return nil
}

// LeaveGroup implements GroupService.LeaveGroup
func (s *groupServiceImpl) LeaveGroup(ctx context.Context, userID string, groupID uuid.UUID) error {
	err := s.groups.RemoveMember(ctx, groupID, userID)
	recordGroupOperation("leave", err)
	if err != nil {
		return NewGroupServiceError("leave_group", "failed to remove member", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user left group",
		"group_id", groupID,
		"user_id", userID)
	return nil
}

// recordGroupOperation counts an operation outcome. Expected conditions are
// labelled by kind so that only real failures show up as "error".
func recordGroupOperation(operation string, err error) {
	status := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation):
		status = "invalid"
	case errors.Is(err, store.ErrNotFound):
		status = "not_found"
	case errors.Is(err, store.ErrDuplicate):
		status = "duplicate"
	case errors.Is(err, ErrNotMember):
		status = "forbidden"
	case errors.Is(err, ErrAlreadyMember):
		status = "noop"
	default:
		status = "error"
	}
	metrics.GroupOperationsTotal.WithLabelValues(operation, status).Inc()
}
