package store

import (
	"context"
	"database/sql"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/domain"
	"github.com/google/uuid"
)

// GroupStore defines the interface for study group persistence.
type GroupStore interface {
	// Create saves a new group together with its initial members.
	// Returns ErrGroupNameExists if another group has the same name, ignoring case.
	// Returns validation errors from the domain Group if data is invalid.
	Create(ctx context.Context, group *domain.Group) error

	// GetByID retrieves a group with its members and goals.
	// Returns ErrGroupNotFound if the group does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)

	// Search lists groups whose name contains query, ignoring case.
	// An empty query lists every group. Returns an empty slice when nothing matches.
	Search(ctx context.Context, query string) ([]domain.GroupSummary, error)

	// ListByMember lists the groups userID belongs to.
	ListByMember(ctx context.Context, userID string) ([]domain.GroupSummary, error)

	// AddMember adds userID to the group. It reports false when the user was
	// already a member. Returns ErrGroupNotFound if the group does not exist.
	AddMember(ctx context.Context, groupID uuid.UUID, userID string) (bool, error)

	// RemoveMember removes userID from the group. Removing a non-member is
	// not an error. Returns ErrGroupNotFound if the group does not exist.
	RemoveMember(ctx context.Context, groupID uuid.UUID, userID string) error

	// WithTx returns a new GroupStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) GroupStore

	// DB returns the underlying database connection, used to start transactions.
	DB() *sql.DB
}
