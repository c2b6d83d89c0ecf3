package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/domain"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/platform/logger"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/redact"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/store"
	"github.com/google/uuid"
)

// PostgresGroupStore implements the store.GroupStore interface
// using a PostgreSQL database as the storage backend.
type PostgresGroupStore struct {
	db     store.DBTX
	sqlDB  *sql.DB
	logger *slog.Logger
}

// NewPostgresGroupStore creates a new PostgreSQL implementation of the GroupStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresGroupStore(db *sql.DB, logger *slog.Logger) *PostgresGroupStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresGroupStore{
		db:     db,
		sqlDB:  db,
		logger: logger.With(slog.String("component", "group_store")),
	}
}

// Ensure PostgresGroupStore implements store.GroupStore interface
var _ store.GroupStore = (*PostgresGroupStore)(nil)

// WithTx implements store.GroupStore.WithTx
func (s *PostgresGroupStore) WithTx(tx *sql.Tx) store.GroupStore {
	return &PostgresGroupStore{db: tx, sqlDB: s.sqlDB, logger: s.logger}
}

// DB implements store.GroupStore.DB
func (s *PostgresGroupStore) DB() *sql.DB {
	return s.sqlDB
}

// Create implements store.GroupStore.Create. It writes the group row, its
// members and its goals; callers wanting atomicity run it inside WithTx.
func (s *PostgresGroupStore) Create(ctx context.Context, group *domain.Group) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := group.Validate(); err != nil {
		log.Warn("group validation failed during create",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO groups (id, name, about, icon, color, admin_uid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		group.ID,
		group.Name,
		group.About,
		group.Icon,
		group.Color,
		group.AdminUID,
		group.CreatedAt,
		group.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("group name already taken", slog.String("name", group.Name))
			return fmt.Errorf("%w: %s", store.ErrGroupNameExists, group.Name)
		}
		log.Error("failed to create group",
			slog.String("error", redact.Error(err)),
			slog.String("group_id", group.ID.String()))
		return store.NewStoreError("group", "create", "failed to insert group", MapError(err))
	}

	for _, member := range group.Members {
		if _, err := s.addMember(ctx, group.ID, member, group.CreatedAt); err != nil {
			return err
		}
	}

	for i, goal := range group.Goals {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO group_goals (group_id, position, goal) VALUES ($1, $2, $3)`,
			group.ID, i, goal,
		); err != nil {
			log.Error("failed to insert group goal",
				slog.String("error", redact.Error(err)),
				slog.String("group_id", group.ID.String()))
			return store.NewStoreError("group", "create", "failed to insert goal", MapError(err))
		}
	}

	log.Info("group created successfully",
		slog.String("group_id", group.ID.String()),
		slog.String("admin_uid", group.AdminUID))
	return nil
}

// GetByID implements store.GroupStore.GetByID
func (s *PostgresGroupStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving group by ID", slog.String("group_id", id.String()))

	var group domain.Group
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, about, icon, color, admin_uid, created_at, updated_at
		FROM groups
		WHERE id = $1
	`, id).Scan(
		&group.ID,
		&group.Name,
		&group.About,
		&group.Icon,
		&group.Color,
		&group.AdminUID,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("group not found", slog.String("group_id", id.String()))
			return nil, store.ErrGroupNotFound
		}
		log.Error("failed to get group",
			slog.String("error", redact.Error(err)),
			slog.String("group_id", id.String()))
		return nil, store.NewStoreError("group", "get", "failed to query group", MapError(err))
	}

	members, err := s.queryStrings(ctx,
		`SELECT user_id FROM group_members WHERE group_id = $1 ORDER BY joined_at, user_id`, id)
	if err != nil {
		return nil, store.NewStoreError("group", "get", "failed to query members", err)
	}
	goals, err := s.queryStrings(ctx,
		`SELECT goal FROM group_goals WHERE group_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, store.NewStoreError("group", "get", "failed to query goals", err)
	}

	group.Members = members
	group.Goals = goals
	return &group, nil
}

// Search implements store.GroupStore.Search. The query is matched as a
// literal substring; LIKE wildcards in it have no special meaning.
func (s *PostgresGroupStore) Search(ctx context.Context, query string) ([]domain.GroupSummary, error) {
	return s.querySummaries(ctx, "search", `
		SELECT g.id, g.name, COUNT(m.user_id)
		FROM groups g
		LEFT JOIN group_members m ON m.group_id = g.id
		WHERE $1 = '' OR g.name ILIKE '%' || $1 || '%' ESCAPE '\'
		GROUP BY g.id, g.name
		ORDER BY lower(g.name), g.id
	`, escapeLike(strings.TrimSpace(query)))
}

// ListByMember implements store.GroupStore.ListByMember
func (s *PostgresGroupStore) ListByMember(ctx context.Context, userID string) ([]domain.GroupSummary, error) {
	return s.querySummaries(ctx, "list_by_member", `
		SELECT g.id, g.name, (SELECT COUNT(*) FROM group_members c WHERE c.group_id = g.id)
		FROM groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE m.user_id = $1
		ORDER BY lower(g.name), g.id
	`, userID)
}

// AddMember implements store.GroupStore.AddMember
func (s *PostgresGroupStore) AddMember(ctx context.Context, groupID uuid.UUID, userID string) (bool, error) {
	return s.addMember(ctx, groupID, userID, time.Now().UTC())
}

func (s *PostgresGroupStore) addMember(ctx context.Context, groupID uuid.UUID, userID string, joinedAt time.Time) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO group_members (group_id, user_id, joined_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`, groupID, userID, joinedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return false, store.ErrGroupNotFound
		}
		log.Error("failed to add group member",
			slog.String("error", redact.Error(err)),
			slog.String("group_id", groupID.String()))
		return false, store.NewStoreError("group", "add_member", "failed to insert member", MapError(err))
	}

	if err := CheckRowsAffected(result, errAlreadyMember); err != nil {
		if errors.Is(err, errAlreadyMember) {
			return false, nil
		}
		return false, store.NewStoreError("group", "add_member", "failed to read result", err)
	}

	log.Debug("group member added",
		slog.String("group_id", groupID.String()),
		slog.String("user_id", userID))
	return true, nil
}

var errAlreadyMember = errors.New("already a member")

// RemoveMember implements store.GroupStore.RemoveMember
func (s *PostgresGroupStore) RemoveMember(ctx context.Context, groupID uuid.UUID, userID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`, groupID, userID)
	if err != nil {
		log.Error("failed to remove group member",
			slog.String("error", redact.Error(err)),
			slog.String("group_id", groupID.String()))
		return store.NewStoreError("group", "remove_member", "failed to delete member", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrNotFound); err == nil {
		return nil
	}

	// Nothing deleted: either the user was not a member or the group is gone.
	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM groups WHERE id = $1)`, groupID,
	).Scan(&exists); err != nil {
		return store.NewStoreError("group", "remove_member", "failed to check group", MapError(err))
	}
	if !exists {
		return store.ErrGroupNotFound
	}
	return nil
}

func (s *PostgresGroupStore) querySummaries(
	ctx context.Context,
	operation string,
	query string,
	args ...any,
) ([]domain.GroupSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list groups",
			slog.String("operation", operation),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("group", operation, "failed to query groups", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	summaries := []domain.GroupSummary{}
	for rows.Next() {
		var summary domain.GroupSummary
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.Members); err != nil {
			return nil, store.NewStoreError("group", operation, "failed to scan group", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("group", operation, "failed to iterate groups", err)
	}
	return summaries, nil
}

func (s *PostgresGroupStore) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
