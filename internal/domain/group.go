package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxGroupNameLength bounds a group name in runes.
const MaxGroupNameLength = 100

// Common validation errors for Group
var (
	ErrEmptyGroupID       = errors.New("group ID cannot be empty")
	ErrEmptyGroupName     = errors.New("group name cannot be empty")
	ErrGroupNameTooLong   = errors.New("group name is too long")
	ErrEmptyGroupAdminUID = errors.New("group admin user ID cannot be empty")
)

// Group is a study group. Members holds the user IDs of everyone in the
// group, the admin included.
type Group struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	About     string    `json:"about,omitempty"`
	Icon      string    `json:"icon,omitempty"`
	Color     string    `json:"color,omitempty"`
	AdminUID  string    `json:"adminUID"`
	Members   []string  `json:"members"`
	Goals     []string  `json:"goals"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GroupSummary is the listing form of a group.
type GroupSummary struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Members int       `json:"members"`
}

// NewGroup creates a group administered by adminUID, who also becomes its
// first member. The name is trimmed but keeps its case.
func NewGroup(name, about, adminUID string) (*Group, error) {
	now := time.Now().UTC()
	group := &Group{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		About:     about,
		AdminUID:  adminUID,
		Members:   []string{adminUID},
		Goals:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := group.Validate(); err != nil {
		return nil, err
	}
	return group, nil
}

// Validate checks if the Group has valid data.
func (g *Group) Validate() error {
	if g.ID == uuid.Nil {
		return ErrEmptyGroupID
	}
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyGroupName
	}
	if utf8.RuneCountInString(g.Name) > MaxGroupNameLength {
		return ErrGroupNameTooLong
	}
	if g.AdminUID == "" {
		return ErrEmptyGroupAdminUID
	}
	return nil
}

// IsMember reports whether userID belongs to the group.
func (g *Group) IsMember(userID string) bool {
	for _, member := range g.Members {
		if member == userID {
			return true
		}
	}
	return false
}

// Summary returns the listing form of g.
func (g *Group) Summary() GroupSummary {
	return GroupSummary{ID: g.ID, Name: g.Name, Members: len(g.Members)}
}
