package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/api/shared"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/domain"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CreateGroupRequest is the body of POST /createGroup.
type CreateGroupRequest struct {
	GroupName string `json:"groupName"`
	About     string `json:"about"`
}

// GroupIDRequest is the body of the per-group endpoints.
type GroupIDRequest struct {
	GroupID string `json:"groupId"`
}

// GroupListResponse lists groups in summary form.
type GroupListResponse struct {
	shared.Envelope
	Groups []domain.GroupSummary `json:"groups"`
}

// CreateGroupResponse is the success body of POST /createGroup.
type CreateGroupResponse struct {
	shared.Envelope
	GroupID uuid.UUID `json:"groupId"`
}

// GroupDetailsResponse is the success body of POST /{id}.
type GroupDetailsResponse struct {
	shared.Envelope
	GroupDetails *domain.Group `json:"groupDetails"`
}

// GroupHandler serves the /api/groups endpoints. Every route expects the
// caller's user ID in the context, put there by the auth middleware.
type GroupHandler struct {
	groupService service.GroupService
	logger       *slog.Logger
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService service.GroupService, logger *slog.Logger) *GroupHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GroupHandler{
		groupService: groupService,
		logger:       logger.With("component", "group_handler"),
	}
}

// Dashboard handles POST /groupDashboard.
func (h *GroupHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, shared.Succeeded(r, "Group dashboard data"))
}

// Find handles GET /find?search= (or ?q=). No query lists every group; an
// empty result is a 404.
func (h *GroupHandler) Find(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")
	if query == "" {
		query = r.URL.Query().Get("q")
	}

	groups, err := h.groupService.FindGroups(r.Context(), query)
	if err != nil {
		h.respondError(w, r, err, "Something went wrong while finding groups")
		return
	}
	if len(groups) == 0 {
		shared.RespondWithError(w, r, http.StatusNotFound, CodeNoGroupsFound, "No groups found matching the query")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GroupListResponse{
		Envelope: shared.Succeeded(r, "Groups found"),
		Groups:   groups,
	})
}

// Create handles POST /createGroup.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, hasUser := shared.GetUserID(r.Context())

	var req CreateGroupRequest
	if err := shared.DecodeOptionalJSON(w, r, &req); err != nil {
		if bodyTooLarge(err) {
			h.respondError(w, r, err, "Failed to create group")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			CodeMissingParams, "Missing group name or userId", err)
		return
	}
	if strings.TrimSpace(req.GroupName) == "" || !hasUser {
		shared.RespondWithError(w, r, http.StatusBadRequest, CodeMissingParams, "Missing group name or userId")
		return
	}

	group, err := h.groupService.CreateGroup(r.Context(), userID, req.GroupName, req.About)
	if err != nil {
		h.respondError(w, r, err, "Failed to create group")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CreateGroupResponse{
		Envelope: shared.Succeeded(r, "Group created successfully"),
		GroupID:  group.ID,
	})
}

// MyGroups handles POST /my-groups. A caller in no group gets an empty list.
func (h *GroupHandler) MyGroups(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, CodeMissingUserID, "Missing userId parameter")
		return
	}

	groups, err := h.groupService.ListMyGroups(r.Context(), userID)
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch user joined groups")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GroupListResponse{
		Envelope: shared.Succeeded(r, "Joined groups fetched successfully"),
		Groups:   groups,
	})
}

// Details handles POST /{id}. Only members may read a group.
func (h *GroupHandler) Details(w http.ResponseWriter, r *http.Request) {
	userID, groupID, ok := h.resolveGroupRequest(w, r,
		CodeNoSuchGroupOrUser, "Error: No such group exists or user is missing")
	if !ok {
		return
	}

	group, err := h.groupService.GetGroupDetails(r.Context(), userID, groupID)
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch group details")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GroupDetailsResponse{
		Envelope:     shared.Succeeded(r, "Group details fetched successfully"),
		GroupDetails: group,
	})
}

// Join handles POST /{id}/join. Joining twice succeeds and reports
// already-a-member in the error field.
func (h *GroupHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, groupID, ok := h.resolveGroupRequest(w, r,
		CodeNoSuchGroupOrUserID, "No such group exists or userId is missing")
	if !ok {
		return
	}

	err := h.groupService.JoinGroup(r.Context(), userID, groupID)
	switch {
	case err == nil:
		shared.RespondWithJSON(w, r, http.StatusOK, shared.Succeeded(r, "Joined group successfully"))
	case errors.Is(err, service.ErrAlreadyMember):
		env := shared.Succeeded(r, "User is already a member of the group")
		code := CodeAlreadyAMember
		env.Error = &code
		shared.RespondWithJSON(w, r, http.StatusOK, env)
	default:
		h.respondError(w, r, err, "Failed to join group")
	}
}

// Leave handles POST /{id}/leave.
func (h *GroupHandler) Leave(w http.ResponseWriter, r *http.Request) {
	userID, groupID, ok := h.resolveGroupRequest(w, r, CodeMissingParams, "Missing groupId or userId")
	if !ok {
		return
	}

	if err := h.groupService.LeaveGroup(r.Context(), userID, groupID); err != nil {
		h.respondError(w, r, err, "Failed to leave group")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, shared.Succeeded(r, "Left group successfully"))
}

// resolveGroupRequest returns the caller and the target group. The group ID
// comes from the body's groupId, falling back to the {id} path segment.
// When either is missing it answers 400 with the endpoint's code; an ID that
// is not a UUID cannot name a group and is answered as group-not-found.
func (h *GroupHandler) resolveGroupRequest(
	w http.ResponseWriter,
	r *http.Request,
	missingCode string,
	missingMessage string,
) (string, uuid.UUID, bool) {
	userID, hasUser := shared.GetUserID(r.Context())

	var req GroupIDRequest
	if err := shared.DecodeOptionalJSON(w, r, &req); err != nil {
		h.logger.Debug("ignoring unreadable group request body", "error", err)
	}

	raw := strings.TrimSpace(req.GroupID)
	if raw == "" {
		raw = chi.URLParam(r, "id")
	}
	if raw == "" || !hasUser {
		shared.RespondWithError(w, r, http.StatusBadRequest, missingCode, missingMessage)
		return "", uuid.Nil, false
	}

	groupID, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, CodeGroupNotFound, "Group not found", err)
		return "", uuid.Nil, false
	}
	return userID, groupID, true
}

// respondError writes the mapped error. Unexpected failures use the
// endpoint's own message.
func (h *GroupHandler) respondError(w http.ResponseWriter, r *http.Request, err error, failedMessage string) {
	status, code, message := MapErrorToCode(err)
	if code == CodeInternalError {
		message = failedMessage
	}
	shared.RespondWithErrorAndLog(w, r, status, code, message, err)
}
