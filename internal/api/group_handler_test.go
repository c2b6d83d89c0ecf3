package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/api/shared"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/domain"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/mocks"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/service"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// groupRouter mounts the handler the way the server does, minus auth.
func groupRouter(h *GroupHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/groupDashboard", h.Dashboard)
	r.Get("/find", h.Find)
	r.Post("/createGroup", h.Create)
	r.Post("/my-groups", h.MyGroups)
	r.Post("/{id}", h.Details)
	r.Post("/{id}/join", h.Join)
	r.Post("/{id}/leave", h.Leave)
	return r
}

func serveGroup(h *GroupHandler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	groupRouter(h).ServeHTTP(rec, req)
	return rec
}

func TestGroupHandler_Dashboard(t *testing.T) {
	h := NewGroupHandler(&mocks.MockGroupService{}, nil)
	rec := serveGroup(h, withUser(newJSONRequest(http.MethodPost, "/groupDashboard", ""), "user-1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assertEnvelope(t, body, true, nil)
	assert.Equal(t, "Group dashboard data", body["message"])
}

func TestGroupHandler_Find(t *testing.T) {
	summary := domain.GroupSummary{ID: uuid.New(), Name: "Algebra", Members: 3}

	tests := []struct {
		name       string
		target     string
		result     []domain.GroupSummary
		err        error
		wantQuery  string
		wantStatus int
		wantCode   any
	}{
		{name: "search param", target: "/find?search=alg", result: []domain.GroupSummary{summary}, wantQuery: "alg", wantStatus: http.StatusOK},
		{name: "q param", target: "/find?q=alg", result: []domain.GroupSummary{summary}, wantQuery: "alg", wantStatus: http.StatusOK},
		{name: "search wins over q", target: "/find?search=a&q=b", result: []domain.GroupSummary{summary}, wantQuery: "a", wantStatus: http.StatusOK},
		{name: "no query lists all", target: "/find", result: []domain.GroupSummary{summary}, wantQuery: "", wantStatus: http.StatusOK},
		{name: "nothing found", target: "/find?q=zzz", result: []domain.GroupSummary{}, wantQuery: "zzz", wantStatus: http.StatusNotFound, wantCode: CodeNoGroupsFound},
		{name: "store failure", target: "/find?q=x", err: errors.New("db down"), wantQuery: "x", wantStatus: http.StatusInternalServerError, wantCode: CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mocks.MockGroupService{
				FindGroupsFn: func(_ context.Context, query string) ([]domain.GroupSummary, error) {
					assert.Equal(t, tt.wantQuery, query)
					return tt.result, tt.err
				},
			}
			rec := serveGroup(NewGroupHandler(svc, nil), withUser(newJSONRequest(http.MethodGet, tt.target, ""), "user-1"))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assertEnvelope(t, body, tt.wantStatus == http.StatusOK, tt.wantCode)
			if tt.wantStatus == http.StatusOK {
				groups := body["groups"].([]any)
				require.Len(t, groups, 1)
				first := groups[0].(map[string]any)
				assert.Equal(t, summary.ID.String(), first["id"])
				assert.Equal(t, float64(3), first["members"])
			}
			if tt.err != nil {
				assert.Equal(t, "Something went wrong while finding groups", body["message"])
				assert.NotContains(t, rec.Body.String(), "db down")
			}
		})
	}
}

func TestGroupHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		user       string
		err        error
		wantStatus int
		wantCode   any
		wantCalled bool
	}{
		{name: "created", body: `{"groupName":"Algebra","about":"x"}`, user: "user-1", wantStatus: http.StatusOK, wantCalled: true},
		{name: "missing name", body: `{"about":"x"}`, user: "user-1", wantStatus: http.StatusBadRequest, wantCode: CodeMissingParams},
		{name: "blank name", body: `{"groupName":"   "}`, user: "user-1", wantStatus: http.StatusBadRequest, wantCode: CodeMissingParams},
		{name: "no caller", body: `{"groupName":"Algebra"}`, wantStatus: http.StatusBadRequest, wantCode: CodeMissingParams},
		{name: "malformed body", body: `{"groupName":`, user: "user-1", wantStatus: http.StatusBadRequest, wantCode: CodeMissingParams},
		{name: "body too large", body: `{"groupName":"` + strings.Repeat("a", shared.MaxBodyBytes) + `"}`, user: "user-1", wantStatus: http.StatusRequestEntityTooLarge, wantCode: CodeBodyTooLarge},
		{name: "name exists", body: `{"groupName":"Algebra"}`, user: "user-1", err: store.ErrGroupNameExists, wantStatus: http.StatusBadRequest, wantCode: CodeGroupNameExists, wantCalled: true},
		{name: "name too long", body: `{"groupName":"Algebra"}`, user: "user-1", err: errors.Join(domain.ErrValidation, domain.ErrGroupNameTooLong), wantStatus: http.StatusBadRequest, wantCode: CodeGroupNameTooLong, wantCalled: true},
		{name: "store failure", body: `{"groupName":"Algebra"}`, user: "user-1", err: errors.New("db down"), wantStatus: http.StatusInternalServerError, wantCode: CodeInternalError, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			var created *domain.Group
			svc := &mocks.MockGroupService{
				CreateGroupFn: func(_ context.Context, userID, name, about string) (*domain.Group, error) {
					called = true
					if tt.err != nil {
						return nil, tt.err
					}
					g, err := domain.NewGroup(name, about, userID)
					created = g
					return g, err
				},
			}
			req := newJSONRequest(http.MethodPost, "/createGroup", tt.body)
			if tt.user != "" {
				req = withUser(req, tt.user)
			}
			rec := serveGroup(NewGroupHandler(svc, nil), req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
			body := decodeBody(t, rec)
			assertEnvelope(t, body, tt.wantStatus == http.StatusOK, tt.wantCode)
			if created != nil {
				assert.Equal(t, created.ID.String(), body["groupId"])
				assert.Equal(t, "Group created successfully", body["message"])
			}
		})
	}
}

func TestGroupHandler_MyGroups(t *testing.T) {
	svc := &mocks.MockGroupService{
		ListMyGroupsFn: func(_ context.Context, userID string) ([]domain.GroupSummary, error) {
			assert.Equal(t, "user-1", userID)
			return []domain.GroupSummary{}, nil
		},
	}
	h := NewGroupHandler(svc, nil)

	rec := serveGroup(h, withUser(newJSONRequest(http.MethodPost, "/my-groups", ""), "user-1"))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assertEnvelope(t, body, true, nil)
	assert.Equal(t, []any{}, body["groups"], "empty list, not null")

	rec = serveGroup(h, newJSONRequest(http.MethodPost, "/my-groups", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assertEnvelope(t, decodeBody(t, rec), false, CodeMissingUserID)
}

func TestGroupHandler_Details(t *testing.T) {
	group, err := domain.NewGroup("Algebra", "", "admin")
	require.NoError(t, err)

	svc := &mocks.MockGroupService{
		GetGroupDetailsFn: func(_ context.Context, userID string, id uuid.UUID) (*domain.Group, error) {
			switch {
			case id != group.ID:
				return nil, store.ErrGroupNotFound
			case userID != "admin":
				return nil, service.ErrNotMember
			}
			return group, nil
		},
	}
	h := NewGroupHandler(svc, nil)
	path := "/" + group.ID.String()

	tests := []struct {
		name       string
		target     string
		body       string
		user       string
		wantStatus int
		wantCode   any
	}{
		{name: "member via path", target: path, user: "admin", wantStatus: http.StatusOK},
		{name: "member via body", target: "/" + uuid.NewString(), body: `{"groupId":"` + group.ID.String() + `"}`, user: "admin", wantStatus: http.StatusOK},
		{name: "non-member", target: path, user: "stranger", wantStatus: http.StatusForbidden, wantCode: CodeNotAMember},
		{name: "unknown group", target: "/" + uuid.NewString(), user: "admin", wantStatus: http.StatusNotFound, wantCode: CodeGroupNotFound},
		{name: "not a uuid", target: "/not-a-uuid", user: "admin", wantStatus: http.StatusNotFound, wantCode: CodeGroupNotFound},
		{name: "no caller", target: path, wantStatus: http.StatusBadRequest, wantCode: CodeNoSuchGroupOrUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(http.MethodPost, tt.target, tt.body)
			if tt.user != "" {
				req = withUser(req, tt.user)
			}
			rec := serveGroup(h, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assertEnvelope(t, body, tt.wantStatus == http.StatusOK, tt.wantCode)
			if tt.wantStatus == http.StatusOK {
				details := body["groupDetails"].(map[string]any)
				assert.Equal(t, group.ID.String(), details["id"])
				assert.Equal(t, "admin", details["adminUID"])
			}
		})
	}
}

func TestGroupHandler_JoinAndLeave(t *testing.T) {
	groupID := uuid.New()

	tests := []struct {
		name        string
		action      string
		err         error
		user        string
		wantStatus  int
		wantSuccess bool
		wantCode    any
		wantMessage string
	}{
		{name: "join", action: "join", user: "u", wantStatus: http.StatusOK, wantSuccess: true, wantMessage: "Joined group successfully"},
		{name: "join twice", action: "join", user: "u", err: service.ErrAlreadyMember, wantStatus: http.StatusOK, wantSuccess: true, wantCode: CodeAlreadyAMember, wantMessage: "User is already a member of the group"},
		{name: "join missing group", action: "join", user: "u", err: store.ErrGroupNotFound, wantStatus: http.StatusNotFound, wantCode: CodeGroupNotFound},
		{name: "join without caller", action: "join", wantStatus: http.StatusBadRequest, wantCode: CodeNoSuchGroupOrUserID},
		{name: "join failure", action: "join", user: "u", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: CodeInternalError, wantMessage: "Failed to join group"},
		{name: "leave", action: "leave", user: "u", wantStatus: http.StatusOK, wantSuccess: true, wantMessage: "Left group successfully"},
		{name: "leave missing group", action: "leave", user: "u", err: store.ErrGroupNotFound, wantStatus: http.StatusNotFound, wantCode: CodeGroupNotFound},
		{name: "leave without caller", action: "leave", wantStatus: http.StatusBadRequest, wantCode: CodeMissingParams},
		{name: "leave failure", action: "leave", user: "u", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: CodeInternalError, wantMessage: "Failed to leave group"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := func(_ context.Context, userID string, id uuid.UUID) error {
				assert.Equal(t, tt.user, userID)
				assert.Equal(t, groupID, id)
				return tt.err
			}
			svc := &mocks.MockGroupService{JoinGroupFn: check, LeaveGroupFn: check}

			req := newJSONRequest(http.MethodPost, "/"+groupID.String()+"/"+tt.action, `{"groupId":"`+groupID.String()+`"}`)
			if tt.user != "" {
				req = withUser(req, tt.user)
			}
			rec := serveGroup(NewGroupHandler(svc, nil), req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assertEnvelope(t, body, tt.wantSuccess, tt.wantCode)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, body["message"])
			}
		})
	}
}
