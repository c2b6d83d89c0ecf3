package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var requestIDPattern = regexp.MustCompile(`^req_[0-9a-f]{16}_\d+$`)

// newJSONRequest builds a request whose body is the given raw JSON string.
func newJSONRequest(method, target, body string) *http.Request {
	if body == "" {
		return httptest.NewRequest(method, target, nil)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withUser(req *http.Request, userID string) *http.Request {
	return req.WithContext(shared.WithUserID(req.Context(), userID))
}

// decodeBody decodes the recorded response into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]any
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&body))
	return body
}

// assertEnvelope checks the fields every response carries.
func assertEnvelope(t *testing.T, body map[string]any, success bool, code any) {
	t.Helper()
	assert.Equal(t, success, body["success"])
	assert.Equal(t, code, body["error"])
	assert.IsType(t, "", body["message"])
	assert.Regexp(t, requestIDPattern, body["requestId"])
}

// ctxWithRequestID returns a context carrying a fixed request ID.
func ctxWithRequestID(id string) context.Context {
	return context.WithValue(context.Background(), shared.RequestIDKey, id)
}
