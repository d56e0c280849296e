package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MessageResponse matches the {"msg": "..."} bodies returned by the API
type MessageResponse struct {
	Msg string `json:"msg"`
}

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertMessageResponse verifies a {"msg": ...} response with expected status and message
func AssertMessageResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	var msg MessageResponse
	AssertJSONResponse(t, resp, &msg)
	assert.Equal(t, expectedMessage, msg.Msg, "message mismatch")
}

// AssertEmptyBody verifies the response carries no body
func AssertEmptyBody(t *testing.T, resp *http.Response) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	assert.Empty(t, body)
}

// FindCookie returns the named cookie from the response, or nil
func FindCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
