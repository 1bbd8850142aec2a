package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeEndpoints(t *testing.T) {
	env := newTestEnv(t)

	// Defaults to light mode.
	rec := env.do(t, http.MethodGet, "/api/prefs/theme", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		DarkMode bool `json:"darkMode"`
	}
	decodeBody(t, rec, &resp)
	assert.False(t, resp.DarkMode)

	rec = env.do(t, http.MethodPut, "/api/prefs/theme", map[string]bool{"darkMode": true}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/prefs/theme", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &resp)
	assert.True(t, resp.DarkMode, "theme change must persist")
}

func TestAvatarEndpoints(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signup(t, "alice", "alice@example.com", "secret1")

	// Nothing stored yet.
	rec := env.do(t, http.MethodGet, "/api/me/avatar", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Avatar string `json:"avatar"`
	}
	decodeBody(t, rec, &resp)
	assert.Empty(t, resp.Avatar)

	dataURI := "data:image/png;base64,iVBORw0KGgo="
	rec = env.do(t, http.MethodPut, "/api/me/avatar", map[string]string{"avatar": dataURI}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/me/avatar", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &resp)
	assert.Equal(t, dataURI, resp.Avatar)
}

func TestAvatarEndpoints_RequireAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/me/avatar", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/me/avatar", map[string]string{"avatar": "data:image/png;base64,x"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAvatarEndpoint_RejectsNonImage(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.signup(t, "alice", "alice@example.com", "secret1")

	rec := env.do(t, http.MethodPut, "/api/me/avatar", map[string]string{
		"avatar": "data:text/html,<script>alert(1)</script>",
	}, cookie)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp ErrorResponse
	decodeBody(t, rec, &errResp)
	assert.Equal(t, "validation_error", errResp.Error)
}
