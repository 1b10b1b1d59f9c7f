package fanduel

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeOptions(t *testing.T) {
	session := RequestOptions{
		Headers: map[string]string{
			"x-auth-token":  "session-token",
			"Authorization": "Basic abc",
		},
	}
	caller := RequestOptions{
		Method: http.MethodPost,
		Headers: map[string]string{
			"X-Auth-Token": "caller-token",
			"Content-Type": "application/json",
		},
		Body: []byte(`{}`),
	}

	merged := mergeOptions(fallbackOptions(), session, caller)
	require.Equal(t, http.MethodPost, merged.Method)
	require.Equal(t, map[string]string{
		"User-Agent":    userAgent,
		"X-Auth-Token":  "caller-token",
		"Authorization": "Basic abc",
		"Content-Type":  "application/json",
	}, merged.Headers)
	require.Equal(t, []byte(`{}`), merged.Body)

	// inputs are not mutated
	require.Equal(t, "session-token", session.Headers["x-auth-token"])
	require.Len(t, fallbackOptions().Headers, 1)
}

func TestMergeOptionsRemovesHeader(t *testing.T) {
	merged := mergeOptions(
		fallbackOptions(),
		RequestOptions{Headers: map[string]string{"user-agent": ""}},
	)
	require.Empty(t, merged.Headers)
	require.Equal(t, http.MethodGet, merged.Method)
}

func TestMergeOptionsDefaults(t *testing.T) {
	merged := mergeOptions()
	require.Equal(t, http.MethodGet, merged.Method)
	require.NotNil(t, merged.Headers)
	require.Nil(t, merged.Body)
	require.Nil(t, merged.MultipartForm)

	merged = mergeOptions(
		RequestOptions{Method: http.MethodPut, MultipartForm: map[string]string{"a": "1"}},
		RequestOptions{},
	)
	require.Equal(t, http.MethodPut, merged.Method)
	require.Equal(t, map[string]string{"a": "1"}, merged.MultipartForm)
}
