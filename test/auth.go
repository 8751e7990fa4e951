//go:build integration

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/2beens/coachdesk/internal/auth"
	"github.com/2beens/coachdesk/internal/middleware"

	"github.com/stretchr/testify/require"
)

func doLogin(ctx context.Context, t *testing.T, client *http.Client) string {
	loginReqJson, err := json.Marshal(auth.Credentials{
		Username: testUsername,
		Password: testPassword,
	})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/a/login", serverEndpoint), bytes.NewBuffer(loginReqJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var loginResp auth.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	require.NotEmpty(t, loginResp.Token)

	return loginResp.Token
}

// doAuthRequest sends body as JSON with the session token set and decodes
// the response into out when the status matches.
func doAuthRequest(
	ctx context.Context,
	t *testing.T,
	client *http.Client,
	token, method, path string,
	body any,
	expectedStatus int,
	out any,
) {
	var reqBody io.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(bodyJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TokenHeader, token)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, resp.StatusCode, "%s %s: %s", method, path, respBytes)

	if out != nil {
		require.NoError(t, json.Unmarshal(respBytes, out))
	}
}
