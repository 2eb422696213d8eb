package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newMockRobot(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Setenv("HROBOT_USER", "#ws+test")
	t.Setenv("HROBOT_PASSWORD", "hunter2")
	t.Setenv("HROBOT_BASE_URL", srv.URL)
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestServersCommand(t *testing.T) {
	newMockRobot(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/server", r.URL.Path)
		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "#ws+test", user)
		_, _ = w.Write([]byte(`[{"server": {"server_number": 321, "server_name": "web1", "server_ip": "1.2.3.4", "product": "AX41", "dc": "FSN1-DC8", "status": "ready"}}]`))
	})

	out, err := runCommand(t, "servers")
	require.NoError(t, err)
	require.Contains(t, out, "web1")
	require.Contains(t, out, "FSN1-DC8")
}

func TestServerCommand_ProviderError(t *testing.T) {
	newMockRobot(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"status": 404, "code": "SERVER_NOT_FOUND", "message": "server not found"}}`))
	})

	_, err := runCommand(t, "server", "999")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Request failed: 404 SERVER_NOT_FOUND (server not found)")
}

func TestResetCommand(t *testing.T) {
	newMockRobot(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/reset/321", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "hw", r.PostForm.Get("type"))
		_, _ = w.Write([]byte(`{"reset": {"server_number": 321, "type": "hw"}}`))
	})

	out, err := runCommand(t, "reset", "321")
	require.NoError(t, err)
	require.Contains(t, out, `reset "hw" sent to server 321`)
}

func TestFirewallCommand_Wait(t *testing.T) {
	t.Setenv("HROBOT_CHECK_DELAY", "10ms")
	t.Setenv("HROBOT_CHECK_TIMEOUT", "2s")

	var n int
	newMockRobot(t, func(w http.ResponseWriter, r *http.Request) {
		n++
		if n < 3 {
			_, _ = w.Write([]byte(`{"firewall": {"server_ip": "1.2.3.4", "server_number": 321, "status": "in process"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"firewall": {"server_ip": "1.2.3.4", "server_number": 321, "status": "active"}}`))
	})

	out, err := runCommand(t, "firewall", "1.2.3.4", "--wait")
	require.NoError(t, err)
	require.Contains(t, out, "active")
	require.Equal(t, 3, n)
}

func TestVersionCommand_NoCredentialsNeeded(t *testing.T) {
	out, err := runCommand(t, "version", "-o", "short")
	require.NoError(t, err)
	require.NotEmpty(t, out)
}

func TestMissingCredentials(t *testing.T) {
	t.Setenv("HROBOT_USER", "")
	t.Setenv("HROBOT_PASSWORD", "")

	_, err := runCommand(t, "servers")
	require.Error(t, err)
	require.Contains(t, err.Error(), "credentials missing")
}
