package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/elasticjava/community.hrobot/robot"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hrobot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadRobot_FileValuesAndDefaults(t *testing.T) {
	path := writeConfig(t, "user: \"#ws+robot\"\npassword: secret\n")

	cfg, err := LoadRobot(path)
	require.NoError(t, err)

	r := cfg.Get()
	require.Equal(t, "#ws+robot", r.User)
	require.Equal(t, "secret", r.Password)
	require.Equal(t, robot.DefaultBaseURL, r.BaseURL)
	require.Equal(t, robot.DefaultRequestTimeout, r.Timeout)
	require.Equal(t, robot.DefaultCheckDelay, r.CheckDelay)
	require.Equal(t, robot.DefaultCheckTimeout, r.CheckTimeout)
	require.Zero(t, r.RateLimit)
}

func TestLoadRobot_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "user: from-file\npassword: secret\ncheck_delay: 5s\n")
	t.Setenv("HROBOT_USER", "from-env")

	cfg, err := LoadRobot(path)
	require.NoError(t, err)

	r := cfg.Get()
	require.Equal(t, "from-env", r.User)
	require.Equal(t, 5*time.Second, r.CheckDelay)
}

func TestCredentials_EnvRefExpansion(t *testing.T) {
	t.Setenv("ROBOT_PASSWORD", "vaulted")

	r := Robot{User: "#ws+robot", Password: "${ROBOT_PASSWORD}"}
	creds := r.Credentials()
	require.Equal(t, "#ws+robot", creds.User)
	require.Equal(t, "vaulted", creds.Password)
}

func TestCredentials_LiteralDollarKept(t *testing.T) {
	r := Robot{User: "u", Password: "pa$$word${"}
	require.Equal(t, "pa$$word${", r.Credentials().Password)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("HROBOT_USER", "#ws+env")
	t.Setenv("HROBOT_PASSWORD", "envpass")
	t.Setenv("HROBOT_RATE_LIMIT", "0.5")

	r, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, "#ws+env", r.User)
	require.Equal(t, "envpass", r.Password)
	require.Equal(t, 0.5, r.RateLimit)
	require.Equal(t, robot.DefaultBaseURL, r.BaseURL)
}

func TestChanged(t *testing.T) {
	a := Robot{User: "u", Password: "old"}
	b := Robot{User: "u", Password: "rotated"}
	require.True(t, Changed(a, b))
	require.False(t, Changed(a, a))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := LoadRobot(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
