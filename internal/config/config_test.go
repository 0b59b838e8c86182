package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, time.Second, cfg.Mock.LoginDelay)
	assert.Equal(t, 250*time.Millisecond, cfg.Mock.UserDelay)
	assert.Equal(t, "admin", cfg.Auth.Username)
	assert.False(t, cfg.Auth.BindSession)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"server": {"addr": ":9000"}, "mock": {"login_delay": "5ms"}, "auth": {"bind_session": true}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	t.Setenv("TODOAPP_SERVER_ADDR", ":9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Server.Addr)
	assert.Equal(t, 5*time.Millisecond, cfg.Mock.LoginDelay)
	assert.True(t, cfg.Auth.BindSession)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Mock.UsersDelay = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Server.Addr = " "
	assert.Error(t, cfg.Validate())
}
