package commands

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/diary/pkg/store"
)

func TestConfigureLoggingToFile(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "diary.log")
	cfgFile := filepath.Join(dir, ".diary.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("log-file: "+logFile+"\n"), 0o644))
	cfg, err := store.LoadConfigFile(cfgFile)
	require.NoError(t, err)

	c, err := configureLogging(cfg, "info", true)
	require.NoError(t, err)
	require.NotNil(t, c)
	t.Cleanup(func() { log.SetLevel(log.WarnLevel) })

	log.WithField("date", "2014-06-03").Info("entry saved")
	closeLog(c)

	b, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"entry saved"`)

	f, ok := c.(*os.File)
	require.True(t, ok)
	_, err = f.WriteString("more")
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.Equal(t, os.Stderr, log.StandardLogger().Out)
}

func TestConfigureLoggingWithoutFile(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), ".diary.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("{}\n"), 0o644))
	cfg, err := store.LoadConfigFile(cfgFile)
	require.NoError(t, err)

	c, err := configureLogging(cfg, "", false)
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = configureLogging(cfg, "", true)
	require.NoError(t, err)
	assert.Nil(t, c)
	closeLog(c)

	_, err = configureLogging(cfg, "chatty", false)
	assert.Error(t, err)
	log.SetOutput(os.Stderr)
}
