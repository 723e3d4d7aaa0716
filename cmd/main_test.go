package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TG-Note-App/tgauth/internal/initdata"
)

func TestCleanSourcePath(t *testing.T) {
	assert.Equal(t, "internal/server/server.go", cleanSourcePath("/home/u/tgauth/internal/server/server.go", "/tgauth/"))
	assert.Equal(t, "example.com/x/y.go", cleanSourcePath("/root/go/src/example.com/x/y.go", "/tgauth/"))
}

func TestVerifyInitData(t *testing.T) {
	const token = "1:abc"
	values := initdata.Values{
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
		"user":      `{"id":5,"first_name":"Eve"}`,
	}
	initdata.SignValues(token, values)

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, verifyInitData(cmd, initdata.NewValidator(token, time.Hour), values.Encode()))
	assert.Contains(t, out.String(), "signature valid for user 5 (Eve)")

	err := verifyInitData(cmd, initdata.NewValidator("other", time.Hour), values.Encode())
	assert.ErrorIs(t, err, initdata.ErrHashMismatch)
}

func TestSetupLogging_ReadsLevelFromEnvFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	// t.Setenv restores the original value; the variable must be unset for
	// godotenv to fill it.
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LOG_LEVEL=debug\n"), 0o600))

	var out bytes.Buffer
	require.NoError(t, setupLogging(&out, envFile))

	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
	assert.Contains(t, out.String(), "debug logging enabled")
}

func TestSetupLogging_Levels(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Setenv("LOG_LEVEL", "warn")
	var out bytes.Buffer
	require.NoError(t, setupLogging(&out, missing))
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelWarn))

	slog.Warn("disk almost full")
	assert.Contains(t, out.String(), `"msg":"disk almost full"`)

	t.Setenv("LOG_LEVEL", "loud")
	assert.ErrorContains(t, setupLogging(&out, missing), "invalid LOG_LEVEL")
}
