package service

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestEnv points every store at a fresh temporary directory.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("YATUBE_DATABASE_PATH", filepath.Join(dir, "yatube.db"))
	t.Setenv("YATUBE_MEDIA_ROOT", filepath.Join(dir, "media"))
	t.Setenv("YATUBE_LOGGING_LEVEL", "error")
	t.Setenv("YATUBE_LOGGING_PRETTY", "false")
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "yatube", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String("config", "", "")
	root.AddCommand(Commands()...)

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "yatube version "+Version+"\n", out)
}

func TestMigrateCommand(t *testing.T) {
	setupTestEnv(t)

	out, err := run(t, "", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema is up to date (sqlite)")

	// idempotent
	_, err = run(t, "", "migrate")
	require.NoError(t, err)
}

func TestUserCommands(t *testing.T) {
	setupTestEnv(t)

	out, err := run(t, "", "user", "create", "leo", "--password", "password123")
	require.NoError(t, err)
	assert.Contains(t, out, "Created user leo")

	_, err = run(t, "", "user", "create", "leo", "--password", "password123")
	assert.ErrorContains(t, err, "username")

	_, err = run(t, "", "user", "create", "ann")
	assert.ErrorContains(t, err, "--password is required")
}

func TestGroupCommands(t *testing.T) {
	setupTestEnv(t)

	out, err := run(t, "", "group", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No groups.")

	out, err = run(t, "", "group", "create", "cats", "All about cats", "--description", "meow")
	require.NoError(t, err)
	assert.Contains(t, out, "Created group cats")

	_, err = run(t, "", "group", "create", "cats", "Again", "--description", "dup")
	assert.ErrorContains(t, err, "slug")

	_, err = run(t, "", "group", "create", "bad slug", "Bad", "--description", "x")
	assert.ErrorContains(t, err, "slug")

	out, err = run(t, "", "group", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "cats")
	assert.Contains(t, out, "All about cats")

	out, err = run(t, "n\n", "group", "delete", "cats")
	require.NoError(t, err)
	assert.Contains(t, out, "Operation cancelled")

	out, err = run(t, "y\n", "group", "delete", "cats")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted group cats")

	_, err = run(t, "", "group", "delete", "cats", "--yes")
	assert.ErrorContains(t, err, "group not found")
}

func TestCacheClearCommand(t *testing.T) {
	dir := setupTestEnv(t)

	out, err := run(t, "", "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "in memory")

	t.Setenv("YATUBE_CACHE_PATH", filepath.Join(dir, "cache"))
	out, err = run(t, "", "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Page cache cleared")
}

func TestServeRequiresSecret(t *testing.T) {
	setupTestEnv(t)
	t.Setenv("YATUBE_AUTH_SECRET", "")

	_, err := run(t, "", "serve")
	assert.ErrorContains(t, err, "auth secret is required")
}
