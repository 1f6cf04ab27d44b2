package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the command tree against an isolated config file and returns
// stdout and the log output.
func execute(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer

	root := newRootCommand(&logs)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", configPath}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

func tempConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

func TestSetVersion(t *testing.T) {
	old, oldCommit, oldDate := version, commit, date
	t.Cleanup(func() { SetVersion(old, oldCommit, oldDate) })

	SetVersion("1.0.0", "abc123", "2024-01-01")

	if version != "1.0.0" || commit != "abc123" || date != "2024-01-01" {
		t.Errorf("SetVersion did not update globals: %s %s %s", version, commit, date)
	}
}

func TestVersionCommand(t *testing.T) {
	old, oldCommit, oldDate := version, commit, date
	t.Cleanup(func() { SetVersion(old, oldCommit, oldDate) })
	SetVersion("1.2.3", "deadbee", "2025-06-01")

	out, _, err := execute(t, tempConfig(t), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "proxysheet 1.2.3")
	assert.Contains(t, out, "deadbee")
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand(io.Discard)

	for _, name := range []string{"generate", "plan", "preset", "config", "backup", "version"} {
		cmd, _, err := root.Find([]string{name})
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, cmd.Name())
		}
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}
