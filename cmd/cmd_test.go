package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sogladev/wow-realm-switch-utility/internal/app"
	"github.com/sogladev/wow-realm-switch-utility/internal/errors"
	"github.com/sogladev/wow-realm-switch-utility/internal/logging"
	"github.com/sogladev/wow-realm-switch-utility/internal/manifest"
	"github.com/sogladev/wow-realm-switch-utility/internal/testutil"
	"github.com/sogladev/wow-realm-switch-utility/internal/tui"
	"github.com/sogladev/wow-realm-switch-utility/internal/workspace"
)

// testEnv holds a workspace root and an initialized base
type testEnv struct {
	root   string
	config string
	base   string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	t.Setenv("REALMCTL_WORKSPACE_ROOT", "")
	t.Setenv("REALMCTL_PROFILE", "")

	tmpDir := t.TempDir()
	env := &testEnv{
		root:   filepath.Join(tmpDir, "workspaces"),
		config: filepath.Join(tmpDir, "missing-config.toml"),
		base:   testutil.NewBase(t, testutil.Chromie335aTree()),
	}

	original := app.Default
	t.Cleanup(func() { app.SetDefault(original) })
	return env
}

// run executes realmctl with the env's root and config prepended.
func (e *testEnv) run(args ...string) (string, string, error) {
	return executeCommand(append([]string{"--root", e.root, "--config", e.config}, args...)...)
}

func (e *testEnv) initBase(t *testing.T) {
	t.Helper()
	_, stderr, err := e.run("init-base", e.base)
	require.NoError(t, err, stderr)
}

func (e *testEnv) create(t *testing.T, name string, extra ...string) string {
	t.Helper()
	stdout, stderr, err := e.run(append([]string{"create", name, e.base}, extra...)...)
	require.NoError(t, err, stderr)
	return stdout
}

// resetFlags restores every flag to its default so tests don't leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func executeCommand(args ...string) (string, string, error) {
	resetFlags(rootCmd)

	cmd := rootCmd
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	cmd.SetArgs(nil)
	cmd.SetOut(nil)
	cmd.SetErr(nil)
	logging.SetUserOutput(nil, nil)
	logging.Setup(false, false, nil)

	return stdout.String(), stderr.String(), err
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "realmctl")
	assert.Contains(t, stdout, "workspace")
	for _, flag := range []string{"--verbose", "--json", "--config", "--root"} {
		assert.Contains(t, stdout, flag)
	}
}

func TestRootCommand_HelpDescribesLinkStrategies(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Immutable data and executables are hard-linked from the base")
	assert.Contains(t, stdout, "Mutable data is copied")
}

func TestRootFlag_BindsWorkspaceRoot(t *testing.T) {
	env := setupTestEnv(t)

	_, _, err := env.run("list")
	require.NoError(t, err)
	assert.Equal(t, env.root, app.Default.Root())
}

func TestRootCommand_ListsCommands(t *testing.T) {
	stdout, _, err := executeCommand("help")
	require.NoError(t, err)

	for _, name := range []string{"init-base", "create", "fix", "clean", "list", "pick", "profiles", "events"} {
		assert.Contains(t, stdout, name)
	}
}

func TestCreateCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("create", "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "--share")
	assert.Contains(t, stdout, "--dry-run")
}

func TestCommandRequiresArgs(t *testing.T) {
	for _, name := range []string{"init-base", "create", "fix", "clean", "events"} {
		t.Run(name, func(t *testing.T) {
			_, _, err := executeCommand(name)
			assert.Error(t, err)
		})
	}
}

func TestInitBase(t *testing.T) {
	env := setupTestEnv(t)

	stdout, _, err := env.run("init-base", env.base)
	require.NoError(t, err)

	assert.True(t, manifest.Exists(env.base))
	assert.Contains(t, stdout, "All required files and directories present")
	assert.Contains(t, stdout, "Manifest written")
	assert.Contains(t, stdout, "BaseData")

	m, err := manifest.Load(env.base)
	require.NoError(t, err)
	assert.Equal(t, "chromie-3.3.5a", m.Profile)
}

func TestInitBase_ProfileFlag(t *testing.T) {
	env := setupTestEnv(t)

	_, _, err := env.run("init-base", env.base, "--profile", "vanilla-1.12")
	require.Error(t, err)
	assert.Equal(t, errors.ExitValidation, errors.GetExitCode(err))
	assert.False(t, manifest.Exists(env.base))
}

func TestInitBase_Errors(t *testing.T) {
	env := setupTestEnv(t)

	_, _, err := env.run("init-base", filepath.Join(env.root, "nope"))
	assert.Equal(t, errors.ExitNotFound, errors.GetExitCode(err))

	_, _, err = env.run("init-base", env.base, "--profile", "no-such-profile")
	assert.Equal(t, errors.ExitNotFound, errors.GetExitCode(err))
}

func TestCreate(t *testing.T) {
	env := setupTestEnv(t)
	env.initBase(t)

	stdout := env.create(t, "alpha")

	wsPath := filepath.Join(env.root, "alpha")
	assert.FileExists(t, workspace.ConfigPath(wsPath))
	assert.True(t, testutil.IsSymlink(t, filepath.Join(wsPath, "Screenshots")))
	assert.Contains(t, stdout, "Sharing rules:")
	assert.Contains(t, stdout, "screenshots = global")
	assert.Contains(t, stdout, "Hard links: 3")
	assert.Contains(t, stdout, "Workspace created")
	assert.Contains(t, stdout, "WINEPREFIX=")
	assert.Contains(t, stdout, "Wow.exe")
}

func TestCreate_ShareOverride(t *testing.T) {
	env := setupTestEnv(t)
	env.initBase(t)

	env.create(t, "alpha", "--share", "Screenshots=workspace")

	wsPath := filepath.Join(env.root, "alpha")
	assert.False(t, testutil.IsSymlink(t, filepath.Join(wsPath, "Screenshots")))
	assert.DirExists(t, filepath.Join(wsPath, "Screenshots"))
}

func TestCreate_DryRun(t *testing.T) {
	env := setupTestEnv(t)
	env.initBase(t)

	stdout, _, err := env.run("create", "alpha", env.base, "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Plan for")
	assert.Contains(t, stdout, "hardlink")
	assert.NoDirExists(t, filepath.Join(env.root, "alpha"))
}

func TestCreate_Errors(t *testing.T) {
	env := setupTestEnv(t)
	env.initBase(t)
	env.create(t, "alpha")

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"invalid name", []string{"create", "../evil", env.base}, errors.ExitValidation},
		{"invalid share", []string{"create", "beta", env.base, "--share", "wtf=private"}, errors.ExitValidation},
		{"malformed share", []string{"create", "beta", env.base, "--share", "wtf"}, errors.ExitValidation},
		{"exists", []string{"create", "alpha", env.base}, errors.ExitAlreadyExists},
		{"no manifest", []string{"create", "gamma", env.root}, errors.ExitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := env.run(tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetExitCode(err))
		})
	}
}

func TestFix(t *testing.T) {
	env := setupTestEnv(t)
	env.initBase(t)
	env.create(t, "alpha")

	stdout, _, err := env.run("fix", "alpha")
	require.NoError(t, err)
	assert.Contains(t, stdout, "is healthy")

	link := filepath.Join(env.root, "alpha", "Screenshots")
	require.NoError(t, os.Remove(link))

	stdout, _, err = env.run("fix", "alpha", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Would create")
	assert.False(t, testutil.IsSymlink(t, link))

	stdout, _, err = env.run("fix", "alpha")
	require.NoError(t, err)
	assert.Contains(t, stdout, "create-symlink")
	assert.True(t, testutil.IsSymlink(t, link))
}

func TestFix_UnknownWorkspace(t *testing.T) {
	env := setupTestEnv(t)

	_, _, err := env.run("fix", "ghost")
	assert.Equal(t, errors.ExitNotFound, errors.GetExitCode(err))
}

func TestClean(t *testing.T) {
	env := setupTestEnv(t)
	env.initBase(t)
	env.create(t, "alpha")

	logs := filepath.Join(env.root, "alpha", "Cache")
	require.NoError(t, os.MkdirAll(logs, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(logs, "old.log"), []byte("0123456789"), 0644))

	stdout, _, err := env.run("clean", "alpha", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Would remove")
	assert.FileExists(t, filepath.Join(logs, "old.log"))

	stdout, _, err = env.run("clean", "alpha")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Cleaned 1 items")
	assert.NoFileExists(t, filepath.Join(logs, "old.log"))
	assert.DirExists(t, logs)
}

func TestList(t *testing.T) {
	env := setupTestEnv(t)

	stdout, _, err := env.run("list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No workspaces found")

	env.initBase(t)
	env.create(t, "beta")
	env.create(t, "alpha")

	stdout, _, err = env.run("list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "NAME")
	assert.Contains(t, stdout, "✓ healthy")
	assert.Less(t, strings.Index(stdout, "alpha"), strings.Index(stdout, "beta"))
}

func TestPick_NonInteractive(t *testing.T) {
	env := setupTestEnv(t)
	env.initBase(t)
	env.create(t, "alpha")

	original := isTerminal
	isTerminal = func() bool { return false }
	defer func() { isTerminal = original }()

	stdout, _, err := env.run("pick")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 workspaces across 1 bases")
	assert.Contains(t, stdout, "alpha (healthy)")
}

func TestHandlePick(t *testing.T) {
	env := setupTestEnv(t)
	env.initBase(t)
	env.create(t, "alpha")

	cfg, wsPath, err := app.Default.Find("alpha")
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(wsPath, "Screenshots")))

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	logging.SetUserOutput(&buf, &buf)
	defer logging.SetUserOutput(nil, nil)

	require.NoError(t, handlePick(cmd, tui.PickerResult{Action: tui.ActionSelect, Workspace: cfg}))
	assert.Contains(t, buf.String(), wsPath)

	require.NoError(t, handlePick(cmd, tui.PickerResult{Action: tui.ActionFix, Workspace: cfg}))
	assert.True(t, testutil.IsSymlink(t, filepath.Join(wsPath, "Screenshots")))

	require.NoError(t, handlePick(cmd, tui.PickerResult{Action: tui.ActionQuit}))
}

func TestProfiles(t *testing.T) {
	env := setupTestEnv(t)

	stdout, _, err := env.run("profiles")
	require.NoError(t, err)
	assert.Contains(t, stdout, "chromie-3.3.5a (default)")
	assert.Contains(t, stdout, "vanilla-1.12")
	assert.Contains(t, stdout, "335a")
}

func TestEvents(t *testing.T) {
	env := setupTestEnv(t)
	env.initBase(t)

	stdout, _, err := env.run("events", "alpha")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No events found")

	env.create(t, "alpha")
	_, _, err = env.run("fix", "alpha")
	require.NoError(t, err)

	stdout, _, err = env.run("events", "alpha")
	require.NoError(t, err)
	assert.Contains(t, stdout, "create")
	assert.Contains(t, stdout, "hardlinks=3")
	assert.Contains(t, stdout, "repair")

	stdout, _, err = env.run("events", "alpha", "--jsonl")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(stdout, "\n"))
	assert.Contains(t, stdout, `"type":"create"`)
}

func TestConfigFile(t *testing.T) {
	env := setupTestEnv(t)
	require.NoError(t, os.WriteFile(env.config, []byte(`
[share]
screenshots = "workspace"
`), 0644))
	env.initBase(t)

	env.create(t, "alpha")
	assert.False(t, testutil.IsSymlink(t, filepath.Join(env.root, "alpha", "Screenshots")))
}

func TestFormatCounts(t *testing.T) {
	assert.Equal(t, "", formatCounts(nil))
	assert.Equal(t, "a=1 b=2", formatCounts(map[string]int{"b": 2, "a": 1, "z": 0}))
}

func TestLaunchCommand(t *testing.T) {
	got := launchCommand("/games/my ws", "/games/my ws/Wow.exe")
	assert.Equal(t, `env 'WINEPREFIX=/games/my ws/.wine' wine '/games/my ws/Wow.exe'`, got)
}
