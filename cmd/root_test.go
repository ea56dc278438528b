package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/dwhetl/internal/ioload"
	"github.com/gnames/dwhetl/pkg/catalog"
	"github.com/gnames/dwhetl/pkg/config"
	"github.com/gnames/dwhetl/pkg/mode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHome points the home directory to a temporary one, so bootstrap
// does not touch the real configuration.
func testHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

// runCmd executes the root command and returns its stdout.
func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := getRootCmd()

	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

// TestGetRootCmd_Exists verifies getRootCmd returns
// a valid command.
func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "dwhetl", cmd.Name(),
		"Command name should be dwhetl")
	assert.Empty(t, cmd.Commands(), "Arguments are modes, not subcommands")
}

// TestGetRootCmd_VersionFormat verifies version
// output format.
func TestGetRootCmd_VersionFormat(t *testing.T) {
	for _, flag := range []string{"--version", "-V"} {
		t.Run(flag, func(t *testing.T) {
			cmd := getRootCmd()
			cmd.Version = "version: v1.2.3\nbuild:   abc123"

			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs([]string{flag})

			err := cmd.Execute()
			require.NoError(t, err)

			output := buf.String()
			assert.Equal(t, "version: v1.2.3\nbuild:   abc123\n", output)
			assert.NotContains(t, output, "dwhetl version",
				"Should use custom version template")
		})
	}
}

// TestGetRootCmd_HelpText verifies help text content.
func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	for _, v := range []string{
		"dwhetl", "staging", "star schema", "DWHETL_",
		"--plan", "--progress", "--check-sources", "--config",
	} {
		assert.Contains(t, helpText, v)
	}
}

// TestGetRootCmd_Settings verifies bootstrap, run function and
// error silencing.
func TestGetRootCmd_Settings(t *testing.T) {
	cmd := getRootCmd()

	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
	assert.NotNil(t, cmd.RunE)
	assert.True(t, cmd.SilenceErrors,
		"Errors should be silenced")
	assert.True(t, cmd.SilenceUsage,
		"Usage should be silenced on errors")
}

// TestGetRootCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetRootCmd_IndependentInstances(t *testing.T) {
	cmd1 := getRootCmd()
	cmd2 := getRootCmd()

	assert.NotSame(t, cmd1, cmd2,
		"Each getRootCmd call should return new instance")
}

func TestBootstrap(t *testing.T) {
	home := testHome(t)

	_, err := runCmd(t, "quit\n")
	require.NoError(t, err)

	for _, v := range []string{
		config.ConfigFilePath(home),
		config.CatalogFilePath(home),
	} {
		_, err := os.Stat(v)
		assert.NoError(t, err, v)
	}
	assert.Equal(t, home, cfg.HomeDir)
}

func TestBootstrapEnv(t *testing.T) {
	testHome(t)
	t.Setenv("DWHETL_WAREHOUSE_HOST", "example.redshift.amazonaws.com")
	t.Setenv("DWHETL_WAREHOUSE_PORT", "5440")
	t.Setenv("DWHETL_SOURCES_IAM_ROLE_ARN", "arn:aws:iam::1:role/r")

	_, err := runCmd(t, "")
	require.NoError(t, err)

	assert.Equal(t, "example.redshift.amazonaws.com", cfg.Warehouse.Host)
	assert.Equal(t, 5440, cfg.Warehouse.Port)
	assert.Equal(t, "arn:aws:iam::1:role/r", cfg.Sources.IAMRoleARN)
	assert.Equal(t, "dwhuser", cfg.Warehouse.User, "file value is kept")
}

func TestBootstrapConfigFlag(t *testing.T) {
	testHome(t)
	path := filepath.Join(t.TempDir(), "alt.yaml")
	err := os.WriteFile(path, []byte("warehouse:\n  database: other\n"), 0644)
	require.NoError(t, err)

	_, err = runCmd(t, "", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "other", cfg.Warehouse.Database)

	_, err = runCmd(t, "", "--config", filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

// Mode errors happen before any connection attempt. The default
// warehouse is unreachable, so a connection error would be a different
// error.
func TestRunArguments(t *testing.T) {
	tests := []struct {
		msg   string
		args  []string
		check func(error) bool
	}{
		{"unknown", []string{"foo"}, mode.IsInvalidArgument},
		{"upper case", []string{"TEST"}, mode.IsInvalidArgument},
		{"quit", []string{"quit"}, mode.IsInvalidArgument},
		{"two", []string{"all", "test"}, mode.IsTooManyArguments},
		{"three", []string{"all", "all", "all"}, mode.IsTooManyArguments},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			testHome(t)
			out, err := runCmd(t, "", v.args...)
			require.Error(t, err)
			assert.True(t, v.check(err))
			assert.Empty(t, out, "no banners")
		})
	}
}

func TestRunPrompt(t *testing.T) {
	tests := []struct {
		msg, stdin string
		plan       bool
	}{
		{"quit", "quit\n", false},
		{"unknown", "yes\n", false},
		{"padded", " all\n", false},
		{"empty", "", false},
		{"test", "test\n", true},
		{"all without newline", "all", true},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			testHome(t)
			out, err := runCmd(t, v.stdin, "--plan")
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, mode.PromptText+" "))
			planned := strings.TrimPrefix(out, mode.PromptText+" ")
			assert.Equal(t, v.plan, planned != "")
		})
	}
}

func TestRunPlan(t *testing.T) {
	testHome(t)

	out, err := runCmd(t, "", "all", "--plan")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[0], "staging_full")
	assert.Contains(t, lines[0], "staging_songs")
	assert.Contains(t, lines[1], "staging_events")
	assert.Contains(t, lines[2], "populate")
	assert.Contains(t, lines[2], "songplays")
	assert.Contains(t, lines[6], "time")
}

const sqliteCatalog = `
staging_full:
  - name: insert
    sql: INSERT INTO staging_events VALUES (1), (2), (3)
  - name: create
    sql: CREATE TABLE staging_events (id INTEGER)
staging_test:
  - name: insert
    sql: INSERT INTO staging_events VALUES (1)
  - name: create
    sql: CREATE TABLE staging_events (id INTEGER)
populate:
  - name: facts
    sql: CREATE TABLE facts AS SELECT id FROM staging_events
  - name: broken
    sql: "{{if .IAMRoleARN}}INSERT INTO missing VALUES (1){{else}}SELECT 1{{end}}"
`

func sqliteHome(t *testing.T) string {
	t.Helper()
	home := testHome(t)
	err := os.MkdirAll(config.ConfigDir(home), 0755)
	require.NoError(t, err)
	err = os.WriteFile(config.CatalogFilePath(home), []byte(sqliteCatalog), 0644)
	require.NoError(t, err)

	t.Setenv("DWHETL_WAREHOUSE_DRIVER", "sqlite")
	t.Setenv("DWHETL_WAREHOUSE_PATH", filepath.Join(home, "dwh.sqlite"))
	return home
}

func TestRunSQLite(t *testing.T) {
	sqliteHome(t)

	out, err := runCmd(t, "", "test")
	require.NoError(t, err)
	assert.Equal(t,
		"* Loading staging tables (test data)\n* Populating star schema\n",
		out,
	)
}

func TestRunSQLiteFailure(t *testing.T) {
	sqliteHome(t)
	t.Setenv("DWHETL_SOURCES_IAM_ROLE_ARN", "arn:aws:iam::1:role/r")

	out, err := runCmd(t, "", "all")
	require.Error(t, err)
	assert.Equal(t,
		"* Loading staging tables (all data)\n* Populating star schema\n",
		out,
	)

	se, ok := ioload.AsStatementError(err)
	require.True(t, ok)
	assert.Equal(t, catalog.Populate, se.List)
	assert.Equal(t, 1, se.Index)
	assert.Equal(t, 4, se.Step)
	assert.False(t, errors.Is(err, mode.ErrInvalidArgument))
}
