package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Command creation and flag tests ---

func TestNewRootCommand_Creation(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "essentia", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.Contains(t, cmd.Version, Version)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
}

func TestNewRootCommand_PersistentFlags(t *testing.T) {
	cmd := NewRootCommand()
	pf := cmd.PersistentFlags()

	flags := []struct {
		name      string
		shorthand string
	}{
		{"config", "c"},
		{"log-level", ""},
		{"output", "o"},
		{"verbose", "v"},
		{"no-color", ""},
	}

	for _, f := range flags {
		t.Run(f.name, func(t *testing.T) {
			flag := pf.Lookup(f.name)
			require.NotNil(t, flag, "flag %q should be registered", f.name)
			if f.shorthand != "" {
				assert.Equal(t, f.shorthand, flag.Shorthand)
			}
		})
	}
}

func TestNewRootCommand_SubcommandsMounted(t *testing.T) {
	cmd := NewRootCommand()

	subNames := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		subNames = append(subNames, sub.Name())
	}

	assert.Contains(t, subNames, "run")
	assert.Contains(t, subNames, "serve-metrics")
}

func TestNewRootCommand_DefaultFlagValues(t *testing.T) {
	cmd := NewRootCommand()
	pf := cmd.PersistentFlags()

	logLevel, err := pf.GetString("log-level")
	require.NoError(t, err)
	assert.Equal(t, "info", logLevel)

	output, err := pf.GetString("output")
	require.NoError(t, err)
	assert.Equal(t, "text", output)

	verbose, err := pf.GetBool("verbose")
	require.NoError(t, err)
	assert.False(t, verbose)

	noColor, err := pf.GetBool("no-color")
	require.NoError(t, err)
	assert.False(t, noColor)
}

// --- CLIContext tests ---

func TestGetCLIContext_Success(t *testing.T) {
	cmd := &cobra.Command{}
	expected := &CLIContext{
		OutputFormat: "json",
		Verbose:      true,
		NoColor:      false,
	}

	ctx := context.WithValue(context.Background(), cliContextKey{}, expected)
	cmd.SetContext(ctx)

	got, err := GetCLIContext(cmd)
	require.NoError(t, err)
	assert.Equal(t, expected.OutputFormat, got.OutputFormat)
	assert.Equal(t, expected.Verbose, got.Verbose)
}

func TestGetCLIContext_NilContext(t *testing.T) {
	cmd := &cobra.Command{}

	got, err := GetCLIContext(cmd)
	assert.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "context")
}

func TestGetCLIContext_MissingContext(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	got, err := GetCLIContext(cmd)
	assert.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "CLIContext not found")
}

// --- PrintResult tests ---

type testData struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type testStringer struct{ val string }

func (s testStringer) String() string { return s.val }

func newCmdWithCLIContext(format string) *cobra.Command {
	cmd := &cobra.Command{}
	cliCtx := &CLIContext{OutputFormat: format}
	ctx := context.WithValue(context.Background(), cliContextKey{}, cliCtx)
	cmd.SetContext(ctx)
	return cmd
}

func TestPrintResult_JSON(t *testing.T) {
	cmd := newCmdWithCLIContext("json")
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	data := testData{Name: "aqua", Count: 42}
	err := PrintResult(cmd, data)
	require.NoError(t, err)

	var decoded testData
	err = json.Unmarshal(buf.Bytes(), &decoded)
	require.NoError(t, err)
	assert.Equal(t, "aqua", decoded.Name)
	assert.Equal(t, 42, decoded.Count)
	assert.Contains(t, buf.String(), "  ")
}

func TestPrintResult_Text(t *testing.T) {
	cmd := newCmdWithCLIContext("text")
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	err := PrintResult(cmd, "hello world")
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", buf.String())
}

func TestPrintResult_Text_Stringer(t *testing.T) {
	cmd := newCmdWithCLIContext("text")
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	err := PrintResult(cmd, testStringer{val: "custom-string"})
	require.NoError(t, err)
	assert.Equal(t, "custom-string\n", buf.String())
}

func TestPrintResult_Text_Struct(t *testing.T) {
	cmd := newCmdWithCLIContext("text")
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	data := testData{Name: "test", Count: 1}
	err := PrintResult(cmd, data)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "test")
	assert.Contains(t, buf.String(), "1")
}

func TestPrintResult_FallbackToJSON(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	data := testData{Name: "fallback", Count: 99}
	err := PrintResult(cmd, data)
	require.NoError(t, err)

	var decoded testData
	err = json.Unmarshal(buf.Bytes(), &decoded)
	require.NoError(t, err)
	assert.Equal(t, "fallback", decoded.Name)
	assert.Equal(t, 99, decoded.Count)
}

// --- PrintError / PrintSuccess tests ---

func TestPrintError_FormatsCorrectly(t *testing.T) {
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetErr(&buf)

	PrintError(cmd, assert.AnError)
	assert.Contains(t, buf.String(), "Error:")
	assert.Contains(t, buf.String(), assert.AnError.Error())
}

func TestPrintError_NilError(t *testing.T) {
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetErr(&buf)

	PrintError(cmd, nil)
	assert.Empty(t, buf.String())
}

func TestPrintSuccess_FormatsCorrectly(t *testing.T) {
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	PrintSuccess(cmd, "operation completed")
	assert.Equal(t, "OK: operation completed\n", buf.String())
}

// --- initConfig tests ---

func TestInitConfig_ExplicitPath(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "essentia.yaml")
	content := []byte("engine:\n  tick_batch_size: 2\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))

	opts := &RootOptions{ConfigPath: cfgPath}
	cfg, err := initConfig(opts)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.EqualValues(t, 2, cfg.Engine.TickBatchSize)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInitConfig_ExplicitPath_NotFound(t *testing.T) {
	opts := &RootOptions{ConfigPath: "does-not-exist.yaml"}
	_, err := initConfig(opts)
	assert.Error(t, err)
}

func TestInitConfig_FallbackDefaults(t *testing.T) {
	origDir, err := os.Getwd()
	require.NoError(t, err)
	tmpDir := t.TempDir()
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(origDir) }()

	opts := &RootOptions{ConfigPath: ""}
	cfg, err := initConfig(opts)
	require.NoError(t, err)
	assert.NotNil(t, cfg, "should return default config when no file found")
}

func TestInitConfig_DefaultSearch(t *testing.T) {
	origDir, err := os.Getwd()
	require.NoError(t, err)
	tmpDir := t.TempDir()
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(origDir) }()

	content := []byte("engine:\n  tick_batch_size: 3\n")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "essentia.yaml"), content, 0644))

	opts := &RootOptions{ConfigPath: ""}
	cfg, err := initConfig(opts)
	require.NoError(t, err)
	assert.EqualValues(t, 3, cfg.Engine.TickBatchSize)
}

// --- Execute smoke tests ---

func TestExecute_HelpFlag(t *testing.T) {
	rootCmd := NewRootCommand()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--help"})

	err := rootCmd.Execute()
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "essentia")
}

func TestExecute_VersionFlag(t *testing.T) {
	rootCmd := NewRootCommand()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"--version"})

	err := rootCmd.Execute()
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), Version)
}

// --- initLogger tests ---

func TestInitLogger_DefaultLevel(t *testing.T) {
	opts := &RootOptions{LogLevel: "info", Verbose: false}

	logger, err := initLogger(nil, opts)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestInitLogger_VerboseOverride(t *testing.T) {
	opts := &RootOptions{LogLevel: "info", Verbose: true}

	logger, err := initLogger(nil, opts)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestInitLogger_ExplicitDebug(t *testing.T) {
	opts := &RootOptions{LogLevel: "debug", Verbose: false}

	logger, err := initLogger(nil, opts)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
