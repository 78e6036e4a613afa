package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/worldline/internal/cli/config"
	"github.com/leapstack-labs/worldline/internal/cli/testutil"
)

// execute loads a configuration pointing at file with the given output
// mode, then runs cmd with args. It returns stdout and stderr.
func execute(t *testing.T, cmd *cobra.Command, file, mode string, args ...string) (string, string, error) {
	t.Helper()

	testutil.IsolateConfig(t)
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("file", "", "")
	flags.String("output", "", "")
	flags.String("color", "", "")
	if file != "" {
		require.NoError(t, flags.Set("file", file))
	}
	require.NoError(t, flags.Set("output", mode))
	require.NoError(t, flags.Set("color", "never"))
	_, err := config.LoadConfig("", flags)
	require.NoError(t, err)

	// The root command sets these; subcommands run on their own here.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if args == nil {
		args = []string{} // nil would make cobra read os.Args
	}
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCommandDefinitions(t *testing.T) {
	tests := []struct {
		cmd     *cobra.Command
		use     string
		aliases []string
		flags   []string
	}{
		{NewAddCommand(), "add <date> <description...>", []string{"a"}, []string{"context"}},
		{NewShowCommand(), "show [date [date]]", []string{"s"}, nil},
		{NewQueryCommand(), "query <text...>", []string{"q"}, nil},
		{NewExportCommand(), "export [date [date]]", nil, []string{"format", "out"}},
		{NewInitCommand(), "init [path]", nil, []string{"force", "write-config", "example"}},
		{NewDoctorCommand(), "doctor", nil, []string{"fix"}},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			assert.Equal(t, tt.aliases, tt.cmd.Aliases)
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestCommandsRequireFile(t *testing.T) {
	for _, cmd := range []*cobra.Command{NewShowCommand(), NewQueryCommand(), NewDoctorCommand()} {
		t.Run(cmd.Name(), func(t *testing.T) {
			args := []string{}
			if cmd.Name() == "query" {
				args = []string{"x"}
			}
			_, _, err := execute(t, cmd, "", "plain", args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrNoFile)
		})
	}
}

func TestMissingFileHintsInit(t *testing.T) {
	path := t.TempDir() + "/missing.txt"
	_, _, err := execute(t, NewShowCommand(), path, "plain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not read worldline file")
	assert.Contains(t, err.Error(), "worldline init")
}

func TestMalformedFileReportsLine(t *testing.T) {
	path := testutil.WriteWorldLine(t, " CE 1994       ok\n\nnot a date\n")
	_, _, err := execute(t, NewShowCommand(), path, "plain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3", "abc123", "today")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "worldline v1.2.3")
	assert.Contains(t, out.String(), "abc123")
}
