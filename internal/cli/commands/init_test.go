package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/worldline/internal/cli/config"
	"github.com/leapstack-labs/worldline/internal/cli/testutil"
	"github.com/leapstack-labs/worldline/pkg/worldline"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name      string
		setupDir  func(t *testing.T, dir string) // setup before running
		args      []string
		wantErr   bool
		wantFiles []string
		wantCount int
	}{
		{
			name:      "init empty directory",
			args:      []string{},
			wantFiles: []string{DefaultFileName},
		},
		{
			name:      "init with config",
			args:      []string{"--write-config"},
			wantFiles: []string{DefaultFileName, "worldline.yaml"},
		},
		{
			name:      "init explicit nested path",
			args:      []string{filepath.Join("notes", "history.txt")},
			wantFiles: []string{filepath.Join("notes", "history.txt")},
		},
		{
			name:      "init example",
			args:      []string{"--example"},
			wantFiles: []string{DefaultFileName},
			wantCount: 8,
		},
		{
			name: "init existing file without force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte(" CE 1994       keep\n"), 0600))
			},
			args:    []string{},
			wantErr: true,
		},
		{
			name: "init existing config without force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "worldline.yaml"), []byte("file: history.txt\n"), 0600))
			},
			args:    []string{"--write-config"},
			wantErr: true,
		},
		{
			name: "init existing file with force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte(" CE 1994       gone\n"), 0600))
			},
			args:      []string{"--force"},
			wantFiles: []string{DefaultFileName},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			testutil.Chdir(t, dir)
			if tt.setupDir != nil {
				tt.setupDir(t, dir)
			}

			_, _, err := execute(t, NewInitCommand(), "", "plain", tt.args...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "--force")
				return
			}
			require.NoError(t, err)

			for _, f := range tt.wantFiles {
				_, err := os.Stat(filepath.Join(dir, f))
				assert.NoError(t, err, "expected %s to exist", f)
			}

			wl, err := worldline.Load(filepath.Join(dir, tt.wantFiles[0]))
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, wl.Len())
			assert.True(t, wl.IsSorted())
		})
	}
}

func TestInit_WrittenConfigLoads(t *testing.T) {
	dir := t.TempDir()
	testutil.Chdir(t, dir)

	_, _, err := execute(t, NewInitCommand(), "", "plain", "--write-config", "--example")
	require.NoError(t, err)

	config.ResetConfig()
	cfg, err := config.LoadConfig(filepath.Join(dir, "worldline.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultFileName), cfg.File)
	assert.Equal(t, "auto", cfg.OutputFormat)
	assert.Equal(t, 1, cfg.Context)
}

func TestInit_UsesConfiguredFile(t *testing.T) {
	dir := t.TempDir()
	testutil.Chdir(t, t.TempDir())
	path := filepath.Join(dir, "configured.txt")

	out, _, err := execute(t, NewInitCommand(), path, "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Created "+path)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestInit_ExistingConfigNeedsForce(t *testing.T) {
	dir := t.TempDir()
	testutil.Chdir(t, dir)
	cfgPath := filepath.Join(dir, "worldline.yaml")
	original := "file: history.txt\ncontext: 3\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(original), 0600))

	_, _, err := execute(t, NewInitCommand(), "", "plain", "--write-config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "worldline.yaml already exists")
	assert.Equal(t, original, testutil.ReadFile(t, cfgPath))
	_, err = os.Stat(filepath.Join(dir, "history.txt"))
	assert.True(t, os.IsNotExist(err), "nothing is created when init refuses")

	_, _, err = execute(t, NewInitCommand(), "", "plain", "--write-config", "--force")
	require.NoError(t, err)
	assert.NotEqual(t, original, testutil.ReadFile(t, cfgPath))
	assert.FileExists(t, filepath.Join(dir, "history.txt"))
}
