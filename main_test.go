package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	// Point at a config file and map that do not exist so defaults apply
	dir := t.TempDir()
	t.Setenv("GOLF_AI_COURSE_MAP_PATH", filepath.Join(dir, "missing.png"))
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "absent.yaml")}, args...))

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestConfigCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"defaults", nil, []string{"mode: quick", "level: info", "enabled: false"}},
		{"full mode", []string{"--full"}, []string{"mode: full"}},
		{"verbose and seed", []string{"-v", "--seed", "99"}, []string{"level: debug", "seed: 99"}},
		{"viewer", []string{"--viewer", ":9000"}, []string{"enabled: true", "9000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"config"}, tt.args...)...)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestPlanCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		category string
		lie      string
	}{
		{"long drive", []string{"--ball", "320,600", "--hole", "320,60"}, "drive", "fairway"},
		{"layup", []string{"--ball", "320,200", "--hole", "320,60"}, "layup", "fairway"},
		{"putt", []string{"--ball", "320,70", "--hole", "320,60"}, "putt", "fairway"},
		{"sand lie lobs", []string{"--ball", "320,200", "--hole", "320,60", "--lie", "sand"}, "lob", "sand"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"plan", "--seed", "3"}, tt.args...)...)
			require.NoError(t, err)

			var got map[string]interface{}
			require.NoError(t, yaml.Unmarshal([]byte(out), &got))
			assert.Equal(t, tt.category, got["category"])
			assert.Equal(t, tt.lie, got["lie"])
			assert.Equal(t, "quick", got["mode"])
		})
	}
}

func TestPlanCommandErrors(t *testing.T) {
	_, err := execute(t, "plan", "--ball", "1,2,3")
	assert.ErrorContains(t, err, "--ball needs two values")

	_, err = execute(t, "plan", "--lie", "lava")
	assert.ErrorContains(t, err, "unknown terrain")
}
