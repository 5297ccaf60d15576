package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	type config struct {
		Path string `validate:"required"`
	}

	require.NoError(t, Validate(&config{Path: "state.json"}))

	err := Validate(&config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Path")
	assert.Contains(t, err.Error(), "required")
}

func TestUnmarshalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"gtid":"sid:5","offset":2}`), 0o644))

	dest := map[string]any{}
	require.NoError(t, UnmarshalFile(path, &dest))
	assert.Equal(t, "sid:5", dest["gtid"])

	require.Error(t, UnmarshalFile(filepath.Join(t.TempDir(), "missing.json"), &dest))
}

func TestUnmarshalFileRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o644))

	dest := map[string]any{}
	require.Error(t, UnmarshalFile(path, &dest))
}

func TestTernary(t *testing.T) {
	assert.Equal(t, "a", Ternary(true, "a", "b"))
	assert.Equal(t, "b", Ternary(false, "a", "b"))
}

func TestExistInArray(t *testing.T) {
	assert.True(t, ExistInArray([]string{"a", "b"}, "b"))
	assert.False(t, ExistInArray([]string{"a", "b"}, "c"))
	assert.False(t, ExistInArray([]string{}, "a"))
}

func TestIsValidSubcommand(t *testing.T) {
	available := []*cobra.Command{{Use: "show"}, {Use: "verify"}}

	assert.True(t, IsValidSubcommand(available, "show"))
	assert.True(t, IsValidSubcommand(available, "verify"))
	assert.False(t, IsValidSubcommand(available, "drop"))
}
