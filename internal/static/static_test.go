package static

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstall(t *testing.T) {
	dir := t.TempDir()

	dest := func(rel string) (string, error) {
		return filepath.Join(dir, "dal", rel), nil
	}

	require.NoError(t, install(dest))

	icon := filepath.Join(dir, "dal", "icon.png")

	want, err := embeddedFiles.ReadFile("files/icon.png")
	require.NoError(t, err)

	got, err := os.ReadFile(icon)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// a file replaced by the user survives a second install
	require.NoError(t, os.WriteFile(icon, []byte("custom"), 0o644))
	require.NoError(t, install(dest))

	got, err = os.ReadFile(icon)
	require.NoError(t, err)
	assert.Equal(t, "custom", string(got))
}
