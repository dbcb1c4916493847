package civicinfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAPIKey(t *testing.T) {
	dir := t.TempDir()

	t.Run("strips trailing whitespace", func(t *testing.T) {
		path := filepath.Join(dir, "secret.key")
		require.NoError(t, os.WriteFile(path, []byte("AIzaSyExample \n"), 0o600))

		key, err := ReadAPIKey(path)
		require.NoError(t, err)
		assert.Equal(t, "AIzaSyExample", key)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadAPIKey(filepath.Join(dir, "nope.key"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("blank file", func(t *testing.T) {
		path := filepath.Join(dir, "blank.key")
		require.NoError(t, os.WriteFile(path, []byte("\n\t "), 0o600))

		_, err := ReadAPIKey(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})
}
