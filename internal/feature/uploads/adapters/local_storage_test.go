package adapters

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Put(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("writes the file and returns its URL", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		storage := NewLocalStorage(dir, "/uploads/")

		url, err := storage.Put(ctx, "abc123.png", "image/png", []byte("payload"))
		require.NoError(t, err)
		assert.Equal(t, "/uploads/abc123.png", url)

		data, err := os.ReadFile(filepath.Join(dir, "abc123.png"))
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), data)
	})

	t.Run("creates the directory on demand", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "nested", "uploads")
		storage := NewLocalStorage(dir, "/uploads")

		_, err := storage.Put(ctx, "abc.png", "image/png", []byte("x"))
		require.NoError(t, err)

		_, err = os.Stat(filepath.Join(dir, "abc.png"))
		assert.NoError(t, err)
	})
}
