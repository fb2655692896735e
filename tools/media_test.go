package tools

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageURL(t *testing.T) {
	t.Run("http URLs pass through", func(t *testing.T) {
		u, err := imageURL("https://example.com/cat.png")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/cat.png", u)
	})

	t.Run("local files become data URLs", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pixel.jpg")
		require.NoError(t, os.WriteFile(path, []byte{0xFF, 0xD8, 0xFF}, 0o644))

		u, err := imageURL(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(u, "data:image/jpeg;base64,"), u)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := imageURL("/no/such/image.png")
		require.Error(t, err)
	})
}

func TestTranscriberRequiresFile(t *testing.T) {
	tr := NewAudioTranscriber(nil, "")
	_, err := callTool(t, tr, `{"file_path": "/no/such/audio.mp3"}`)
	require.Error(t, err)
}
