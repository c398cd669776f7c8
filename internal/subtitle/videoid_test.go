package subtitle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytchapters/internal/models"
)

func TestResolveVideoID_EquivalentForms(t *testing.T) {
	// 同一部影片的各種 URL 形式必須解析出同一個 ID
	urls := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/v/dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ",
		"https://www.youtube.com/watch?feature=player_embedded&v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
	}
	for _, u := range urls {
		id, err := ResolveVideoID(u)
		require.NoError(t, err, "URL: %s", u)
		assert.Equal(t, "dQw4w9WgXcQ", id, "URL: %s", u)
	}
}

func TestResolveVideoID_Invalid(t *testing.T) {
	for _, u := range []string{
		"",
		"not a url",
		"https://example.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=short",
		"https://www.youtube.com/playlist?list=PLabc",
	} {
		_, err := ResolveVideoID(u)
		require.Error(t, err, "URL: %s", u)
		assert.True(t, errors.Is(err, models.ErrInvalidSourceURL), "URL: %s", u)
	}
}
