package sitechat_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/sitechat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitter_Split(t *testing.T) {
	t.Parallel()

	t.Run("three-way split with 10% overlap", func(t *testing.T) {
		t.Parallel()

		// 300 chars: base=100, overlap=10
		text := strings.Repeat("abcdefghij", 30)
		s := sitechat.NewSplitter()

		segments := s.Split(text)
		require.Len(t, segments, 3)
		assert.Equal(t, text[0:110], segments[0])
		assert.Equal(t, text[90:210], segments[1])
		assert.Equal(t, text[190:300], segments[2])
	})

	t.Run("segments cover the whole input", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("x", 97)
		s := sitechat.NewSplitter()

		segments := s.Split(text)
		require.Len(t, segments, 3)

		var total int
		for _, seg := range segments {
			total += len(seg)
		}
		// Overlap means coverage is at least the input length.
		assert.GreaterOrEqual(t, total, len(text))
		assert.True(t, strings.HasSuffix(text, segments[len(segments)-1]))
	})

	t.Run("trims whitespace from segments", func(t *testing.T) {
		t.Parallel()

		text := "  first part here   middle part here   last part here  "
		s := sitechat.NewSplitter()

		for _, seg := range s.Split(text) {
			assert.Equal(t, strings.TrimSpace(seg), seg)
		}
	})

	t.Run("drops segments that are empty after trimming", func(t *testing.T) {
		t.Parallel()

		s := sitechat.NewSplitter()

		assert.Empty(t, s.Split(""))
		assert.Empty(t, s.Split("   \n\t  "))
	})

	t.Run("multibyte text splits on rune boundaries", func(t *testing.T) {
		t.Parallel()

		// Multibyte runes make byte offsets land mid-character.
		text := strings.Repeat("ñí informació", 10) // 130 runes, base=43, overlap=4
		runes := []rune(text)
		s := sitechat.NewSplitter()

		segments := s.Split(text)
		require.Len(t, segments, 3)
		for i, seg := range segments {
			assert.True(t, utf8.ValidString(seg), "segment %d is not valid UTF-8", i)
		}
		assert.Equal(t, strings.TrimSpace(string(runes[0:47])), segments[0])
		assert.Equal(t, strings.TrimSpace(string(runes[39:90])), segments[1])
		assert.Equal(t, strings.TrimSpace(string(runes[82:130])), segments[2])
	})

	t.Run("very short documents may yield duplicate segments", func(t *testing.T) {
		t.Parallel()

		// base=0, overlap=0: first two windows are empty, the last spans
		// the whole text.
		s := sitechat.NewSplitter()

		segments := s.Split("ab")
		require.Len(t, segments, 1)
		assert.Equal(t, "ab", segments[0])
	})

	t.Run("configurable part count", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("y", 100)
		s := sitechat.Splitter{Parts: 2, Overlap: 0.1}

		segments := s.Split(text)
		require.Len(t, segments, 2)
		assert.Equal(t, text[0:55], segments[0])
		assert.Equal(t, text[45:100], segments[1])
	})

	t.Run("zero parts falls back to default", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("z", 300)
		s := sitechat.Splitter{}

		assert.Len(t, s.Split(text), 3)
	})
}

func TestSplitter_SplitAll(t *testing.T) {
	t.Parallel()

	s := sitechat.NewSplitter()
	docs := []string{
		strings.Repeat("a", 300),
		strings.Repeat("b", 300),
	}

	segments := s.SplitAll(docs)
	require.Len(t, segments, 6)
	assert.Equal(t, strings.Repeat("a", 110), segments[0])
	assert.Equal(t, strings.Repeat("b", 110), segments[3])
}
