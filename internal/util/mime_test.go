package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectMIME(t *testing.T) {
	t.Parallel()

	pngHeader := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	require.Equal(t, "image/png", DetectMIME(pngHeader))

	jpegHeader := []byte{0xff, 0xd8, 0xff, 0xe0}
	require.Equal(t, "image/jpeg", DetectMIME(jpegHeader))

	require.Equal(t, "application/pdf", DetectMIME([]byte("%PDF-1.7")))
}

func TestIsImageMIME(t *testing.T) {
	t.Parallel()

	require.True(t, IsImageMIME("image/png"))
	require.True(t, IsImageMIME("  IMAGE/JPEG  "))
	require.False(t, IsImageMIME("application/pdf"))
	require.False(t, IsImageMIME(""))
}

func TestIsDecodableImageMIME(t *testing.T) {
	t.Parallel()

	require.True(t, IsDecodableImageMIME("image/webp"))
	require.True(t, IsDecodableImageMIME("image/bmp"))
	require.False(t, IsDecodableImageMIME("image/svg+xml"), "svg cannot be rasterized here")
	require.False(t, IsDecodableImageMIME("image/x-icon"))
}
