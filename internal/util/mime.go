package util

import (
	"net/http"
	"strings"
)

// DetectMIME sniffs the content type from the first bytes of data,
// following the same algorithm browsers use.
func DetectMIME(data []byte) string {
	if len(data) > 512 {
		data = data[:512]
	}

	return http.DetectContentType(data)
}

func IsImageMIME(mimeType string) bool {
	cleaned := strings.ToLower(strings.TrimSpace(mimeType))
	return strings.HasPrefix(cleaned, "image/")
}

// IsDecodableImageMIME reports whether the avatar pipeline can decode the
// format with the registered image decoders.
func IsDecodableImageMIME(mimeType string) bool {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "image/jpeg", "image/png", "image/gif", "image/webp", "image/bmp", "image/tiff":
		return true
	default:
		return false
	}
}
