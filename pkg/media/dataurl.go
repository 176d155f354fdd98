package media

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

var ErrInvalidPayload = errors.New("invalid base64 payload")

// IsDataURL reports whether s is a data: URL.
func IsDataURL(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "data:")
}

// Decode accepts either a base64 data: URL or a bare base64 string and returns the bytes
// with their MIME type. For bare payloads the type is sniffed from content.
func Decode(s string) ([]byte, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, "", ErrInvalidPayload
	}
	mimeType := ""
	if IsDataURL(s) {
		header, payload, ok := strings.Cut(s[len("data:"):], ",")
		if !ok || !strings.HasSuffix(header, ";base64") {
			return nil, "", ErrInvalidPayload
		}
		mimeType = strings.TrimSuffix(header, ";base64")
		s = payload
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(s)
		if err != nil {
			return nil, "", ErrInvalidPayload
		}
	}
	if len(data) == 0 {
		return nil, "", ErrInvalidPayload
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return data, strings.ToLower(mimeType), nil
}

// DataURL encodes data as a base64 data: URL.
func DataURL(data []byte, mimeType string) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
