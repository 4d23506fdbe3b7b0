package convert

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// EncodeDataURL wraps raw image bytes in a base64 data URL. The MIME type is
// sniffed from the bytes so the string is self-describing.
func EncodeDataURL(b []byte) string {
	mime := http.DetectContentType(b)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b)
}

// DecodeDataURL decodes a base64 image payload. A data URL prefix, when
// present, is discarded at the first comma; a bare base64 string is accepted
// as is.
func DecodeDataURL(s string) ([]byte, error) {
	if i := strings.Index(s, ","); i >= 0 {
		s = s[i+1:]
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode base64 image: %w", err)
	}
	return b, nil
}
