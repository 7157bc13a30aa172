package util

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// GenerateETag returns a strong, quoted entity tag for content.
//
// []byte and string are hashed as is; any other value is hashed through its
// JSON encoding, or its %v form when it cannot be encoded.
func GenerateETag(content any) string {
	var data []byte
	switch v := content.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		var err error
		if data, err = json.Marshal(content); err != nil {
			data = fmt.Appendf(nil, "%v", content)
		}
	}

	sum := sha1.Sum(data)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

// ETagMatches reports whether an If-None-Match header value covers etag.
// Weak validators compare equal to their strong form.
func ETagMatches(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == strings.TrimPrefix(etag, "W/") {
			return true
		}
	}
	return false
}
