package strutil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// HashString returns the hex encoded SHA-256 of s.
func HashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// FirstJSONString decodes content as a JSON array and returns its first
// element when that element is a non-empty string.
func FirstJSONString(content string) (string, bool) {
	var parsed []any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return "", false
	}
	if len(parsed) == 0 {
		return "", false
	}
	text, ok := parsed[0].(string)
	if !ok || text == "" {
		return "", false
	}
	return text, true
}

// EscapeJSONString returns s escaped for use inside a JSON string literal,
// without the surrounding quotes.
func EscapeJSONString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return s
	}
	return string(b[1 : len(b)-1])
}

// EmbedURL rewrites YouTube watch page links into their embeddable form.
func EmbedURL(url string) string {
	switch {
	case strings.Contains(url, "youtube.com/watch?v="):
		return strings.Replace(url, "youtube.com/watch?v=", "youtube.com/embed/", 1)
	case strings.Contains(url, "youtu.be/"):
		return strings.Replace(url, "youtu.be/", "youtube.com/embed/", 1)
	}
	return url
}
