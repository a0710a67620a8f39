package logging

import (
	"strings"
	"unicode"
)

const redacted = "[REDACTED]"

// redactor hides values whose key names a credential.
type redactor struct {
	words map[string]bool
}

func newRedactor() *redactor {
	return &redactor{words: map[string]bool{
		"secret": true, "password": true, "token": true,
		"key": true, "auth": true, "credential": true, "dsn": true,
	}}
}

// redact returns a copy of the key-value pairs with sensitive values replaced.
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	out := append([]any(nil), pairs...)
	for i := 0; i+1 < len(out); i += 2 {
		if key, ok := out[i].(string); ok && r.isSensitive(key) {
			out[i+1] = redacted
		}
	}
	return out
}

// isSensitive matches whole segments of the key, so "keyboard" is not a "key".
func (r *redactor) isSensitive(key string) bool {
	segments := strings.FieldsFunc(strings.ToLower(key), func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsDigit(c)
	})
	for _, s := range segments {
		if r.words[s] {
			return true
		}
	}
	return false
}
