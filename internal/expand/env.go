// Package expand substitutes ${env.KEY} expressions in configuration text.
package expand

import (
	"os"
	"strings"
	"unicode"
)

const envPrefix = "${env."

// Env replaces every ${env.KEY} in text with the value of environment
// variable KEY, or "" when unset.
func Env(text string) string {
	return EnvWith(text, os.LookupEnv)
}

// EnvWith is Env with a custom variable lookup. An expression without a
// closing brace, or whose key is not made of letters, digits and '_', is
// kept literally.
func EnvWith(text string, lookup func(key string) (string, bool)) string {
	if !strings.Contains(text, envPrefix) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for {
		start := strings.Index(text, envPrefix)
		if start < 0 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:start])
		rest := text[start+len(envPrefix):]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			b.WriteString(text[start:])
			return b.String()
		}
		key := rest[:end]
		if !isKey(key) {
			// rescan right after the prefix so nested expressions still expand
			b.WriteString(envPrefix)
			text = rest
			continue
		}
		if value, ok := lookup(key); ok {
			b.WriteString(value)
		}
		text = rest[end+1:]
	}
}

func isKey(key string) bool {
	for _, r := range key {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
