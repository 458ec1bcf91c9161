// Package validation sanitizes client-supplied values before they reach
// storage keys or headers.
package validation

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// maxFilenameLength matches the common filesystem limit.
const maxFilenameLength = 255

// unsafeChars are replaced in filenames: path separators, the Windows
// drive separator, quote and escape characters, and header-breaking
// newlines. Uploaded names end up inside object-storage keys, so none
// of these may survive.
var unsafeChars = map[rune]bool{
	'"':  true,
	'\\': true,
	'/':  true,
	':':  true,
	'\n': true,
	'\r': true,
}

// SanitizeFilename makes a client-supplied filename safe for use in an
// object key or local path. Unsafe and control characters become
// underscores, Unicode is preserved, overlong names are truncated with
// the extension kept, and empty input yields "file".
func SanitizeFilename(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))

	for _, r := range name {
		if r < 32 || r == 127 || unsafeChars[r] {
			sb.WriteRune('_')
		} else {
			sb.WriteRune(r)
		}
	}

	result := strings.TrimSpace(sb.String())
	if result == "" || strings.Trim(result, "_") == "" {
		return "file"
	}

	if len(result) > maxFilenameLength {
		result = truncatePreservingExtension(result)
	}

	return result
}

func truncatePreservingExtension(name string) string {
	ext := filepath.Ext(name)
	if len(ext) == 0 || len(ext) >= maxFilenameLength {
		return truncateToBytes(name, maxFilenameLength)
	}

	base := name[:len(name)-len(ext)]
	return truncateToBytes(base, maxFilenameLength-len(ext)) + ext
}

// truncateToBytes cuts s to at most maxBytes without splitting a
// multi-byte rune.
func truncateToBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	for maxBytes > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:maxBytes])
		if r != utf8.RuneError {
			break
		}
		maxBytes--
	}
	return s[:maxBytes]
}
