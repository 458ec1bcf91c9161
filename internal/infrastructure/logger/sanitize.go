package logger

import (
	"fmt"
	"strings"
)

// escapes for the control characters most often abused in log
// injection: fake entries via newlines, misaligned output via tabs,
// truncation via null bytes.
var controlEscapes = map[rune]string{
	'\n':   "\\n",
	'\r':   "\\r",
	'\t':   "\\t",
	'\x00': "\\x00",
}

// SanitizeForLog escapes control characters in user-controlled values
// (video titles, filenames, submitted URLs) before they reach a log
// line. Unicode text passes through untouched; remaining control
// characters, DEL and ANSI escapes become hex escapes.
func SanitizeForLog(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if esc, ok := controlEscapes[r]; ok {
			b.WriteString(esc)
			continue
		}
		if r < 32 || r == 127 || r == '\x1b' {
			fmt.Fprintf(&b, "\\x%02x", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
