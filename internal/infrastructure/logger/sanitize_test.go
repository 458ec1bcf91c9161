package logger

import "testing"

func TestSanitizeForLog(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain title unchanged",
			input:    "Conference Talk 2024.mp4",
			expected: "Conference Talk 2024.mp4",
		},
		{
			name:     "url unchanged",
			input:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			expected: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "newline injection escaped",
			input:    "title\nERROR: forged entry",
			expected: "title\\nERROR: forged entry",
		},
		{
			name:     "crlf escaped",
			input:    "a\r\nb",
			expected: "a\\r\\nb",
		},
		{
			name:     "tab escaped",
			input:    "a\tb",
			expected: "a\\tb",
		},
		{
			name:     "null byte escaped",
			input:    "a\x00b",
			expected: "a\\x00b",
		},
		{
			name:     "ansi escape hex encoded",
			input:    "a\x1b[31mred",
			expected: "a\\x1b[31mred",
		},
		{
			name:     "del hex encoded",
			input:    "a\x7fb",
			expected: "a\\x7fb",
		},
		{
			name:     "unicode preserved",
			input:    "día 🎬 動画",
			expected: "día 🎬 動画",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeForLog(tt.input); got != tt.expected {
				t.Errorf("SanitizeForLog(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
