package textutil_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"docuchat/backend/internal/textutil"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace runs", "a\n\n  b\tc", "a b c"},
		{"trims surrounding space", "  hello world  ", "hello world"},
		{"strips control characters", "he\x00llo\x1f there\x7f", "hello there"},
		{"joins wrapped lines", "first\nsecond", "first second"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textutil.Normalize(tt.in))
		})
	}
}

func TestValidateInput(t *testing.T) {
	t.Run("accepts ordinary text", func(t *testing.T) {
		assert.NoError(t, textutil.ValidateInput("What does chapter two cover?", 5000))
	})

	t.Run("rejects empty input", func(t *testing.T) {
		err := textutil.ValidateInput("", 5000)
		assert.ErrorContains(t, err, "empty")
	})

	t.Run("rejects whitespace-only input", func(t *testing.T) {
		err := textutil.ValidateInput("   \n\t ", 5000)
		assert.ErrorContains(t, err, "empty")
	})

	t.Run("rejects input over the length limit", func(t *testing.T) {
		err := textutil.ValidateInput(strings.Repeat("a", 5001), 5000)
		assert.ErrorContains(t, err, "too long")
	})

	t.Run("length limit counts runes, not bytes", func(t *testing.T) {
		assert.NoError(t, textutil.ValidateInput(strings.Repeat("é", 10), 10))
	})

	t.Run("rejects suspicious markup", func(t *testing.T) {
		cases := []string{
			"<script>alert(1)</script>",
			"please open JAVASCRIPT:void(0)",
			"img onerror = stealCookies()",
			"data:text/html;base64,PHNjcmlwdD4=",
		}
		for _, in := range cases {
			err := textutil.ValidateInput(in, 5000)
			assert.ErrorContains(t, err, "suspicious", "input: %s", in)
		}
	})
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain filename unchanged", "report.pdf", "report.pdf"},
		{"path traversal stripped", "../../etc/passwd", "etcpasswd"},
		{"backslashes stripped", `..\secret.txt`, "secret.txt"},
		{"odd characters replaced", "my file (1).pdf", "my_file__1_.pdf"},
		{"non-ascii replaced", "résumé.pdf", "r_sum_.pdf"},
		{"empty becomes placeholder", "", "unknown_file"},
		{"only separators becomes placeholder", "../", "unknown_file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textutil.SanitizeFilename(tt.in))
		})
	}
}
