// Package textutil provides text cleanup and input validation helpers shared
// by the document loaders and the chat pipeline.
package textutil

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	whitespaceRE     = regexp.MustCompile(`[\s\v]+`)
	unsafeFilenameRE = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

	// Markup fragments commonly used for injection. Input matching any of
	// these is rejected outright rather than escaped.
	suspiciousREs = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<script.*?>.*?</script>`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)on\w+\s*=`),
		regexp.MustCompile(`(?i)data:text/html`),
	}
)

// Normalize collapses whitespace runs into single spaces, trims the ends and
// strips the control characters that PDF text extraction tends to leave
// behind.
func Normalize(text string) string {
	text = strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))
	return strings.Map(func(r rune) rune {
		if r <= 0x08 || r == 0x0b || r == 0x0c || (r >= 0x0e && r <= 0x1f) || (r >= 0x7f && r <= 0x9f) {
			return -1
		}
		return r
	}, text)
}

// ValidateInput rejects user input that is empty, too long, or carries markup
// associated with injection attempts. The returned error message is safe to
// show to the end user.
func ValidateInput(text string, maxLength int) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return errors.New("input cannot be empty")
	}
	if maxLength > 0 && utf8.RuneCountInString(trimmed) > maxLength {
		return fmt.Errorf("input is too long (max %d characters)", maxLength)
	}
	for _, re := range suspiciousREs {
		if re.MatchString(trimmed) {
			return errors.New("input contains suspicious content")
		}
	}
	return nil
}

// SanitizeFilename strips path traversal sequences and replaces every
// character outside a conservative set, so corpus filenames are safe to use
// as metadata and in log output.
func SanitizeFilename(name string) string {
	name = strings.NewReplacer("..", "", "/", "", "\\", "").Replace(name)
	name = unsafeFilenameRE.ReplaceAllString(name, "_")
	if name == "" {
		return "unknown_file"
	}
	return name
}
