// Package redaction scrubs payment details and credentials from free text
// such as review comments and confirmation emails before it is stored.
package redaction

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// IgnoreFile holds extra per-home patterns, one regular expression per line.
const IgnoreFile = ".eventignore"

// Placeholder replaces every redacted span.
const Placeholder = "[REDACTED]"

var (
	// 14 to 19 digits with optional single space or dash separators. Booking
	// ids are 13-digit millisecond timestamps and stay below the minimum.
	cardCandidate = regexp.MustCompile(`\b\d(?:[ -]?\d){13,18}\b`)

	credentials = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bcvv2?\s*[:=]?\s*\d{3,4}\b`),
		regexp.MustCompile(`(?i)\b[sr]k_(?:live|test)_[a-zA-Z0-9]+`),
		regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+(?:\.[a-zA-Z0-9_-]+)?`),
		regexp.MustCompile(`(?i)\b(?:password|passwd|pin)\s*[:=]\s*["']?\S+`),
		regexp.MustCompile(`(?i)\b(?:secret|token|api[_-]?key)\s*[:=]\s*["']?\S+`),
	}

	taggedSpan = regexp.MustCompile(`(?s)<redacted>.*?</redacted>`)
)

// Redactor applies the built-in rules followed by caller-supplied patterns.
// The zero value applies the built-in rules only.
type Redactor struct {
	extra []*regexp.Regexp
}

// New returns a Redactor with extra patterns applied after the built-ins.
func New(extra ...*regexp.Regexp) *Redactor {
	return &Redactor{extra: extra}
}

// Load builds a Redactor from home's IgnoreFile. A missing file or an empty
// home yields the built-in rules only.
func Load(home string) (*Redactor, error) {
	if home == "" {
		return New(), nil
	}
	extra, err := LoadIgnore(filepath.Join(home, IgnoreFile))
	if err != nil {
		return New(), err
	}
	return New(extra...), nil
}

// Redact returns text with sensitive spans replaced by Placeholder:
// explicit <redacted> tags first, then card numbers passing the Luhn check,
// then credentials, then the extra patterns.
func (r *Redactor) Redact(text string) string {
	text = taggedSpan.ReplaceAllString(text, Placeholder)
	text = strings.NewReplacer("<redacted>", "", "</redacted>", "").Replace(text)

	text = cardCandidate.ReplaceAllStringFunc(text, func(m string) string {
		if luhn(m) {
			return Placeholder
		}
		return m
	})
	for _, re := range credentials {
		text = re.ReplaceAllString(text, Placeholder)
	}
	if r != nil {
		for _, re := range r.extra {
			text = re.ReplaceAllString(text, Placeholder)
		}
	}
	return text
}

// Mask hides a stored secret entirely. Empty input stays empty.
func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	return Placeholder
}

// LoadIgnore compiles each non-blank line of path that is not a # comment.
// A missing file returns (nil, nil).
func LoadIgnore(path string) ([]*regexp.Regexp, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []*regexp.Regexp
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		re, err := regexp.Compile(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filepath.Base(path), n, err)
		}
		patterns = append(patterns, re)
	}
	return patterns, scanner.Err()
}

// luhn reports whether the digits in s pass the Luhn checksum.
func luhn(s string) bool {
	sum, double := 0, false
	for i := len(s) - 1; i >= 0; i-- {
		ch := s[i]
		if ch < '0' || ch > '9' {
			continue
		}
		d := int(ch - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
