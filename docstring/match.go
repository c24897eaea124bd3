package docstring

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// numberRe extracts the numbering token of a numbered list item from a line
// that already had its indent removed. The token is a repeatable multi-part
// prefix ("1.", "a)", "2~b)") whose last part must end with '.', ':' or ')'.
// Group 1 is the verbatim token, group 2 the remaining text.
var numberRe = regexp.MustCompile(
	`^((?:\s*(?:\d+|[a-zA-Z])[_'` + "`" + `´,.:)~—–-]+)*\s*(?:\d+|[a-zA-Z])[.:)]+)\s*(.*)$`,
)

// matchNumber returns the verbatim numbering token and trailing text of a
// numbered list item, or ok=false for anything else.
func matchNumber(s string) (number, text string, ok bool) {
	m := numberRe.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// bulletSet is the validated set of characters that introduce a bulleted
// list item.
type bulletSet struct {
	chars string
	set   map[rune]bool
}

// newBulletSet validates and builds a bullet character set. The set must be
// non-empty and must not contain whitespace, letters or digits.
func newBulletSet(chars string) (*bulletSet, error) {
	if chars == "" {
		return nil, fmt.Errorf("bullet character set is empty")
	}
	set := make(map[rune]bool, len(chars))
	for _, r := range chars {
		if unicode.IsSpace(r) {
			return nil, fmt.Errorf("bullet character set %q contains whitespace", chars)
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return nil, fmt.Errorf("bullet character set %q contains letters or digits", chars)
		}
		set[r] = true
	}
	return &bulletSet{chars: chars, set: set}, nil
}

// match extracts the bullet glyph run and trailing text of a bulleted list
// item from a line that already had its indent removed. The glyph run must be
// followed by whitespace or end-of-line: "* text" and a bare "*" are bullet
// items, "*bold*" is not.
func (b *bulletSet) match(s string) (bullet, text string, ok bool) {
	n := 0
	for _, r := range s {
		if !b.set[r] {
			break
		}
		n += utf8.RuneLen(r)
	}
	if n == 0 {
		return "", "", false
	}
	rest := s[n:]
	if rest == "" {
		return s[:n], "", true
	}
	trimmed := strings.TrimLeftFunc(rest, unicode.IsSpace)
	if len(trimmed) == len(rest) {
		// No separating whitespace after the glyph run.
		return "", "", false
	}
	return s[:n], trimmed, true
}

// splitIndent splits a right-trimmed line into its leading whitespace run
// and the rest.
func splitIndent(s string) (indent, rest string) {
	i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) })
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

// detectIndent converts a whitespace-only indent run to a space count. Tabs
// expand to tabSize. A run of non-tab whitespace followed by a later tab
// contributes only its whole-tab part: the sub-tab remainder is absorbed by
// the tab. Only the final run's remainder survives as literal spaces.
func detectIndent(indent string, tabSize int) int {
	fullTabs := 0
	pending := 0
	for indent != "" {
		i := 0
		for i < len(indent) && indent[i] == '\t' {
			fullTabs++
			i++
		}
		j := i
		for j < len(indent) && indent[j] != '\t' {
			j++
		}
		pending = utf8.RuneCountInString(indent[i:j])
		fullTabs += pending / tabSize
		pending %= tabSize
		indent = indent[j:]
	}
	return fullTabs*tabSize + pending
}
