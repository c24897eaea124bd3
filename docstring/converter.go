package docstring

import (
	"fmt"
	"strings"
	"unicode"
)

// DefaultInBullets lists the characters recognized as bullet points by
// default. Long dashes are intentionally excluded to preserve dialogue
// lines; use DefaultInBulletsWithLongDashes to include them.
const DefaultInBullets = "-*∙•⬤⦾⦿◉◦○➲‣►▪■◼➣➢➤★"

// DefaultInBulletsWithLongDashes additionally treats em- and en-dashes as
// bullets.
const DefaultInBulletsWithLongDashes = "—–" + DefaultInBullets

// DefaultOutBullets is the default per-level output glyph sequence.
const DefaultOutBullets = "•○■►★"

// DefaultTabSize is the number of spaces one tab stands for.
const DefaultTabSize = 4

// Options configures a Converter. The zero value of TabSize, InBullets and
// OutBullets means "use the default"; an explicit empty OutBullets (the
// default) keeps the source bullet glyphs unchanged.
type Options struct {
	// IndentEmptyLines re-creates indentation on empty lines according to
	// the block they belong to. When false, empty lines are stripped bare.
	IndentEmptyLines bool

	// MinimizeIndents collapses any positive indentation delta to exactly
	// one tab. When false, deltas convert proportionally to their width.
	MinimizeIndents bool

	// ListWithIndent treats indented lines following a list item as its
	// continuation.
	ListWithIndent bool

	// ListNoIndent treats same-indent lines following a list item as its
	// continuation.
	ListNoIndent bool

	// TabSize is the space width of one tab, for both indent detection and
	// indent-delta conversion. 0 selects DefaultTabSize.
	TabSize int

	// InBullets is the set of characters recognized as bullets. Order is
	// irrelevant; hierarchy comes from indentation. "" selects
	// DefaultInBullets.
	InBullets string

	// OutBullets is the per-nesting-level sequence of output bullet glyphs,
	// cycled for deeper levels. "" keeps the original glyphs.
	OutBullets string
}

// DefaultOptions returns the documented default configuration: minimized
// indents, both continuation styles enabled, original bullet glyphs kept.
func DefaultOptions() Options {
	return Options{
		MinimizeIndents: true,
		ListWithIndent:  true,
		ListNoIndent:    true,
		TabSize:         DefaultTabSize,
		InBullets:       DefaultInBullets,
	}
}

// normalized fills in defaults and validates. The result is the canonical
// form: two option sets describing the same configuration normalize to
// equal values, which is what the Pool keys on.
func (o Options) normalized() (Options, error) {
	if o.TabSize == 0 {
		o.TabSize = DefaultTabSize
	}
	if o.TabSize < 0 {
		return Options{}, fmt.Errorf("tab size must be positive, got %d", o.TabSize)
	}
	if o.InBullets == "" {
		o.InBullets = DefaultInBullets
	}
	if _, err := newBulletSet(o.InBullets); err != nil {
		return Options{}, fmt.Errorf("in-bullets: %w", err)
	}
	if o.OutBullets != "" {
		if _, err := newBulletSet(o.OutBullets); err != nil {
			return Options{}, fmt.Errorf("out-bullets: %w", err)
		}
	}
	return o, nil
}

// Converter turns docstrings into clean text. It is immutable after
// construction and safe for concurrent use; configuration problems surface
// from New, never from Convert.
type Converter struct {
	opts       Options
	bullets    *bulletSet
	outBullets []string
	tabs       spacesToTabs
}

// New validates the options and builds a Converter.
func New(opts Options) (*Converter, error) {
	norm, err := opts.normalized()
	if err != nil {
		return nil, err
	}
	return newConverter(norm), nil
}

// newConverter assumes already-normalized options.
func newConverter(opts Options) *Converter {
	bullets, err := newBulletSet(opts.InBullets)
	if err != nil {
		panic(fmt.Sprintf("docstring: normalized options with invalid in-bullets: %v", err))
	}
	var out []string
	for _, r := range opts.OutBullets {
		out = append(out, string(r))
	}
	return &Converter{
		opts:       opts,
		bullets:    bullets,
		outBullets: out,
		tabs: spacesToTabs{
			minimizeIndents: opts.MinimizeIndents,
			tabSize:         opts.TabSize,
		},
	}
}

// Options returns the normalized configuration of the converter.
func (c *Converter) Options() Options {
	return c.opts
}

// Convert is a one-shot helper: validate the options, convert, done.
func Convert(text string, opts Options) (string, error) {
	c, err := New(opts)
	if err != nil {
		return "", err
	}
	return c.Convert(text), nil
}

// Convert normalizes a whole docstring: paragraphs joined, indentation
// converted to tabs, list structure preserved. It is a pure function of the
// input text and never fails.
func (c *Converter) Convert(text string) string {
	raw := splitLines(text)
	lines := make([]*Line, len(raw))
	for i, l := range raw {
		lines[i] = c.parseLine(l)
	}

	_, joined := joinRawBlocks(lines)
	tabbed := c.tabs.convert(joined)
	final := c.joinListContinuations(tabbed)

	out := make([]string, len(final))
	for i, line := range final {
		out[i] = c.formatLine(line)
	}
	return strings.Join(out, "\n")
}

// parseLine splits one raw line (no line breaks) into a Line record.
// Indent is measured in spaces at this stage.
func (c *Converter) parseLine(raw string) *Line {
	text := strings.TrimRightFunc(raw, unicode.IsSpace)
	if text == "" {
		// Empty lines always carry indent 0 at this stage.
		return &Line{IsEmpty: true, ListLevel: -1}
	}

	indentStr, rest := splitIndent(text)
	indent := detectIndent(indentStr, c.opts.TabSize)

	if bullet, body, ok := c.bullets.match(rest); ok {
		return &Line{Indent: indent, IsList: true, ListLevel: -1, Bullet: bullet, Text: body}
	}
	if number, body, ok := matchNumber(rest); ok {
		return &Line{Indent: indent, IsList: true, ListLevel: -1, Number: number, Text: body}
	}
	return &Line{Indent: indent, ListLevel: -1, Text: rest}
}

// formatLine renders a finalized line. Indent is in tabs by now and is
// emitted directly.
func (c *Converter) formatLine(line *Line) string {
	if line.IsEmpty && !c.opts.IndentEmptyLines {
		return ""
	}
	tabs := line.Indent
	if tabs < 0 {
		tabs = 0
	}
	indent := strings.Repeat("\t", tabs)

	marker := ""
	switch {
	case line.Bullet != "":
		marker = c.outBullet(line)
	case line.Number != "":
		marker = line.Number
	}
	if marker == "" {
		return indent + line.Text
	}
	if line.Text == "" {
		return indent + marker
	}
	return indent + marker + " " + line.Text
}

// outBullet picks the output glyph for a bullet line: the configured
// per-level glyph when OutBullets is set, the original glyph otherwise.
func (c *Converter) outBullet(line *Line) string {
	if len(c.outBullets) == 0 {
		return line.Bullet
	}
	level := line.ListLevel
	if level < 0 {
		level = 0
	}
	return c.outBullets[level%len(c.outBullets)]
}

// splitLines splits on newlines; a single trailing newline does not produce
// a trailing empty line.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
