// Package docstring normalizes loosely formatted multi-line documentation
// text into clean plain text: paragraphs are joined, mixed space/tab
// indentation is converted to a canonical tab-based scheme, and bulleted or
// numbered list structure is detected and preserved (or re-rendered with a
// configurable bullet glyph set per nesting level).
package docstring

import "fmt"

// BlockType classifies a line for block grouping during conversion.
type BlockType int

const (
	// BlockIndent is plain text (or an empty line) at some indent level.
	BlockIndent BlockType = iota + 1
	// BlockBullet is a bulleted list item.
	BlockBullet
	// BlockNumber is a numbered list item.
	BlockNumber
)

func (t BlockType) String() string {
	switch t {
	case BlockIndent:
		return "indent"
	case BlockBullet:
		return "bullet"
	case BlockNumber:
		return "number"
	}
	return fmt.Sprintf("BlockType(%d)", int(t))
}

// Line is a single source line parsed into the segments the converter works
// with. Lines are mutated in place as they move through the passes.
//
// Indent is measured in spaces after line parsing and pass 1, and in tabs
// after pass 2. Callers track the unit by pipeline stage.
type Line struct {
	Indent    int
	IsEmpty   bool
	IsList    bool   // cached: true iff Bullet or Number is non-empty
	ListLevel int    // 0-based list nesting depth, -1 outside any list
	Bullet    string // bullet glyph run, verbatim from the source
	Number    string // numbering token, verbatim from the source
	Text      string
}

// BlockType classifies the line.
func (l *Line) BlockType() BlockType {
	if !l.IsList {
		return BlockIndent
	}
	if l.Bullet != "" {
		return BlockBullet
	}
	return BlockNumber
}

// blockID is the grouping key shared by every line of one raw block.
type blockID struct {
	indent    int
	isEmpty   bool
	isList    bool
	hasBullet bool
	hasNumber bool
}

func (l *Line) blockID() blockID {
	return blockID{
		indent:    l.Indent,
		isEmpty:   l.IsEmpty,
		isList:    l.IsList,
		hasBullet: l.Bullet != "",
		hasNumber: l.Number != "",
	}
}

// unindent removes the shared indent of all non-empty lines in place and
// returns the removed amount (clamped to zero). Empty lines are ignored when
// computing the minimum but are shifted along with the rest.
func unindent(lines []*Line) int {
	common := 0
	found := false
	for _, l := range lines {
		if l.IsEmpty {
			continue
		}
		if !found || l.Indent < common {
			common = l.Indent
			found = true
		}
	}
	if !found {
		return 0
	}
	offsetIndent(lines, -common)
	if common < 0 {
		common = 0
	}
	return common
}

// offsetIndent shifts every line's indent in place, clamping at zero.
func offsetIndent(lines []*Line, offset int) {
	if offset == 0 {
		return
	}
	for _, l := range lines {
		n := l.Indent + offset
		if n < 0 {
			n = 0
		}
		l.Indent = n
	}
}
