package docstring

import (
	"fmt"
	"strings"
)

// joinRawBlocks is pass 1: collapse maximal runs of consecutive lines with
// the same indent and block type into paragraph records. List items and
// empty lines pass through one-to-one; runs of plain text are joined into a
// single line with space-separated text. The shared indent of the whole
// input is removed in place and returned.
//
// Empty lines break blocks: the first empty line after a block flushes it
// and is dropped, any further consecutive empty lines are preserved as
// individual records. Indents are still measured in spaces at this stage.
func joinRawBlocks(lines []*Line) (commonIndent int, joined []*Line) {
	commonIndent = unindent(lines)

	joined = make([]*Line, 0, len(lines))
	var pending []*Line

	activeIndent := 0
	activeBlock := BlockIndent
	afterEmpty := false

	for _, line := range lines {
		if line.IsEmpty {
			if afterEmpty {
				pending = append(pending, line)
				continue
			}
			// First empty line after a valid block: flush, drop the line.
			afterEmpty = true
			pending = flushRawBlock(pending, &joined)
			continue
		}
		if afterEmpty {
			pending = flushRawBlock(pending, &joined)
			afterEmpty = false
		}
		if line.Indent != activeIndent || line.BlockType() != activeBlock {
			pending = flushRawBlock(pending, &joined)
			activeIndent = line.Indent
			activeBlock = line.BlockType()
		}
		pending = append(pending, line)
	}
	flushRawBlock(pending, &joined)

	return commonIndent, joined
}

// flushRawBlock moves the pending block into joined and returns the emptied
// pending slice. The pending block must be homogeneous: lines of different
// block IDs in one run signal a defect in the grouping logic, not bad input.
func flushRawBlock(pending []*Line, joined *[]*Line) []*Line {
	if len(pending) == 0 {
		return pending
	}

	first := pending[0]
	id := first.blockID()
	for _, line := range pending[1:] {
		if line.blockID() != id {
			panic(fmt.Sprintf("docstring: lines of different block IDs in one pending block: %+v vs %+v", id, line.blockID()))
		}
	}

	if first.IsList || first.IsEmpty {
		// Each list item may start its own structural unit and each empty
		// line is meaningfully blank, so they are passed through as-is.
		*joined = append(*joined, pending...)
		return pending[:0]
	}

	texts := make([]string, len(pending))
	for i, line := range pending {
		texts[i] = line.Text
	}
	*joined = append(*joined, &Line{
		Indent:    first.Indent,
		ListLevel: -1,
		Text:      strings.Join(texts, " "),
	})
	return pending[:0]
}
