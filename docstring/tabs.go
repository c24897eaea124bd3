package docstring

import "fmt"

// spacesToTabs is pass 2: walking the block hierarchy of the pass-1 output
// and replacing space indents with tab indents while computing each line's
// list nesting level. The walk uses an explicit stack, so input nesting
// depth is bounded by memory, not by the call stack.
type spacesToTabs struct {
	minimizeIndents bool
	tabSize         int
}

// deltaTabs reduces a positive space-indent delta to a tab count. With
// minimizeIndents any positive delta is exactly one tab; otherwise the delta
// is divided by tabSize, rounding at the 0.5 boundary and never below one.
func (s spacesToTabs) deltaTabs(spaces int) int {
	if spaces < 1 {
		return 0
	}
	if s.minimizeIndents {
		return 1
	}
	tabs := int(float64(spaces)/float64(s.tabSize) + 0.4999)
	if tabs < 1 {
		tabs = 1
	}
	return tabs
}

// stackLevel is one frame of the indentation hierarchy during the walk. The
// frame owns its pending queue: a line belongs to exactly one frame at a
// time, which is what makes the in-place indent mutation safe.
type stackLevel struct {
	indentSpacesAbs int // absolute indent from the root, in spaces
	indentSpacesRel int // offset from the parent frame, in spaces
	indentTabsAbs   int // absolute indent from the root, in tabs
	listLevel       int // current 0-based list level, -1 outside lists
	inList          BlockType // list type inherited from the ancestor chain
	blockType       BlockType // type of the line that opened this frame
	pending         []*Line
}

// subBlock is the next distinguishable chunk extracted from a frame's
// pending queue.
//
// When commonIndent is non-zero the whole queue is one indented sub-block:
// extracted holds every line (indent not yet removed) and final is false.
// When final is true the extracted chunk is flushable as-is and pending
// holds whatever remains for re-queuing.
type subBlock struct {
	commonIndent int
	final        bool
	blockType    BlockType // type of the first non-empty line at minimal indent
	extracted    []*Line
	pending      []*Line
}

// extractSubBlock splits a pending block - already stripped of shared indent
// and known to be non-trivial - into the first distinguishable chunk and the
// unclassified rest.
func extractSubBlock(pending []*Line) subBlock {
	if len(pending) == 0 {
		return subBlock{final: true, blockType: BlockIndent}
	}

	// The first non-empty line with minimal indent drives the split.
	minIndent, firstIdx := 0, -1
	for i, line := range pending {
		if line.IsEmpty {
			continue
		}
		if firstIdx < 0 || line.Indent < minIndent {
			minIndent = line.Indent
			firstIdx = i
		}
	}
	if firstIdx < 0 {
		// Only empty lines: hierarchy end, flush them all.
		return subBlock{final: true, blockType: BlockIndent, extracted: pending}
	}

	firstType := pending[firstIdx].BlockType()

	if minIndent != 0 {
		// The whole block shares an indent: one indented sub-block.
		return subBlock{commonIndent: minIndent, blockType: firstType, extracted: pending}
	}

	if firstIdx > 0 {
		// Lines precede the first zero-indent one. If they are not just
		// leading empties, they form an indented chunk to descend into
		// before the zero-indent remainder is processed.
		head := pending[:firstIdx]
		allEmpty := true
		for _, line := range head {
			if !line.IsEmpty {
				allEmpty = false
				break
			}
		}
		if !allEmpty {
			return subBlock{blockType: firstType, extracted: head, pending: pending[firstIdx:]}
		}
	}

	// General case: the maximal leading run of zero-indent same-type lines
	// (empty lines included) is final; the rest is re-queued.
	cut := len(pending)
	for i, line := range pending {
		if line.IsEmpty || (line.Indent == 0 && line.BlockType() == firstType) {
			continue
		}
		cut = i
		break
	}
	return subBlock{final: true, blockType: firstType, extracted: pending[:cut], pending: pending[cut:]}
}

// childListLevel derives a child block's list level and inherited list type
// from its parent frame. Switching list type always resets the level to zero.
// Descending within the same list type adds the tab delta of the descent, so
// a multi-tab descent counts as that many nesting levels. Plain text outside
// any list stays at -1.
func childListLevel(parent *stackLevel, childType BlockType, childTabDelta int) (int, BlockType) {
	parentType := parent.inList
	if childType != BlockIndent && childType != parentType {
		return 0, childType
	}
	if parentType == BlockIndent {
		return -1, BlockIndent
	}
	return parent.listLevel + childTabDelta, parentType
}

// convert rewrites the pass-1 output so that Indent is measured in tabs and
// ListLevel is populated, preserving line order. Lines are mutated in place;
// the returned slice is new.
func (s spacesToTabs) convert(input []*Line) []*Line {
	output := make([]*Line, 0, len(input))
	stack := []*stackLevel{{
		listLevel: -1,
		inList:    BlockIndent,
		blockType: BlockIndent,
		pending:   input,
	}}

	for len(stack) > 0 {
		active := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(active.pending) == 0 {
			continue
		}

		split := extractSubBlock(active.pending)

		if split.final {
			if split.commonIndent != 0 {
				panic(fmt.Sprintf("docstring: final chunk with non-zero common indent %d", split.commonIndent))
			}
			level, inList := childListLevel(active, split.blockType, 0)
			for _, line := range split.extracted {
				line.Indent = active.indentTabsAbs
				line.ListLevel = level
			}
			output = append(output, split.extracted...)

			if len(split.pending) > 0 {
				next := *active
				next.listLevel = level
				next.inList = inList
				next.blockType = split.blockType
				next.pending = split.pending
				stack = append(stack, &next)
			}
			continue
		}

		if split.commonIndent != 0 {
			// A shared indent was discovered: consume it from every line and
			// open a deeper frame. The in-place mutation is safe because the
			// frame just popped was the sole owner of these lines.
			offsetIndent(split.extracted, -split.commonIndent)
			tabDelta := s.deltaTabs(split.commonIndent)
			level, inList := childListLevel(active, split.blockType, tabDelta)
			stack = append(stack, &stackLevel{
				indentSpacesAbs: active.indentSpacesAbs + split.commonIndent,
				indentSpacesRel: split.commonIndent,
				indentTabsAbs:   active.indentTabsAbs + tabDelta,
				listLevel:       level,
				inList:          inList,
				blockType:       split.blockType,
				pending:         split.extracted,
			})
			continue
		}

		// Not final and no shared indent: an indented chunk precedes a
		// zero-indent line. Re-queue the remainder first, then the indented
		// chunk on top of it, to be un-indented on the next iteration.
		first := split.pending[0]
		if first.IsEmpty || first.Indent != 0 {
			panic(fmt.Sprintf("docstring: invalid split remainder, first line %+v", first))
		}
		level, inList := childListLevel(active, split.blockType, 0)
		parent := *active
		parent.listLevel = level
		parent.inList = inList
		parent.blockType = split.blockType
		parent.pending = split.pending
		stack = append(stack, &parent)

		subLevel, subInList := childListLevel(&parent, BlockIndent, 0)
		sub := *active
		sub.listLevel = subLevel
		sub.inList = subInList
		sub.blockType = BlockIndent
		sub.pending = split.extracted
		stack = append(stack, &sub)
	}

	return output
}
