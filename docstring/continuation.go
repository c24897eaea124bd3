package docstring

// joinListContinuations is pass 3: re-attach a list item's header line to
// the paragraph that logically continues it. By the time this pass runs,
// indents are in tabs and contiguous text runs are already single lines, so
// a continuation can only be the plain-text line immediately following a
// header: one tab deeper when ListWithIndent is enabled, at the header's own
// indent when ListNoIndent is enabled (the indented form wins when both
// are). Joining mirrors pass 1: single-space text concatenation.
//
// Only the first adjacent paragraph is absorbed. Pass 1 drops the single
// blank line separating a trailing continuation from the next unrelated
// paragraph, so any later adjacent text line is by construction a separate
// block and stays one (indented follow-up paragraphs of the same item
// remain their own indented lines).
func (c *Converter) joinListContinuations(lines []*Line) []*Line {
	if !c.opts.ListWithIndent && !c.opts.ListNoIndent {
		return lines
	}

	out := make([]*Line, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		out = append(out, line)
		if !line.IsList || i+1 >= len(lines) {
			continue
		}
		next := lines[i+1]
		if next.IsEmpty || next.IsList {
			continue
		}

		join := c.opts.ListWithIndent && next.Indent == line.Indent+1
		if !join {
			join = c.opts.ListNoIndent && next.Indent == line.Indent
		}
		if !join {
			continue
		}

		switch {
		case line.Text == "":
			line.Text = next.Text
		case next.Text != "":
			line.Text = line.Text + " " + next.Text
		}
		i++
	}
	return out
}
