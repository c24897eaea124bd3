package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor handles Markdown files using goldmark. Headings and
// paragraphs become plain blocks; lists are re-emitted with "-" and "N."
// markers and two spaces of indentation per nesting level so the normalizer
// sees their structure.
type MarkdownExtractor struct{}

func (e *MarkdownExtractor) Extract(r io.Reader, filename string) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var blocks []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if b := renderBlock(n, src, 0); b != "" {
			blocks = append(blocks, b)
		}
	}
	return strings.Join(blocks, "\n\n"), nil
}

func renderBlock(n ast.Node, src []byte, indent int) string {
	pad := strings.Repeat("  ", indent)
	switch node := n.(type) {
	case *ast.Heading:
		return pad + inlineText(node, src)
	case *ast.List:
		return renderList(node, src, indent)
	case *ast.Blockquote:
		var parts []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if b := renderBlock(c, src, indent); b != "" {
				parts = append(parts, b)
			}
		}
		return strings.Join(parts, "\n\n")
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return rawLines(n, src, pad)
	case *ast.ThematicBreak:
		return ""
	default:
		t := inlineText(n, src)
		if t == "" {
			return ""
		}
		return pad + t
	}
}

func renderList(list *ast.List, src []byte, indent int) string {
	pad := strings.Repeat("  ", indent)
	num := list.Start
	if num == 0 {
		num = 1
	}

	var lines []string
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "-"
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d.", num)
			num++
		}

		headerDone := false
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if nested, ok := c.(*ast.List); ok {
				if b := renderList(nested, src, indent+1); b != "" {
					lines = append(lines, b)
				}
				continue
			}
			t := inlineText(c, src)
			if t == "" {
				continue
			}
			if !headerDone {
				lines = append(lines, pad+marker+" "+t)
				headerDone = true
			} else {
				lines = append(lines, pad+"  "+t)
			}
		}
		if !headerDone {
			lines = append(lines, pad+marker)
		}
	}
	return strings.Join(lines, "\n")
}

// inlineText flattens the inline content of a node into one line. Soft and
// hard line breaks become spaces; the normalizer rejoins paragraphs anyway.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.AutoLink:
			buf.Write(t.URL(src))
		default:
			if n.Type() == ast.TypeBlock && n.ChildCount() == 0 {
				lines := n.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					buf.Write(seg.Value(src))
					buf.WriteByte(' ')
				}
				return
			}
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}

// rawLines keeps a code block's source lines intact, shifted to the current
// indent.
func rawLines(n ast.Node, src []byte, pad string) string {
	var lines []string
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		line := strings.TrimRight(string(seg.Value(src)), "\n")
		lines = append(lines, pad+line)
	}
	return strings.Join(lines, "\n")
}
