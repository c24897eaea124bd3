package extract

import (
	"strings"
	"testing"
)

func TestHTMLExtractor_ParagraphsAndLists(t *testing.T) {
	input := `<html><head><title>ignored</title><style>p{}</style></head><body>
<h1>Title</h1>
<p>Para one.</p>
<ul>
  <li>one</li>
  <li>two
    <ul><li>deep</li></ul>
  </li>
</ul>
<ol><li>first</li><li>second</li></ol>
</body></html>`

	e := &HTMLExtractor{}
	got, err := e.Extract(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Title\n\nPara one.\n\n- one\n- two\n  - deep\n\n1. first\n2. second"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestHTMLExtractor_SkipsChrome(t *testing.T) {
	input := `<body><nav>menu</nav><script>alert(1)</script><p>content</p><footer>bye</footer></body>`
	e := &HTMLExtractor{}
	got, err := e.Extract(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "content" {
		t.Errorf("expected only paragraph content, got %q", got)
	}
}

func TestHTMLExtractor_CollapsesWhitespace(t *testing.T) {
	input := "<body><p>spread\n   over \t lines</p></body>"
	e := &HTMLExtractor{}
	got, err := e.Extract(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "spread over lines" {
		t.Errorf("expected collapsed whitespace, got %q", got)
	}
}
