package testutils

import (
	"fmt"
	stdhtml "html"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// renderHTML produces the export format of getHTML: one <br> per line.
func renderHTML(text string) string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	escaped := make([]string, len(lines))
	for i, line := range lines {
		escaped[i] = stdhtml.EscapeString(line)
	}
	return "<!DOCTYPE HTML><html><body>" + strings.Join(escaped, "<br>") + "<br></body></html>"
}

// textFromHTML extracts the plain text setHTML stores. Block elements and
// <br> end a line.
func textFromHTML(source string) (string, error) {
	doc, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return "", fmt.Errorf("HTML is malformed: %w", err)
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(strings.ReplaceAll(n.Data, "\n", ""))
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Br:
				b.WriteString("\n")
				return
			case atom.Script, atom.Style, atom.Head:
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if n.Type == html.ElementNode && isBlock(n.DataAtom) && !strings.HasSuffix(b.String(), "\n") {
			b.WriteString("\n")
		}
	}
	walk(doc)
	return b.String(), nil
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Pre, atom.Blockquote:
		return true
	}
	return false
}

func renderDiffHTML(before, after string) string {
	var b strings.Builder
	b.WriteString("<style>\n.removed {text-decoration: line-through;}\n.added {background: #afa;}\n</style>")
	if before != "" {
		b.WriteString(`<span class="removed">` + stdhtml.EscapeString(strings.TrimSuffix(before, "\n")) + "</span>")
	}
	b.WriteString(`<span class="added">` + stdhtml.EscapeString(strings.TrimSuffix(after, "\n")) + "</span><br>")
	return b.String()
}
