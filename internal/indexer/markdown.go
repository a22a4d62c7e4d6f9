package indexer

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// plaintextNormalizer strips markdown formatting from review text before it
// is embedded, so emphasis markers and link syntax do not leak into the
// vector space.
type plaintextNormalizer struct {
	parser goldmark.Markdown
}

func newPlaintextNormalizer() *plaintextNormalizer {
	return &plaintextNormalizer{
		parser: goldmark.New(),
	}
}

// Normalize returns the plain text of possibly-markdown input, with block
// boundaries collapsed to single spaces. Input without markdown comes back
// unchanged apart from whitespace normalization.
func (n *plaintextNormalizer) Normalize(input string) string {
	content := []byte(input)
	reader := text.NewReader(content)
	doc := n.parser.Parser().Parse(reader)

	var b strings.Builder
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			// Separate block-level nodes so paragraphs don't run together.
			if _, ok := node.(*ast.Paragraph); ok {
				b.WriteString(" ")
			}
			if _, ok := node.(*ast.Heading); ok {
				b.WriteString(" ")
			}
			return ast.WalkContinue, nil
		}

		switch v := node.(type) {
		case *ast.Text:
			segment := v.Segment
			b.Write(segment.Value(content))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(b.String()), " ")
}
