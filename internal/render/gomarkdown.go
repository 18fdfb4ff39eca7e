package render

import (
	"io"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	md_html "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const gomarkdownExtensions = parser.Tables | parser.FencedCode | parser.Autolink | parser.Strikethrough |
	parser.SpaceHeadings | parser.HeadingIDs | parser.BackslashLineBreak | parser.AutoHeadingIDs |
	parser.Footnotes | parser.OrderedListStart | parser.NoEmptyLineBeforeBlock

func renderGomarkdown(md []byte) []byte {
	opts := md_html.RendererOptions{
		Flags: md_html.CommonFlags | md_html.HrefTargetBlank | md_html.FootnoteReturnLinks,
		RenderNodeHook: func(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
			if code, ok := node.(*ast.CodeBlock); ok && entering {
				io.WriteString(w, HighlightCode(string(code.Literal), string(code.Info)))
				return ast.GoToNext, true
			}
			return ast.GoToNext, false
		},
	}

	// Parsers keep state and cannot be reused between documents.
	doc := parser.NewWithExtensions(gomarkdownExtensions).Parse(markdown.NormalizeNewlines(md))
	return markdown.Render(doc, md_html.NewRenderer(opts))
}
