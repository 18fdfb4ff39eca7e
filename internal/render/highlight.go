package render

import (
	"bytes"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/debemdeboas/inkwell/internal/theme"
)

// HighlightCode renders a code block as chroma class-based HTML. The lexer is chosen by the
// declared language, then by content analysis, then plain text. On tokenizer failure the code is
// returned escaped inside a bare pre block.
func HighlightCode(code, language string) string {
	lexer := lexers.Get(strings.TrimSpace(language))
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		renderLogger.Warn().Err(err).Str("language", language).Msg("Error tokenising code block")
		return plainCodeBlock(code)
	}

	var buf bytes.Buffer
	// Class-based output does not depend on the style.
	if err := theme.GetFormatter().Format(&buf, styles.Fallback, iterator); err != nil {
		renderLogger.Warn().Err(err).Str("language", language).Msg("Error formatting code block")
		return plainCodeBlock(code)
	}

	return `<div class="highlight">` + buf.String() + `</div>`
}

func plainCodeBlock(code string) string {
	return "<pre><code>" + html.EscapeString(code) + "</code></pre>"
}
