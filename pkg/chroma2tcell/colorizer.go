package chroma2tcell

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/rivo/tview"
)

// ReportStyle is the chroma style used for raw report text.
const ReportStyle = "dracula"

var getStyle = styles.Get

var getFallbackStyle = func() *chroma.Style {
	return styles.Fallback
}

// Colorize tokenises text and wraps every coloured token in tview colour
// tags. Token text is escaped so brackets in it are not read as tags.
func Colorize(text, styleName string, lexer chroma.Lexer) (string, error) {
	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return "", err
	}

	style := getStyle(styleName)
	if style == nil {
		style = getFallbackStyle()
	}

	var sb strings.Builder
	for _, token := range iterator.Tokens() {
		value := tview.Escape(token.Value)
		entry := style.Get(token.Type)
		if entry.IsZero() || !entry.Colour.IsSet() {
			sb.WriteString(value)
			continue
		}

		// Map Chroma color to tview [color] tag
		colorText := entry.Colour.String()
		sb.WriteString("[" + colorText + "]")
		sb.WriteString(value)
		sb.WriteString("[-]")
	}

	return sb.String(), nil
}

// ColorizeReport colours report text with the INI lexer.
func ColorizeReport(text string, getLexer func(string) chroma.Lexer) (string, error) {
	lexer := getLexer("ini")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return Colorize(text, ReportStyle, lexer)
}
