// Package htmlmarker highlights rows of a rendered report whose first cell
// contains a keyword. The document is handled as XML and written back with
// everything else unchanged.
package htmlmarker

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/datatug/dirstats/pkg/keywords"
)

const (
	Tool    = "dir-stats-htmlmarker"
	Version = "1.0.0"

	ClassMark = "mark"
)

var ErrNotWellFormed = errors.New("document is not well-formed")

// Mark copies the document from in to out and appends the mark class to
// every tbody row that has exactly three td cells and whose first cell text
// matches words. Rows of any other shape are left alone. It returns the
// number of rows marked.
func Mark(out io.Writer, in io.Reader, words *keywords.Matcher) (int, error) {
	tokens, err := readTokens(in)
	if err != nil {
		return 0, err
	}
	marked := 0
	if words != nil && words.Len() > 0 {
		marked = markRows(tokens, words)
	}
	enc := xml.NewEncoder(out)
	for _, tok := range tokens {
		if err := enc.EncodeToken(literalNames(tok)); err != nil {
			return marked, err
		}
	}
	return marked, enc.Flush()
}

// literalNames folds the prefix of raw element and attribute names into the
// local part. The encoder would otherwise take a prefix such as "xml" or
// "xmlns" for a namespace URL and declare a new one for it.
func literalNames(tok xml.Token) xml.Token {
	switch t := tok.(type) {
	case xml.StartElement:
		t.Name = literalName(t.Name)
		attrs := make([]xml.Attr, len(t.Attr))
		for i, a := range t.Attr {
			attrs[i] = xml.Attr{Name: literalName(a.Name), Value: a.Value}
		}
		t.Attr = attrs
		return t
	case xml.EndElement:
		t.Name = literalName(t.Name)
		return t
	}
	return tok
}

func literalName(name xml.Name) xml.Name {
	if name.Space == "" {
		return name
	}
	return xml.Name{Local: name.Space + ":" + name.Local}
}

// readTokens reads the whole document and checks that tags nest, which
// xml.Decoder.RawToken leaves to the caller.
func readTokens(in io.Reader) ([]xml.Token, error) {
	dec := xml.NewDecoder(in)
	var tokens []xml.Token
	var open []xml.Name
	roots := 0
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotWellFormed, err)
		}
		line, _ := dec.InputPos()
		switch t := tok.(type) {
		case xml.StartElement:
			if len(open) == 0 {
				roots++
				if roots > 1 {
					return nil, fmt.Errorf("%w: line %d: second root element <%s>", ErrNotWellFormed, line, t.Name.Local)
				}
			}
			open = append(open, t.Name)
		case xml.EndElement:
			if len(open) == 0 || open[len(open)-1] != t.Name {
				return nil, fmt.Errorf("%w: line %d: unexpected </%s>", ErrNotWellFormed, line, t.Name.Local)
			}
			open = open[:len(open)-1]
		case xml.CharData:
			if len(open) == 0 && len(strings.TrimSpace(string(t))) > 0 {
				return nil, fmt.Errorf("%w: line %d: text outside the root element", ErrNotWellFormed, line)
			}
		}
		tokens = append(tokens, xml.CopyToken(tok))
	}
	if len(open) > 0 {
		return nil, fmt.Errorf("%w: <%s> is not closed", ErrNotWellFormed, open[len(open)-1].Local)
	}
	if roots == 0 {
		return nil, fmt.Errorf("%w: no root element", ErrNotWellFormed)
	}
	return tokens, nil
}

func markRows(tokens []xml.Token, words *keywords.Matcher) int {
	marked := 0
	bodies := 0
	for i, tok := range tokens {
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbody":
				bodies++
			case "tr":
				if bodies == 0 {
					continue
				}
				cells, first := rowCells(tokens[i+1:])
				if cells != 3 || !words.Match(first) {
					continue
				}
				tokens[i] = addClass(t, ClassMark)
				marked++
			}
		case xml.EndElement:
			if t.Name.Local == "tbody" {
				bodies--
			}
		}
	}
	return marked
}

// rowCells scans the tokens following a <tr> up to its end tag and returns
// the number of td elements and the text of the first one.
func rowCells(tokens []xml.Token) (cells int, firstText string) {
	var text strings.Builder
	depth := 0
	inFirst := false
	firstDepth := 0
	for _, tok := range tokens {
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "td" {
				cells++
				if cells == 1 {
					inFirst = true
					firstDepth = depth
				}
			}
		case xml.EndElement:
			if depth == 0 {
				return cells, text.String()
			}
			if inFirst && depth == firstDepth {
				inFirst = false
			}
			depth--
		case xml.CharData:
			if inFirst {
				text.Write(t)
			}
		}
	}
	return cells, text.String()
}

func addClass(start xml.StartElement, class string) xml.StartElement {
	attrs := make([]xml.Attr, len(start.Attr))
	copy(attrs, start.Attr)
	for i, a := range attrs {
		if a.Name.Space == "" && a.Name.Local == "class" {
			attrs[i].Value = strings.TrimSpace(a.Value + " " + class)
			start.Attr = attrs
			return start
		}
	}
	start.Attr = append(attrs, xml.Attr{Name: xml.Name{Local: "class"}, Value: class})
	return start
}
