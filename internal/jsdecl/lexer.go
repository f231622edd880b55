package jsdecl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

// tokenKind is the coarse classification the declaration grammar needs.
type tokenKind int

const (
	kindEOF tokenKind = iota
	kindWord
	kindString
	kindTemplate
	kindNumber
	kindPunct
)

type token struct {
	kind tokenKind
	text string
	line int
}

func (t token) String() string {
	if t.kind == kindEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.text)
}

// tokenStream wraps the js lexer, drops trivia and keeps one token of lookahead.
type tokenStream struct {
	lexer  *js.Lexer
	line   int
	peeked *token
	err    error
}

func newTokenStream(src []byte) *tokenStream {
	return &tokenStream{
		lexer: js.NewLexer(parse.NewInputBytes(src)),
		line:  1,
	}
}

func (s *tokenStream) next() (token, error) {
	if s.peeked != nil {
		tok := *s.peeked
		s.peeked = nil
		return tok, nil
	}
	return s.read()
}

func (s *tokenStream) peek() (token, error) {
	if s.peeked != nil {
		return *s.peeked, nil
	}
	tok, err := s.read()
	if err != nil {
		return token{}, err
	}
	s.peeked = &tok
	return tok, nil
}

func (s *tokenStream) read() (token, error) {
	if s.err != nil {
		return token{}, s.err
	}

	for {
		tt, data := s.lexer.Next()
		text := string(data)

		switch tt {
		case js.ErrorToken:
			if err := s.lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				s.err = fmt.Errorf("line %d: %w", s.line, err)
				return token{}, s.err
			}
			return token{kind: kindEOF, line: s.line}, nil

		case js.WhitespaceToken, js.LineTerminatorToken, js.CommentToken, js.CommentLineTerminatorToken:
			s.line += strings.Count(text, "\n")
			continue

		case js.StringToken:
			return token{kind: kindString, text: text, line: s.line}, nil

		case js.TemplateToken:
			tok := token{kind: kindTemplate, text: text, line: s.line}
			s.line += strings.Count(text, "\n")
			return tok, nil
		}

		if strings.HasPrefix(text, "`") {
			s.err = fmt.Errorf("line %d: template literals with substitutions are not supported", s.line)
			return token{}, s.err
		}

		return token{kind: classify(text), text: text, line: s.line}, nil
	}
}

// classify sorts the remaining lexer tokens by their text. Keywords are
// compared by spelling so the grammar does not depend on keyword token types.
func classify(text string) tokenKind {
	if text == "" {
		return kindPunct
	}
	c := text[0]
	switch {
	case c >= '0' && c <= '9':
		return kindNumber
	case c == '.' && len(text) > 1 && text[1] >= '0' && text[1] <= '9':
		return kindNumber
	case c == '_' || c == '$' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80:
		return kindWord
	default:
		return kindPunct
	}
}
