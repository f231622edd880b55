package jsdecl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// unquote decodes a single- or double-quoted JavaScript string literal.
func unquote(lit string) (string, error) {
	if len(lit) < 2 {
		return "", fmt.Errorf("malformed string literal %s", lit)
	}
	q := lit[0]
	if (q != '"' && q != '\'') || lit[len(lit)-1] != q {
		return "", fmt.Errorf("malformed string literal %s", lit)
	}
	return unescape(lit[1:len(lit)-1], false)
}

// unquoteTemplate decodes a template literal without substitutions.
func unquoteTemplate(lit string) (string, error) {
	if len(lit) < 2 || lit[0] != '`' || lit[len(lit)-1] != '`' {
		return "", fmt.Errorf("malformed template literal %s", lit)
	}
	return unescape(lit[1:len(lit)-1], true)
}

func unescape(body string, template bool) (string, error) {
	if !strings.Contains(body, `\`) {
		if template {
			return strings.ReplaceAll(body, "\r\n", "\n"), nil
		}
		return body, nil
	}

	var b strings.Builder
	b.Grow(len(body))

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", errors.New("unterminated escape sequence")
		}

		switch e := body[i]; e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\r':
			// line continuation, \r\n counts as one terminator
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
		case '\n':
		case 'x':
			if i+3 > len(body) {
				return "", errors.New(`short \x escape`)
			}
			r, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf(`invalid \x escape: %w`, err)
			}
			b.WriteRune(rune(r))
			i += 2
		case 'u':
			r, n, err := unicodeEscape(body[i+1:])
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += n
		default:
			// identity escape: \' \" \\ \` and any other character
			_, size := utf8.DecodeRuneInString(body[i:])
			b.WriteString(body[i : i+size])
			i += size - 1
		}
	}

	return b.String(), nil
}

// unicodeEscape decodes the part after \u and returns the bytes consumed.
func unicodeEscape(s string) (rune, int, error) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0, errors.New(`malformed \u{...} escape`)
		}
		v, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, 0, errors.New(`invalid \u{...} escape`)
		}
		return rune(v), end + 1, nil
	}

	if len(s) < 4 {
		return 0, 0, errors.New(`short \u escape`)
	}
	v, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf(`invalid \u escape: %w`, err)
	}
	r := rune(v)

	// UTF-16 surrogate pair written as two escapes
	if r >= 0xD800 && r < 0xDC00 && len(s) >= 10 && s[4] == '\\' && s[5] == 'u' {
		if lo, err := strconv.ParseUint(s[6:10], 16, 16); err == nil && lo >= 0xDC00 && lo < 0xE000 {
			return (r-0xD800)<<10 + (rune(lo) - 0xDC00) + 0x10000, 10, nil
		}
	}
	return r, 4, nil
}
