// Package jsdecl reads and writes configuration declarations written as
// JavaScript modules (tailwind.config.js and friends).
//
// Only the static subset used by declarations is understood: object and
// array literals, strings, numbers, booleans, null, top-level const/let/var
// bindings, default imports, and require("name") / require("name")(options)
// plugin references. Functions, spreads, computed keys and template
// substitutions are rejected because they need a JavaScript runtime.
package jsdecl

import (
	"fmt"
	"strconv"
	"strings"
)

// PluginNameKey and PluginOptionsKey shape the value of require("name")(options).
const (
	PluginNameKey    = "name"
	PluginOptionsKey = "options"
)

// decoder holds the top-level state of one module.
type decoder struct {
	tokens   *tokenStream
	bindings map[string]any
	exported any
	found    bool
}

// Decode evaluates the static declaration exported by src.
func Decode(src []byte) (map[string]any, error) {
	d := &decoder{
		tokens:   newTokenStream(src),
		bindings: make(map[string]any),
	}

	if err := d.program(); err != nil {
		return nil, err
	}
	if !d.found {
		return nil, fmt.Errorf("no module.exports or export default declaration found")
	}

	m, ok := d.exported.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("exported declaration must be an object literal, got %s", kindName(d.exported))
	}
	return m, nil
}

func (d *decoder) program() error {
	for {
		tok, err := d.tokens.next()
		if err != nil {
			return err
		}

		switch {
		case tok.kind == kindEOF:
			return nil

		case tok.kind == kindPunct && tok.text == ";":
			continue

		case tok.kind == kindString:
			// directive prologue, e.g. "use strict"
			continue

		case isWord(tok, "const"), isWord(tok, "let"), isWord(tok, "var"):
			if err := d.declaration(); err != nil {
				return err
			}

		case isWord(tok, "import"):
			if err := d.importDeclaration(); err != nil {
				return err
			}

		case isWord(tok, "module"):
			if err := d.expectSequence(".", "exports", "="); err != nil {
				return err
			}
			if err := d.export(); err != nil {
				return err
			}

		case isWord(tok, "export"):
			if err := d.expectSequence("default"); err != nil {
				return err
			}
			if err := d.export(); err != nil {
				return err
			}

		default:
			return unexpected(tok, "a declaration or module.exports")
		}
	}
}

func (d *decoder) export() error {
	v, err := d.expr()
	if err != nil {
		return err
	}
	d.exported = v
	d.found = true
	return nil
}

// declaration parses `name = expr[, name = expr]` after const/let/var.
func (d *decoder) declaration() error {
	for {
		name, err := d.tokens.next()
		if err != nil {
			return err
		}
		if name.kind != kindWord {
			return unexpected(name, "a binding name (destructuring is not supported)")
		}
		if err := d.expectSequence("="); err != nil {
			return err
		}

		v, err := d.expr()
		if err != nil {
			return err
		}
		d.bindings[name.text] = v

		more, err := d.accept(",")
		if err != nil || !more {
			return err
		}
	}
}

// importDeclaration parses `import name from "module"` and `import "module"`.
// A default import binds the module name, the same value require() yields.
func (d *decoder) importDeclaration() error {
	tok, err := d.tokens.next()
	if err != nil {
		return err
	}
	if tok.kind == kindString {
		return nil
	}
	if tok.kind != kindWord {
		return unexpected(tok, "a default import name (named imports are not supported)")
	}

	if err := d.expectSequence("from"); err != nil {
		return err
	}
	src, err := d.tokens.next()
	if err != nil {
		return err
	}
	if src.kind != kindString {
		return unexpected(src, "a module string")
	}
	module, err := unquote(src.text)
	if err != nil {
		return fmt.Errorf("line %d: %w", src.line, err)
	}
	d.bindings[tok.text] = module
	return nil
}

// expr parses a value followed by optional `.name` member accesses.
func (d *decoder) expr() (any, error) {
	v, err := d.primary()
	if err != nil {
		return nil, err
	}

	for {
		dot, err := d.tokens.peek()
		if err != nil {
			return nil, err
		}
		if dot.kind != kindPunct || dot.text != "." {
			return v, nil
		}
		_, _ = d.tokens.next()

		prop, err := d.tokens.next()
		if err != nil {
			return nil, err
		}
		if prop.kind != kindWord {
			return nil, unexpected(prop, "a property name")
		}
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("line %d: cannot read property %q of %s", prop.line, prop.text, kindName(v))
		}
		member, ok := m[prop.text]
		if !ok {
			return nil, fmt.Errorf("line %d: property %q is not defined", prop.line, prop.text)
		}
		v = member
	}
}

func (d *decoder) primary() (any, error) {
	tok, err := d.tokens.next()
	if err != nil {
		return nil, err
	}

	switch tok.kind {
	case kindString:
		s, err := unquote(tok.text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", tok.line, err)
		}
		return s, nil

	case kindTemplate:
		s, err := unquoteTemplate(tok.text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", tok.line, err)
		}
		return s, nil

	case kindNumber:
		return parseNumber(tok)

	case kindWord:
		return d.word(tok)

	case kindPunct:
		switch tok.text {
		case "{":
			return d.object()
		case "[":
			return d.array()
		case "(":
			v, err := d.expr()
			if err != nil {
				return nil, err
			}
			return v, d.expectSequence(")")
		case "-":
			num, err := d.tokens.next()
			if err != nil {
				return nil, err
			}
			if num.kind != kindNumber {
				return nil, unexpected(num, "a number after \"-\"")
			}
			return negate(parseNumber(num))
		case "...":
			return nil, fmt.Errorf("line %d: spread syntax is not supported", tok.line)
		}
	}

	return nil, unexpected(tok, "a value")
}

func (d *decoder) word(tok token) (any, error) {
	switch tok.text {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null", "undefined":
		return nil, nil
	case "require":
		return d.require()
	case "function", "async", "class", "new":
		return nil, fmt.Errorf("line %d: %q expressions need a JavaScript runtime and are not supported", tok.line, tok.text)
	}

	next, err := d.tokens.peek()
	if err != nil {
		return nil, err
	}
	if next.kind == kindPunct && next.text == "=>" {
		return nil, fmt.Errorf("line %d: arrow functions are not supported", tok.line)
	}

	v, ok := d.bindings[tok.text]
	if !ok {
		return nil, fmt.Errorf("line %d: %s is not defined", tok.line, tok.text)
	}

	if next.kind == kindPunct && next.text == "(" {
		// calling an imported plugin module with its options
		module, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("line %d: calling %s is not supported", tok.line, tok.text)
		}
		return d.application(module)
	}
	return v, nil
}

// require parses `("name")` and an optional `(options)` application.
func (d *decoder) require() (any, error) {
	if err := d.expectSequence("("); err != nil {
		return nil, err
	}
	src, err := d.tokens.next()
	if err != nil {
		return nil, err
	}
	if src.kind != kindString {
		return nil, unexpected(src, "a module string in require()")
	}
	name, err := unquote(src.text)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", src.line, err)
	}
	if err := d.expectSequence(")"); err != nil {
		return nil, err
	}
	return d.application(name)
}

// application parses an optional `(options)` call of a plugin module.
func (d *decoder) application(name string) (any, error) {
	open, err := d.accept("(")
	if err != nil {
		return nil, err
	}
	if !open {
		return name, nil
	}

	closed, err := d.accept(")")
	if err != nil {
		return nil, err
	}
	if closed {
		return name, nil
	}

	opts, err := d.expr()
	if err != nil {
		return nil, err
	}
	if _, err := d.accept(","); err != nil {
		return nil, err
	}
	if err := d.expectSequence(")"); err != nil {
		return nil, err
	}
	return map[string]any{
		PluginNameKey:    name,
		PluginOptionsKey: opts,
	}, nil
}

func (d *decoder) object() (any, error) {
	obj := make(map[string]any)

	for {
		tok, err := d.tokens.next()
		if err != nil {
			return nil, err
		}

		var key string
		switch {
		case tok.kind == kindPunct && tok.text == "}":
			return obj, nil
		case tok.kind == kindPunct && tok.text == "[":
			return nil, fmt.Errorf("line %d: computed property names are not supported", tok.line)
		case tok.kind == kindPunct && tok.text == "...":
			return nil, fmt.Errorf("line %d: spread syntax is not supported", tok.line)
		case tok.kind == kindString:
			if key, err = unquote(tok.text); err != nil {
				return nil, fmt.Errorf("line %d: %w", tok.line, err)
			}
		case tok.kind == kindWord, tok.kind == kindNumber:
			key = tok.text
		default:
			return nil, unexpected(tok, "a property name")
		}

		sep, err := d.tokens.next()
		if err != nil {
			return nil, err
		}
		switch {
		case sep.kind == kindPunct && sep.text == ":":
			v, err := d.expr()
			if err != nil {
				return nil, err
			}
			obj[key] = v
		case sep.kind == kindPunct && (sep.text == "," || sep.text == "}") && tok.kind == kindWord:
			// shorthand property
			v, ok := d.bindings[key]
			if !ok {
				return nil, fmt.Errorf("line %d: %s is not defined", tok.line, key)
			}
			obj[key] = v
			if sep.text == "}" {
				return obj, nil
			}
			continue
		case sep.kind == kindPunct && sep.text == "(":
			return nil, fmt.Errorf("line %d: method %q is not supported", sep.line, key)
		default:
			return nil, unexpected(sep, "\":\" after property name")
		}

		end, err := d.tokens.next()
		if err != nil {
			return nil, err
		}
		if end.kind != kindPunct || (end.text != "," && end.text != "}") {
			return nil, unexpected(end, "\",\" or \"}\"")
		}
		if end.text == "}" {
			return obj, nil
		}
	}
}

func (d *decoder) array() (any, error) {
	arr := make([]any, 0)

	for {
		closed, err := d.accept("]")
		if err != nil {
			return nil, err
		}
		if closed {
			return arr, nil
		}

		v, err := d.expr()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)

		end, err := d.tokens.next()
		if err != nil {
			return nil, err
		}
		if end.kind != kindPunct || (end.text != "," && end.text != "]") {
			return nil, unexpected(end, "\",\" or \"]\"")
		}
		if end.text == "]" {
			return arr, nil
		}
	}
}

// accept consumes the next token if it is the punctuator or word text.
func (d *decoder) accept(text string) (bool, error) {
	tok, err := d.tokens.peek()
	if err != nil {
		return false, err
	}
	if tok.kind == kindEOF || tok.text != text || tok.kind == kindString {
		return false, nil
	}
	_, _ = d.tokens.next()
	return true, nil
}

func (d *decoder) expectSequence(texts ...string) error {
	for _, text := range texts {
		tok, err := d.tokens.next()
		if err != nil {
			return err
		}
		if tok.kind == kindEOF || tok.kind == kindString || tok.text != text {
			return unexpected(tok, strconv.Quote(text))
		}
	}
	return nil
}

func isWord(tok token, text string) bool {
	return tok.kind == kindWord && tok.text == text
}

func unexpected(tok token, want string) error {
	return fmt.Errorf("line %d: unexpected %s, expected %s", tok.line, tok, want)
}

func parseNumber(tok token) (any, error) {
	text := tok.text
	if strings.HasSuffix(text, "n") && !strings.HasPrefix(text, "0x") && !strings.HasPrefix(text, "0X") {
		return nil, fmt.Errorf("line %d: BigInt literal %s is not supported", tok.line, text)
	}
	if i, err := strconv.ParseInt(text, 0, 64); err == nil {
		return int(i), nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	if err != nil {
		return nil, fmt.Errorf("line %d: invalid number %s", tok.line, text)
	}
	return f, nil
}

func negate(v any, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	switch n := v.(type) {
	case int:
		return -n, nil
	case float64:
		return -n, nil
	}
	return v, nil
}

func kindName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case []any:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	default:
		return "a number"
	}
}
