// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jsontree

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/creachadair/ghstat/internal/escape"

	"go4.org/mem"
)

// Parse parses data as a single JSON value and returns the root of
// the resulting tree. Whitespace is permitted before and after the
// value, but any other trailing input is an error. In case of error,
// the returned error has concrete type [*SyntaxError].
func Parse(data []byte) (Value, error) {
	p := &parser{data: data}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.data) {
		return nil, p.failf("trailing characters")
	}
	return v, nil
}

// ParseString is shorthand for Parse on the bytes of s.
func ParseString(s string) (Value, error) { return Parse([]byte(s)) }

// MustParse parses s and returns the resulting value. It panics if s
// is not valid. This is intended for static fixtures and tests.
func MustParse(s string) Value {
	v, err := ParseString(s)
	if err != nil {
		panic("jsontree: " + err.Error())
	}
	return v
}

// A SyntaxError is the concrete type of errors reported by the
// parser. Context holds at most 32 bytes of input following the point
// where the error was detected, as an aid to diagnosis.
type SyntaxError struct {
	Offset  int    // byte offset where the error was detected
	Message string // human-readable description of the problem
	Context string // excerpt of the input after the failure point
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("%s at offset %d", e.Message, e.Offset)
	}
	return fmt.Sprintf("%s at offset %d near %q", e.Message, e.Offset, e.Context)
}

// A parser is a cursor over a complete input buffer. Each production
// returns its value along with an error; the first error propagates
// through every enclosing production, so the caller of Parse never
// observes a partially-built tree.
type parser struct {
	data []byte
	pos  int
}

const errContextBytes = 32

func (p *parser) failf(msg string, args ...any) *SyntaxError {
	rest := p.data[p.pos:]
	if len(rest) > errContextBytes {
		rest = rest[:errContextBytes]
	}
	return &SyntaxError{
		Offset:  p.pos,
		Message: fmt.Sprintf(msg, args...),
		Context: string(rest),
	}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// peek returns the byte at the cursor, or 0 at end of input.
func (p *parser) peek() byte {
	if p.pos < len(p.data) {
		return p.data[p.pos]
	}
	return 0
}

func (p *parser) expect(ch byte) error {
	if p.peek() != ch {
		return p.failf("expected %q", ch)
	}
	p.pos++
	return nil
}

// parseValue consumes a single value of any type, with leading
// whitespace.
func (p *parser) parseValue() (Value, error) {
	p.skipSpace()
	switch ch := p.peek(); {
	case ch == '"':
		text, err := p.parseStringLiteral()
		if err != nil {
			return nil, err
		}
		return String(text), nil
	case ch == '{':
		return p.parseObject()
	case ch == '[':
		return p.parseArray()
	case ch == 't':
		return p.parseConstant("true", Bool(true))
	case ch == 'f':
		return p.parseConstant("false", Bool(false))
	case ch == 'n':
		return p.parseConstant("null", Null{})
	case ch == '-' || isDigit(ch):
		return p.parseNumber()
	default:
		return nil, p.failf("unexpected character")
	}
}

// parseConstant matches text exactly against the input at the cursor.
// There is no word-boundary check: for input "trueX" the constant is
// consumed and the "X" is left for the caller to reject.
func (p *parser) parseConstant(text string, v Value) (Value, error) {
	if !mem.HasPrefix(mem.B(p.data[p.pos:]), mem.S(text)) {
		return nil, p.failf("unknown constant")
	}
	p.pos += len(text)
	return v, nil
}

// parseStringLiteral consumes a quoted string and returns its decoded
// content. Scanning and escape resolution are separate passes: the
// scan locates the closing quote and validates escape characters,
// then escape.Decode rewrites the raw span.
func (p *parser) parseStringLiteral() (string, error) {
	if err := p.expect('"'); err != nil {
		return "", err
	}
	start := p.pos
	for {
		if p.pos >= len(p.data) {
			return "", p.failf("unterminated string")
		}
		switch p.data[p.pos] {
		case '"':
			raw := p.data[start:p.pos]
			p.pos++
			dec, err := escape.Decode(mem.B(raw))
			if err != nil {
				return "", p.failf("%v", err)
			}
			return string(dec), nil
		case '\\':
			if p.pos+1 >= len(p.data) {
				return "", p.failf("unterminated escape sequence")
			}
			switch p.data[p.pos+1] {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				p.pos += 2
			case 'u':
				// The four digit positions are preserved verbatim, so
				// any bytes are accepted there, even a quote, but all
				// four must be present.
				if len(p.data)-p.pos < 6 {
					return "", p.failf("incomplete Unicode escape")
				}
				p.pos += 6
			default:
				return "", p.failf("invalid escape sequence")
			}
		default:
			// Any byte other than the delimiters passes through,
			// including raw control bytes.
			p.pos++
		}
	}
}

// parseNumber matches -?digits(.digits)?([eE][-+]?digits)? and hands
// the matched substring to strconv for conversion. Values out of
// range saturate to an infinity, matching strtod; that is not treated
// as an error.
func (p *parser) parseNumber() (Value, error) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	if !p.digits() {
		return nil, p.failf("malformed number")
	}
	if p.peek() == '.' {
		p.pos++
		if !p.digits() {
			return nil, p.failf("no digits after decimal point")
		}
	}
	if ch := p.peek(); ch == 'e' || ch == 'E' {
		p.pos++
		if ch := p.peek(); ch == '-' || ch == '+' {
			p.pos++
		}
		if !p.digits() {
			return nil, p.failf("missing exponent digits")
		}
	}
	v, err := strconv.ParseFloat(string(p.data[start:p.pos]), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, p.failf("malformed number")
	}
	return Number(v), nil
}

// digits consumes a run of decimal digits and reports whether at
// least one was found.
func (p *parser) digits() bool {
	n := 0
	for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
		p.pos++
		n++
	}
	return n > 0
}

// parseArray consumes a bracketed sequence of comma-separated values.
// Precondition: the cursor is at '['.
func (p *parser) parseArray() (Value, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	arr := Array{} // empty but present, distinct from absent
	p.skipSpace()
	if p.peek() == ']' {
		p.pos++
		return arr, nil
	}
	for {
		item, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, item)
		p.skipSpace()
		if p.peek() == ',' {
			p.pos++
			continue
		}
		break
	}
	if p.peek() != ']' {
		return nil, p.failf("unterminated array")
	}
	p.pos++
	return arr, nil
}

// parseObject consumes a braced sequence of comma-separated "key":
// value members. Duplicate keys are appended, not merged.
// Precondition: the cursor is at '{'.
func (p *parser) parseObject() (Value, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	obj := Object{}
	p.skipSpace()
	if p.peek() == '}' {
		p.pos++
		return obj, nil
	}
	for {
		p.skipSpace()
		if p.peek() != '"' {
			return nil, p.failf("expected string key")
		}
		key, err := p.parseStringLiteral()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj = append(obj, &Member{Key: key, Value: value})
		p.skipSpace()
		if p.peek() == ',' {
			p.pos++
			continue
		}
		break
	}
	if p.peek() != '}' {
		return nil, p.failf("unterminated object")
	}
	p.pos++
	return obj, nil
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }
