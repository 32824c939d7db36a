// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package escape handles resolution of escape sequences in JSON
// string literals.
package escape

import (
	"errors"
	"fmt"

	"go4.org/mem"
)

// Decode decodes a byte slice containing the raw content of a JSON
// string literal. The input must have the enclosing double quotation
// marks already removed.
//
// Simple escape sequences are replaced by the single bytes they
// denote. Unicode escapes (\uXXXX) are preserved verbatim as six
// literal bytes: surrogate pairs are not combined, code points are
// not decoded, and the hex digits are not validated. Decode reports
// an error for an invalid or incomplete escape sequence.
func Decode(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}

	for src.Len() != 0 {
		dec = mem.Append(dec, src.SliceTo(i))

		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		b := src.At(0)
		src = src.SliceFrom(1)
		switch b {
		case '"', '\\', '/':
			dec = append(dec, b)
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			// Unicode escapes pass through undecoded.
			if src.Len() < 4 {
				return nil, errors.New("incomplete Unicode escape")
			}
			dec = append(dec, '\\', 'u')
			dec = mem.Append(dec, src.SliceTo(4))
			src = src.SliceFrom(4)
		default:
			return nil, fmt.Errorf("invalid %q after escape", b)
		}

		// Look for the next escape sequence, and if one is not found we
		// can blit the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
	}
	return dec, nil
}
