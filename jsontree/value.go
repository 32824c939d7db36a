// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jsontree defines an in-memory tree representation for JSON
// values, and a parser that constructs trees from JSON source.
//
// # Values
//
// A parsed document is a tree of Value nodes. Value is a closed
// interface: the only concrete types are Null, Bool, Number, String,
// Array, and Object. Code that consumes a Value should switch
// exhaustively over these types; there are no other implementations.
//
// Containers preserve insertion order. An Object keeps every member
// it was parsed with, including members whose keys collide; lookup by
// key returns the first match in order of appearance.
//
// # Accessors
//
// The package-level accessors (Field, Index, Path, Len, and the *Or
// extractors) are tolerant: given a nil Value, a missing key, an
// out-of-range index, or a variant other than the one requested, they
// return the caller's default instead of failing. A consequence is
// that a caller cannot distinguish a key that is absent from a key
// whose value is null or of another type; callers that need that
// distinction must inspect the tree directly via Object.Find.
package jsontree

// A Value is an arbitrary JSON value.
type Value interface{ isValue() }

// Null represents the JSON null constant.
type Null struct{}

func (Null) isValue() {}

// A Bool is a Boolean constant, true or false.
type Bool bool

func (Bool) isValue() {}

// A Number is a floating-point value.
type Number float64

func (Number) isValue() {}

// A String is a string value. Simple escape sequences have been
// resolved to the bytes they denote; Unicode escapes are preserved
// verbatim as the six literal characters of the \uXXXX sequence.
type String string

func (String) isValue() {}

// An Array is an ordered sequence of values.
type Array []Value

func (Array) isValue() {}

// Len returns the number of elements of a.
func (a Array) Len() int { return len(a) }

// An Object is an ordered collection of key-value members. Keys are
// not required to be unique; duplicate keys are kept in order of
// appearance.
type Object []*Member

func (Object) isValue() {}

// Len returns the number of members of o.
func (o Object) Len() int { return len(o) }

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field returns the value of the first member of v with the given
// key, if v is an Object having such a member. It returns nil if v is
// nil, if v is not an Object, or if no member matches.
func Field(v Value, key string) Value {
	if o, ok := v.(Object); ok {
		if m := o.Find(key); m != nil {
			return m.Value
		}
	}
	return nil
}

// Path returns the value reached from v by successive Field lookups
// on each of keys in order. It returns nil if any step is absent.
func Path(v Value, keys ...string) Value {
	for _, key := range keys {
		v = Field(v, key)
	}
	return v
}

// Len returns the number of elements of v if v is an Array, otherwise 0.
func Len(v Value) int {
	if a, ok := v.(Array); ok {
		return len(a)
	}
	return 0
}

// Index returns element i of v if v is an Array and i is in range,
// otherwise nil.
func Index(v Value, i int) Value {
	if a, ok := v.(Array); ok && i >= 0 && i < len(a) {
		return a[i]
	}
	return nil
}

// StringOr returns the content of v if v is a String, otherwise def.
func StringOr(v Value, def string) string {
	if s, ok := v.(String); ok {
		return string(s)
	}
	return def
}

// NumberOr returns the value of v if v is a Number, otherwise def.
func NumberOr(v Value, def float64) float64 {
	if n, ok := v.(Number); ok {
		return float64(n)
	}
	return def
}

// IntOr returns the value of v truncated to an int if v is a Number,
// otherwise def.
func IntOr(v Value, def int) int {
	if n, ok := v.(Number); ok {
		return int(n)
	}
	return def
}

// BoolOr returns the value of v if v is a Bool, otherwise def.
func BoolOr(v Value, def bool) bool {
	if b, ok := v.(Bool); ok {
		return bool(b)
	}
	return def
}
