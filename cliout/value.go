package cliout

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// KindNull is the zero Value.
	KindNull Kind = iota
	// KindString holds text.
	KindString
	// KindNumber holds a float64, or an int64 when built with Int.
	KindNumber
	// KindBool holds true or false.
	KindBool
	// KindSequence holds ordered items.
	KindSequence
	// KindMapping holds named fields in insertion order.
	KindMapping
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "null"
	}
}

// Field is a named member of a mapping.
type Field struct {
	Name  string
	Value Value
}

// F is shorthand for building a Field.
func F(name string, v Value) Field {
	return Field{Name: name, Value: v}
}

// Value is a generic structured value: null, string, number, bool, a sequence
// of values, or a mapping of named fields. Mapping fields keep insertion order.
// The zero Value is null.
type Value struct {
	kind     Kind
	str      string
	num      float64
	integer  int64
	isInt    bool
	boolean  bool
	items    []Value
	fields   []Field
	typeName string
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a floating point number value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int returns an integer number value.
func Int(i int64) Value { return Value{kind: KindNumber, integer: i, isInt: true, num: float64(i)} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Sequence returns a sequence of values.
func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, items: items}
}

// Mapping returns a mapping with the given fields in order.
func Mapping(fields ...Field) Value {
	return Value{kind: KindMapping, fields: fields}
}

// Strings is shorthand for a sequence of string values.
func Strings(items ...string) Value {
	vals := make([]Value, len(items))
	for i, s := range items {
		vals[i] = String(s)
	}
	return Sequence(vals...)
}

// Named returns a copy of v carrying a type name, shown by the detailed format header.
func (v Value) Named(name string) Value {
	v.typeName = name
	return v
}

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// TypeName returns the name given with Named, or a name derived from the kind.
func (v Value) TypeName() string {
	if v.typeName != "" {
		return v.typeName
	}
	switch v.kind {
	case KindMapping:
		return "Object"
	case KindSequence:
		return "Array"
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindBool:
		return "Bool"
	default:
		return "Null"
	}
}

// Fields returns the fields of a mapping, nil otherwise.
func (v Value) Fields() []Field { return v.fields }

// Items returns the elements of a sequence, nil otherwise.
func (v Value) Items() []Value { return v.items }

// Len returns the number of fields or items; zero for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindMapping:
		return len(v.fields)
	case KindSequence:
		return len(v.items)
	default:
		return 0
	}
}

// Get returns the first field with the given name.
func (v Value) Get(name string) (Value, bool) {
	for _, f := range v.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Text returns the string payload of a string value.
func (v Value) Text() string { return v.str }

// Float returns the numeric payload of a number value.
func (v Value) Float() float64 { return v.num }

// Truth returns the payload of a bool value.
func (v Value) Truth() bool { return v.boolean }

// IsComposite reports whether v is a sequence or a mapping.
func (v Value) IsComposite() bool {
	return v.kind == KindSequence || v.kind == KindMapping
}

// String returns the direct string conversion of v.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.isInt {
			return strconv.FormatInt(v.integer, 10)
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindSequence:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMapping:
		parts := make([]string, len(v.fields))
		for i, f := range v.fields {
			parts[i] = f.Name + ": " + f.Value.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "null"
	}
}

// Interface converts v into plain Go values: map[string]any, []any, string,
// float64, int64, bool or nil. Duplicate mapping keys keep the last value.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.isInt {
			return v.integer
		}
		return v.num
	case KindBool:
		return v.boolean
	case KindSequence:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.fields))
		for _, f := range v.fields {
			out[f.Name] = f.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes v with object keys sorted.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// ValueOf converts an arbitrary serializable Go value into a Value.
//
// The object is encoded to JSON and the token stream is walked, so struct
// fields keep their declaration order (Go maps come out with sorted keys).
// The Go type name of obj is recorded for the detailed header.
func ValueOf(obj any) (Value, error) {
	if v, ok := obj.(Value); ok {
		return v, nil
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return Value{}, fmt.Errorf("failed to encode %T: %w", obj, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("failed to decode %T: %w", obj, err)
	}
	return v.Named(typeNameOf(obj)), nil
}

// ParseJSON decodes a JSON document into a Value, keeping object key order.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, fmt.Errorf("invalid JSON document: %w", err)
	}
	if dec.More() {
		return Value{}, errors.New("invalid JSON document: trailing data")
	}
	return v, nil
}

func typeNameOf(obj any) string {
	t := reflect.TypeOf(obj)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var fields []Field
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected object key %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				fields = append(fields, F(key, val))
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Mapping(fields...), nil
		case '[':
			var items []Value
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Sequence(items...), nil
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %v", t)
		}
	case string:
		return String(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return Number(f), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}
