//
// Tencent is pleased to support the open source community by making toolscore-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// toolscore-go is licensed under the Apache License Version 2.0.
//
//

package callset

import (
	"encoding/json"
	"fmt"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Kind identifies the JSON type carried by a Value.
type Kind int

const (
	// KindNull represents the JSON null value.
	KindNull Kind = iota
	// KindBool represents a JSON boolean.
	KindBool
	// KindNumber represents a JSON number.
	KindNumber
	// KindString represents a JSON string.
	KindString
	// KindArray represents a JSON array.
	KindArray
	// KindObject represents a JSON object.
	KindObject
)

// String returns the JSON type name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "null"
	}
}

// Value is a closed tagged variant over JSON-like argument values.
// Type classification is a tag comparison rather than runtime type inspection.
// The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  map[string]Value
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array Value holding the given items in order.
func Array(items ...Value) Value {
	return Value{kind: KindArray, arr: items}
}

// Object returns an object Value holding the given fields.
func Object(fields map[string]Value) Value {
	return Value{kind: KindObject, obj: fields}
}

// Kind returns the JSON type tag of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// BoolVal returns the boolean payload. Valid only when Kind is KindBool.
func (v Value) BoolVal() bool { return v.b }

// NumberVal returns the numeric payload. Valid only when Kind is KindNumber.
func (v Value) NumberVal() float64 { return v.n }

// StringVal returns the string payload. Valid only when Kind is KindString.
func (v Value) StringVal() string { return v.s }

// ArrayVal returns the array payload. Valid only when Kind is KindArray.
func (v Value) ArrayVal() []Value { return v.arr }

// ObjectVal returns the object payload. Valid only when Kind is KindObject.
func (v Value) ObjectVal() map[string]Value { return v.obj }

// Len returns the element count for arrays, field count for objects,
// and rune count for strings.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	case KindString:
		return utf8.RuneCountInString(v.s)
	default:
		return 0
	}
}

// Equal reports deep value equality. Objects compare order-independently,
// arrays compare element by element in order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.n == other.n
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, val := range v.obj {
			otherVal, ok := other.obj[k]
			if !ok || !val.Equal(otherVal) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// EqualAsSet reports multiset equality for arrays, ignoring element order.
// Non-array values fall back to Equal.
func (v Value) EqualAsSet(other Value) bool {
	if v.kind != KindArray || other.kind != KindArray {
		return v.Equal(other)
	}
	if len(v.arr) != len(other.arr) {
		return false
	}
	used := make([]bool, len(other.arr))
	for _, item := range v.arr {
		found := false
		for j, otherItem := range other.arr {
			if used[j] {
				continue
			}
			if item.Equal(otherItem) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the value.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		arr := make([]Value, len(v.arr))
		for i := range v.arr {
			arr[i] = v.arr[i].Clone()
		}
		return Value{kind: KindArray, arr: arr}
	case KindObject:
		obj := make(map[string]Value, len(v.obj))
		for k, val := range v.obj {
			obj[k] = val.Clone()
		}
		return Value{kind: KindObject, obj: obj}
	default:
		return v
	}
}

// FromAny converts a decoded JSON value (as produced by encoding/json into any)
// into a Value. Unsupported Go types yield an error.
func FromAny(raw any) (Value, error) {
	switch val := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(val), nil
	case float64:
		return Number(val), nil
	case int:
		return Number(float64(val)), nil
	case int64:
		return Number(float64(val)), nil
	case json.Number:
		n, err := val.Float64()
		if err != nil {
			return Null(), fmt.Errorf("convert number %q: %w", val.String(), err)
		}
		return Number(n), nil
	case string:
		return String(val), nil
	case []any:
		items := make([]Value, 0, len(val))
		for i, item := range val {
			converted, err := FromAny(item)
			if err != nil {
				return Null(), fmt.Errorf("convert array item %d: %w", i, err)
			}
			items = append(items, converted)
		}
		return Array(items...), nil
	case map[string]any:
		fields := make(map[string]Value, len(val))
		for k, item := range val {
			converted, err := FromAny(item)
			if err != nil {
				return Null(), fmt.Errorf("convert field %s: %w", k, err)
			}
			fields[k] = converted
		}
		return Object(fields), nil
	default:
		return Null(), fmt.Errorf("unsupported value type %T", raw)
	}
}

// ToAny converts the value back to the encoding/json representation.
func (v Value) ToAny() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindArray:
		items := make([]any, len(v.arr))
		for i := range v.arr {
			items[i] = v.arr[i].ToAny()
		}
		return items
	case KindObject:
		fields := make(map[string]any, len(v.obj))
		for k, val := range v.obj {
			fields[k] = val.ToAny()
		}
		return fields
	default:
		return nil
	}
}

// MarshalJSON encodes the value as plain JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToAny())
}

// UnmarshalJSON decodes plain JSON into the value.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal value: %w", err)
	}
	converted, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = converted
	return nil
}

// MarshalYAML encodes the value as its plain representation.
func (v Value) MarshalYAML() (any, error) {
	return v.ToAny(), nil
}

// UnmarshalYAML decodes a YAML node into the value, so schemas loaded from
// config files can carry enum rules.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("unmarshal value: %w", err)
	}
	converted, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = converted
	return nil
}

// String renders the value as compact JSON for messages and logs.
func (v Value) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<invalid value: %v>", err)
	}
	return string(data)
}

// canonicalAppend writes a deterministic rendering of the value used for
// fingerprinting. Object fields are emitted in sorted key order.
func (v Value) canonicalAppend(dst []byte) []byte {
	switch v.kind {
	case KindObject:
		keys := make([]string, 0, len(v.obj))
		for k := range v.obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		dst = append(dst, '{')
		for i, k := range keys {
			if i > 0 {
				dst = append(dst, ',')
			}
			keyData, _ := json.Marshal(k)
			dst = append(dst, keyData...)
			dst = append(dst, ':')
			dst = v.obj[k].canonicalAppend(dst)
		}
		return append(dst, '}')
	case KindArray:
		dst = append(dst, '[')
		for i := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = v.arr[i].canonicalAppend(dst)
		}
		return append(dst, ']')
	default:
		data, _ := v.MarshalJSON()
		return append(dst, data...)
	}
}
