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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindNull:   "null",
		KindBool:   "boolean",
		KindNumber: "number",
		KindString: "string",
		KindArray:  "array",
		KindObject: "object",
		Kind(99):   "unknown",
	}

	for input, expected := range tests {
		assert.Equal(t, expected, input.String())
	}
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Null().Equal(Null()))
	assert.True(t, Number(3).Equal(Number(3)))
	assert.False(t, Number(3).Equal(Number(4)))
	assert.False(t, Number(3).Equal(String("3")))
	assert.True(t, String("a").Equal(String("a")))
	assert.True(t, Bool(true).Equal(Bool(true)))
	assert.False(t, Bool(true).Equal(Bool(false)))
}

func TestValueEqualArraysAreOrdered(t *testing.T) {
	a := Array(Number(1), Number(2))
	b := Array(Number(2), Number(1))

	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(Array(Number(1), Number(2))))
}

func TestValueEqualAsSet(t *testing.T) {
	a := Array(Number(1), Number(2), Number(2))
	b := Array(Number(2), Number(1), Number(2))
	c := Array(Number(1), Number(2))

	assert.True(t, a.EqualAsSet(b))
	assert.False(t, a.EqualAsSet(c))
	// Non-arrays fall back to plain equality.
	assert.True(t, Number(1).EqualAsSet(Number(1)))
}

func TestValueEqualObjectsOrderIndependent(t *testing.T) {
	a := Object(map[string]Value{"x": Number(1), "y": String("b")})
	b := Object(map[string]Value{"y": String("b"), "x": Number(1)})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Object(map[string]Value{"x": Number(1)})))
}

func TestValueFromAny(t *testing.T) {
	v, err := FromAny(map[string]any{
		"city":  "NYC",
		"count": float64(3),
		"tags":  []any{"a", "b"},
		"flag":  true,
		"none":  nil,
	})
	require.NoError(t, err)
	require.Equal(t, KindObject, v.Kind())

	fields := v.ObjectVal()
	assert.Equal(t, "NYC", fields["city"].StringVal())
	assert.Equal(t, float64(3), fields["count"].NumberVal())
	assert.Equal(t, 2, fields["tags"].Len())
	assert.True(t, fields["flag"].BoolVal())
	assert.True(t, fields["none"].IsNull())

	_, err = FromAny(make(chan int))
	assert.Error(t, err)
}

func TestValueJSONRoundTrip(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`{"a":[1,"x",null],"b":{"c":true}}`), &v))

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var back Value
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, v.Equal(back))
}

func TestValueCloneIsDeep(t *testing.T) {
	original := Object(map[string]Value{"list": Array(Number(1))})
	clone := original.Clone()

	clone.ObjectVal()["list"] = Number(2)
	assert.Equal(t, KindArray, original.ObjectVal()["list"].Kind())
}

func TestValueLenCountsRunes(t *testing.T) {
	assert.Equal(t, 5, String("héllo").Len())
	assert.Equal(t, 2, String("日本").Len())
	assert.Equal(t, 2, Array(Number(1), Number(2)).Len())
	assert.Equal(t, 0, Null().Len())
}

func TestValueYAMLRoundTrip(t *testing.T) {
	var v Value
	require.NoError(t, yaml.Unmarshal([]byte("a: [1, x, null]\nb:\n  c: true\n"), &v))
	assert.Equal(t, KindArray, v.ObjectVal()["a"].Kind())

	data, err := yaml.Marshal(v)
	require.NoError(t, err)

	var back Value
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.True(t, v.Equal(back))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, `"hello"`, String("hello").String())
	assert.Equal(t, "null", Null().String())
	assert.Equal(t, "[1,2]", Array(Number(1), Number(2)).String())
}
