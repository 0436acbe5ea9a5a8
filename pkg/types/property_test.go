package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueAccessors(t *testing.T) {
	b, err := AsBool(BoolValue(true))
	require.NoError(t, err)
	assert.True(t, b)

	i, err := AsInt(IntValue(-42))
	require.NoError(t, err)
	assert.Equal(t, int64(-42), i)

	s, err := AsText(TextValue("M3"))
	require.NoError(t, err)
	assert.Equal(t, "M3", s)
}

func TestValueAccessorMismatch(t *testing.T) {
	tests := []struct {
		name string
		call func() error
	}{
		{"int as bool", func() error { _, err := AsBool(IntValue(1)); return err }},
		{"text as int", func() error { _, err := AsInt(TextValue("1")); return err }},
		{"bool as text", func() error { _, err := AsText(BoolValue(false)); return err }},
		{"nil as int", func() error { _, err := AsInt(nil); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, ErrTypeMismatch) {
				t.Errorf("error = %v, want %v", err, ErrTypeMismatch)
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue(ValueKindInt, "-1500")
	require.NoError(t, err)
	assert.Equal(t, IntValue(-1500), v)

	v, err = ParseValue(ValueKindBool, "true")
	require.NoError(t, err)
	assert.Equal(t, BoolValue(true), v)

	v, err = ParseValue(ValueKindText, "hello")
	require.NoError(t, err)
	assert.Equal(t, TextValue("hello"), v)

	_, err = ParseValue(ValueKindInt, "wide")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestParsePropertyID(t *testing.T) {
	for _, p := range PropertyIDs() {
		got, err := ParsePropertyID(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := ParsePropertyID("widht")
	require.ErrorIs(t, err, ErrUnknownProperty)
	assert.Contains(t, err.Error(), "did you mean width?")
}

func TestDefaultPropertyMeta(t *testing.T) {
	m := DefaultPropertyMeta()
	assert.True(t, m.Settable)
	assert.Empty(t, m.Layers)
}
