package opt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	Name  Field[string] `json:"name"`
	Count Field[int]    `json:"count"`
}

func TestField_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		nameSet   bool
		nameNull  bool
		nameValue string
		countSet  bool
	}{
		{
			name:    "empty object leaves fields absent",
			body:    `{}`,
			nameSet: false,
		},
		{
			name:      "value present",
			body:      `{"name":"riego"}`,
			nameSet:   true,
			nameValue: "riego",
		},
		{
			name:     "explicit null",
			body:     `{"name":null}`,
			nameSet:  true,
			nameNull: true,
		},
		{
			name:      "empty string is present",
			body:      `{"name":"","count":3}`,
			nameSet:   true,
			nameValue: "",
			countSet:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p patch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))

			assert.Equal(t, tt.nameSet, p.Name.Set)
			assert.Equal(t, tt.nameNull, p.Name.Null)
			assert.Equal(t, tt.nameValue, p.Name.Value)
			assert.Equal(t, tt.countSet, p.Count.Set)
		})
	}
}

func TestField_WrongType(t *testing.T) {
	var p patch
	err := json.Unmarshal([]byte(`{"count":"many"}`), &p)
	assert.Error(t, err)
}

func TestField_Get(t *testing.T) {
	v, ok := Some(5).Get()
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	_, ok = Null[int]().Get()
	assert.False(t, ok)

	_, ok = Field[int]{}.Get()
	assert.False(t, ok)
}

func TestField_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(patch{Name: Some("poda")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"poda","count":null}`, string(out))
}
