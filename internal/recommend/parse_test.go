package recommend

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Accepts(t *testing.T) {
	v, err := Parse(`{"homeRecommendations":[{"id":1}]}`)
	require.NoError(t, err)
	obj, ok := v.(map[string]any)
	require.True(t, ok)
	homes := obj["homeRecommendations"].([]any)
	assert.Equal(t, json.Number("1"), homes[0].(map[string]any)["id"])

	v, err = Parse("  [1, 2]\n")
	require.NoError(t, err)
	assert.Len(t, v, 2)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "prose", in: "not json"},
		{name: "truncated", in: `{"homeRecommendations":[{"id":1`},
		{name: "empty", in: ""},
		{name: "scalar", in: "42"},
		{name: "string", in: `"text"`},
		{name: "trailing data", in: `{"a":1} trailing`},
		{name: "two documents", in: `{"a":1}{"b":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			var perr *Error
			require.True(t, errors.As(err, &perr), "got %T", err)
			assert.Equal(t, KindParse, perr.Kind)
			assert.Equal(t, MessageParse, perr.Message)
		})
	}
}

func TestParse_DetailIsBounded(t *testing.T) {
	_, err := Parse(strings.Repeat("x", 5000))
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.LessOrEqual(t, len(perr.Detail), detailMax+3)
	assert.True(t, strings.HasPrefix(perr.Detail, "xxx"))
}
