package recommend

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) any {
	t.Helper()
	v, err := Parse(s)
	require.NoError(t, err)
	return v
}

func TestNormalize_EmptyObject(t *testing.T) {
	set, err := Normalize(mustParse(t, `{}`))
	require.NoError(t, err)
	assert.NotNil(t, set.Homes)
	assert.NotNil(t, set.PlacesToVisit)
	assert.NotNil(t, set.PlacesToEat)
	assert.Empty(t, set.Homes)
	assert.False(t, set.Advisory)
}

func TestNormalize_NonObjectTopLevel(t *testing.T) {
	for _, in := range []any{[]any{}, "x", nil, true} {
		_, err := Normalize(in)
		var perr *Error
		require.True(t, errors.As(err, &perr), "input %#v", in)
		assert.Equal(t, KindParse, perr.Kind)
	}
}

func TestNormalize_SentinelDefaults(t *testing.T) {
	set, err := Normalize(mustParse(t, `{"homeRecommendations":[{"id":1,"name":"Loft"}]}`))
	require.NoError(t, err)
	require.Len(t, set.Homes, 1)
	h := set.Homes[0]
	assert.Equal(t, "Loft", h.Name)
	assert.Equal(t, Unknown, h.Address)
	assert.Equal(t, Unknown, h.Cost)
	assert.Equal(t, Unknown, h.Link)
	assert.Equal(t, "", h.Description)
	assert.False(t, h.Featured)
}

func TestNormalize_MistypedFields(t *testing.T) {
	set, err := Normalize(mustParse(t, `{"placesToEat":[{"id":1,"name":true,"address":12,"cost":null,"link":["x"],"description":false}]}`))
	require.NoError(t, err)
	require.Len(t, set.PlacesToEat, 1)
	p := set.PlacesToEat[0]
	assert.Equal(t, Unknown, p.Name)
	assert.Equal(t, Unknown, p.Address)
	assert.Equal(t, Unknown, p.Cost)
	assert.Equal(t, Unknown, p.Link)
	assert.Equal(t, "", p.Description)
}

func TestNormalize_FeaturedAlias(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "alias only", in: `{"feature":true}`, want: true},
		{name: "canonical only", in: `{"featured":true}`, want: true},
		{name: "canonical preferred", in: `{"featured":false,"feature":true}`, want: false},
		{name: "canonical preferred true", in: `{"featured":true,"feature":false}`, want: true},
		{name: "neither", in: `{}`, want: false},
		{name: "non-bool canonical falls back", in: `{"featured":"yes","feature":true}`, want: true},
		{name: "string alias ignored", in: `{"feature":"true"}`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Normalize(mustParse(t, `{"homeRecommendations":[`+tt.in+`]}`))
			require.NoError(t, err)
			require.Len(t, set.Homes, 1)
			assert.Equal(t, tt.want, set.Homes[0].Featured)
		})
	}
}

func TestNormalize_IDs(t *testing.T) {
	set, err := Normalize(mustParse(t, `{"placesToVisit":[
		{"name":"a"},
		{"id":1,"name":"b"},
		{"id":"7","name":"c"},
		{"id":7,"name":"d"},
		{"id":2.5,"name":"e"}
	]}`))
	require.NoError(t, err)
	require.Len(t, set.PlacesToVisit, 5)

	ids := make([]int, 0, 5)
	seen := map[int]bool{}
	for _, it := range set.PlacesToVisit {
		ids = append(ids, it.ID)
		assert.False(t, seen[it.ID], "duplicate id %d", it.ID)
		seen[it.ID] = true
	}
	// "a" wants position 1 but 1 is taken explicitly; "d" duplicates 7 and wants 4;
	// "e" is non-integral and wants 5.
	assert.Equal(t, []int{2, 1, 7, 4, 5}, ids)
}

func TestNormalize_SkipsNonObjectElementsAndBadArrays(t *testing.T) {
	set, err := Normalize(mustParse(t, `{"homeRecommendations":["x",{"id":1,"name":"ok"},3],"placesToEat":"none"}`))
	require.NoError(t, err)
	require.Len(t, set.Homes, 1)
	assert.Equal(t, "ok", set.Homes[0].Name)
	assert.Empty(t, set.PlacesToEat)
}

func TestNormalize_Advisory(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: `{"healthAdvisory":true}`, want: true},
		{in: `{"advisory":true}`, want: true},
		{in: `{"healthAdvisory":"true"}`, want: false},
		{in: `{}`, want: false},
	}
	for _, tt := range tests {
		set, err := Normalize(mustParse(t, tt.in))
		require.NoError(t, err)
		assert.Equal(t, tt.want, set.Advisory, tt.in)
	}
}

func TestNormalize_HomesAlias(t *testing.T) {
	set, err := Normalize(mustParse(t, `{"homes":[{"id":1,"name":"Cabin"}]}`))
	require.NoError(t, err)
	require.Len(t, set.Homes, 1)
	assert.Equal(t, "Cabin", set.Homes[0].Name)
}
