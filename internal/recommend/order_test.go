package recommend

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
)

func TestOrder_FeaturedFirstStable(t *testing.T) {
	in := Set{
		Homes: []Item{
			{ID: 1, Name: "a"},
			{ID: 2, Name: "b", Featured: true},
			{ID: 3, Name: "c"},
			{ID: 4, Name: "d", Featured: true},
		},
		PlacesToVisit: []Item{{ID: 2}, {ID: 1}},
		PlacesToEat:   []Item{{ID: 9}},
		Advisory:      true,
	}
	out := Order(in)

	names := make([]string, 0, len(out.Homes))
	for _, h := range out.Homes {
		names = append(names, h.Name)
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, names)
	assert.Equal(t, in.PlacesToVisit, out.PlacesToVisit)
	assert.Equal(t, in.PlacesToEat, out.PlacesToEat)
	assert.True(t, out.Advisory)

	// The input slice is not reordered in place.
	assert.Equal(t, "a", in.Homes[0].Name)
}

func TestOrder_StablePartitionProperty(t *testing.T) {
	f := func(flags []bool) bool {
		homes := make([]Item, len(flags))
		for i, fl := range flags {
			homes[i] = Item{ID: i + 1, Featured: fl}
		}
		out := Order(Set{Homes: homes}).Homes
		if len(out) != len(homes) {
			return false
		}
		seenPlain := false
		lastFeatured, lastPlain := 0, 0
		for _, it := range out {
			if it.Featured {
				if seenPlain || it.ID < lastFeatured {
					return false
				}
				lastFeatured = it.ID
				continue
			}
			seenPlain = true
			if it.ID < lastPlain {
				return false
			}
			lastPlain = it.ID
		}
		return true
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}
