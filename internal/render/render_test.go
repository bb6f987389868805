package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shpitdev/air-assist/internal/recommend"
)

func TestSentinelText(t *testing.T) {
	assert.Equal(t, "Address not available", Address(recommend.Unknown))
	assert.Equal(t, "12 Rue Jacob", Address("12 Rue Jacob"))
	assert.Equal(t, "Cost not available", Cost(recommend.Unknown))
	assert.Equal(t, "Cost not available", Cost(""))
	assert.Equal(t, "", Link(recommend.Unknown))
	assert.Equal(t, "https://www.louvre.fr", Link("https://www.louvre.fr"))
}

func TestRenderer_PlainSet(t *testing.T) {
	var buf bytes.Buffer
	err := New(&buf, false).Set(recommend.Set{
		Homes: []recommend.Item{
			{ID: 2, Name: "Le Marais Loft", Address: recommend.Unknown, Cost: "€220/night", Link: "https://example.com/loft", Featured: true},
			{ID: 1, Name: "Rive Gauche Flat", Address: "12 Rue Jacob", Cost: recommend.Unknown, Link: recommend.Unknown, Description: "Quiet flat"},
		},
		PlacesToVisit: []recommend.Item{},
		PlacesToEat:   []recommend.Item{{ID: 1, Name: "Chez Janou", Address: "2 Rue Roger Verlomme", Cost: "€€", Link: recommend.Unknown}},
		Advisory:      true,
	})
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "Your Recommendations")
	iHomes := strings.Index(out, HeadingHomes)
	iVisit := strings.Index(out, HeadingVisit)
	iEat := strings.Index(out, HeadingEat)
	assert.True(t, iHomes >= 0 && iHomes < iVisit && iVisit < iEat, out)

	assert.Contains(t, out, "[Featured] Le Marais Loft")
	assert.Less(t, strings.Index(out, "Le Marais Loft"), strings.Index(out, "Rive Gauche Flat"))
	assert.Contains(t, out, "Address not available")
	assert.Contains(t, out, "Cost not available")
	assert.Contains(t, out, "https://example.com/loft")
	assert.NotContains(t, out, recommend.Unknown)
	assert.Contains(t, out, "No recommendations.")
	assert.Contains(t, out, "Health advisory")
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderer_NoAdvisory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, false).Set(recommend.Set{}))
	assert.NotContains(t, buf.String(), "Health advisory")
}

func TestRenderer_StyledKeepsContent(t *testing.T) {
	var buf bytes.Buffer
	err := New(&buf, true).Set(recommend.Set{
		Homes: []recommend.Item{{ID: 1, Name: "Cabin", Address: recommend.Unknown, Cost: "$90", Link: recommend.Unknown, Featured: true}},
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Cabin")
	assert.Contains(t, out, "Featured")
	assert.Contains(t, out, "Address not available")
}

func TestRenderer_Error(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, false).Error(&recommend.Error{Kind: recommend.KindParse, Message: recommend.MessageParse}))
	assert.Equal(t, recommend.MessageParse+"\n", buf.String())

	buf.Reset()
	require.NoError(t, New(&buf, false).Error(nil))
	assert.Equal(t, recommend.MessageTransport+"\n", buf.String())
}
