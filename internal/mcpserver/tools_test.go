package mcpserver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shpitdev/air-assist/internal/generate"
	"github.com/shpitdev/air-assist/internal/recommend"
)

type recorder struct {
	got recommend.Answers
	set recommend.Set
	err error
}

func (r *recorder) Run(_ context.Context, a recommend.Answers) (recommend.Set, error) {
	r.got = a
	return r.set, r.err
}

func TestNew_RequiresRecommender(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestHandleRecommend(t *testing.T) {
	rec := &recorder{set: recommend.Set{
		Homes:         []recommend.Item{{ID: 1, Name: "Riad", Featured: true}},
		PlacesToVisit: []recommend.Item{},
		PlacesToEat:   []recommend.Item{{ID: 1, Name: "Café Clock", Address: recommend.Unknown}},
		Advisory:      true,
	}}
	s, err := New(rec)
	require.NoError(t, err)

	res, out, err := s.handleRecommend(context.Background(), nil, recommend.Questionnaire{
		Destination:   "Marrakesh",
		ArrivalDate:   "2026-03-01",
		DepartureDate: "2026-03-04",
	})
	require.NoError(t, err)
	assert.Nil(t, res)

	assert.Equal(t, "Marrakesh", rec.got[recommend.KeyDestination])
	assert.Equal(t, "3", rec.got[recommend.KeyTripNights])
	assert.Equal(t, false, rec.got[recommend.KeyWillingToTravelFar])

	require.Len(t, out.Homes, 1)
	assert.Equal(t, "Riad", out.Homes[0].Name)
	assert.Equal(t, recommend.Unknown, out.PlacesToEat[0].Address)
	assert.True(t, out.Advisory)
}

func TestHandleRecommend_PipelineError(t *testing.T) {
	s, err := New(recommend.New(generate.Func(func(context.Context, string) (string, error) {
		return "I cannot help with that.", nil
	})))
	require.NoError(t, err)

	_, _, err = s.handleRecommend(context.Background(), nil, recommend.Questionnaire{Destination: "Nowhere"})
	var perr *recommend.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, recommend.KindParse, perr.Kind)
	assert.Contains(t, err.Error(), recommend.MessageParse)
}
