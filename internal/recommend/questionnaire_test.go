package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestionnaireAnswers(t *testing.T) {
	q := Questionnaire{
		Destination:        " Kyoto ",
		CivilizationType:   "urban",
		ArrivalDate:        "2026-04-01",
		DepartureDate:      "2026-04-08",
		TravelPurpose:      "temples",
		WillingToTravelFar: true,
		Budget:             "",
	}
	a := q.Answers()
	assert.Equal(t, "Kyoto", a[KeyDestination])
	assert.Equal(t, "urban", a[KeyCivilizationType])
	assert.Equal(t, true, a[KeyWillingToTravelFar])
	assert.Equal(t, "7", a[KeyTripNights])
	_, hasBudget := a[KeyBudget]
	assert.False(t, hasBudget)
}

func TestQuestionnaireAnswers_NoNightsForBadDates(t *testing.T) {
	for _, tc := range [][2]string{
		{"2026-04-08", "2026-04-01"},
		{"2026-04-01", "2026-04-01"},
		{"next week", "2026-04-01"},
		{"", ""},
	} {
		a := Questionnaire{ArrivalDate: tc[0], DepartureDate: tc[1]}.Answers()
		_, ok := a[KeyTripNights]
		assert.False(t, ok, "dates %v", tc)
	}
}
