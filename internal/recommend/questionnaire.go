package recommend

import (
	"strconv"
	"strings"
	"time"
)

// Questionnaire keys, as the form submits them.
const (
	KeyDestination        = "destination"
	KeyCivilizationType   = "civilizationType"
	KeyArrivalDate        = "arrivalDate"
	KeyDepartureDate      = "departureDate"
	KeyTravelPurpose      = "travelPurpose"
	KeyWillingToTravelFar = "willingToTravelFar"
	KeyBudget             = "budget"
	KeyTripNights         = "tripNights"
)

const dateLayout = "2006-01-02"

// Questionnaire is the trip form. Fields are opaque text to the pipeline.
type Questionnaire struct {
	Destination        string `json:"destination" jsonschema:"where the traveller wants to go"`
	CivilizationType   string `json:"civilizationType,omitempty" jsonschema:"rural, urban or suburban"`
	ArrivalDate        string `json:"arrivalDate,omitempty" jsonschema:"day of arrival (YYYY-MM-DD)"`
	DepartureDate      string `json:"departureDate,omitempty" jsonschema:"day of leaving (YYYY-MM-DD)"`
	TravelPurpose      string `json:"travelPurpose,omitempty" jsonschema:"point of the trip"`
	WillingToTravelFar bool   `json:"willingToTravelFar,omitempty" jsonschema:"whether long trips from the base are acceptable"`
	Budget             string `json:"budget,omitempty" jsonschema:"budget in free text"`
}

// Answers returns the answer map for q. Empty text fields are omitted.
//
// When both dates parse and departure follows arrival, the number of nights is
// added under KeyTripNights. Unparseable dates are passed through untouched.
func (q Questionnaire) Answers() Answers {
	a := Answers{KeyWillingToTravelFar: q.WillingToTravelFar}
	put := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			a[k] = v
		}
	}
	put(KeyDestination, q.Destination)
	put(KeyCivilizationType, q.CivilizationType)
	put(KeyArrivalDate, q.ArrivalDate)
	put(KeyDepartureDate, q.DepartureDate)
	put(KeyTravelPurpose, q.TravelPurpose)
	put(KeyBudget, q.Budget)

	if n, ok := tripNights(q.ArrivalDate, q.DepartureDate); ok {
		a[KeyTripNights] = strconv.Itoa(n)
	}
	return a
}

func tripNights(arrival, departure string) (int, bool) {
	from, err := time.Parse(dateLayout, strings.TrimSpace(arrival))
	if err != nil {
		return 0, false
	}
	to, err := time.Parse(dateLayout, strings.TrimSpace(departure))
	if err != nil {
		return 0, false
	}
	if !to.After(from) {
		return 0, false
	}
	return int(to.Sub(from).Hours() / 24), true
}
