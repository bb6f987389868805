package recommend

import (
	"bytes"
	"encoding/json"
	"strings"
)

const promptSchema = `{
  "homeRecommendations": [
    { "id": 1, "name": "string", "address": "string", "cost": "string", "link": "string", "description": "string", "featured": true },
    { "id": 2, "name": "string", "address": "string", "cost": "string", "link": "string", "description": "string", "featured": false }
  ],
  "placesToVisit": [
    { "id": 1, "name": "string", "address": "string", "cost": "string", "link": "string", "description": "string" }
  ],
  "placesToEat": [
    { "id": 1, "name": "string", "address": "string", "cost": "string", "link": "string", "description": "string" }
  ],
  "healthAdvisory": false
}`

// BuildPrompt renders the generation instruction for answers.
//
// The output is a pure function of answers: keys are serialized in sorted order,
// so identical maps always yield identical prompts. Any map is accepted.
func BuildPrompt(answers Answers) string {
	var b strings.Builder
	b.WriteString("You are a travel planning assistant. Using the traveller's questionnaire below, recommend homes to stay in, places to visit and places to eat.\n\n")
	b.WriteString("Generate a JSON response with the following structure:\n")
	b.WriteString(promptSchema)
	b.WriteString("\n\nRules:\n")
	b.WriteString(`- Respond with "` + Unknown + `" for unavailable data.` + "\n")
	b.WriteString("- Always attempt to populate every field of every item.\n")
	b.WriteString(`- Mark exactly one home as "featured": true (the best match for the questionnaire); all other homes are "featured": false.` + "\n")
	b.WriteString(`- Set "healthAdvisory" to true only if travellers to the destination typically need vaccinations or special health precautions.` + "\n")
	b.WriteString("- Number ids from 1 within each list.\n")
	b.WriteString("- Return only the JSON object, with no markdown and no commentary.\n\n")
	b.WriteString("Input data: ")
	b.WriteString(encodeAnswers(answers))
	return b.String()
}

func encodeAnswers(answers Answers) string {
	if answers == nil {
		answers = Answers{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]any(answers)); err != nil {
		// Values are strings/bools per contract; anything else degrades to an empty object.
		return "{}"
	}
	return strings.TrimRight(buf.String(), "\n")
}
