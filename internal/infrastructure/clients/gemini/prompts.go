package gemini

// triageSystemPrompt instructs the model to answer with exactly the JSON
// shape the classifier parses. The response schema enforces the field
// names; the prompt pins down the allowed values.
const triageSystemPrompt = `You are a triage assistant for a campus health clinic.
Given a student's symptoms, classify the urgency and suggest one action.

Rules:
- priorityLevel must be exactly one of: "Low", "Medium", "High".
- Use "High" for symptoms that could indicate an emergency (chest pain,
  difficulty breathing, severe bleeding, loss of consciousness).
- Use "Low" only for clearly minor, self-limiting complaints.
- suggestedAction is one short sentence telling the student what to do next.
- Never prescribe medication. When in doubt, recommend visiting the clinic.`

// triageResponseSchema constrains the model output to the parsed shape
var triageResponseSchema = map[string]interface{}{
	"type": "OBJECT",
	"properties": map[string]interface{}{
		"priorityLevel": map[string]interface{}{
			"type": "STRING",
			"enum": []string{"Low", "Medium", "High"},
		},
		"suggestedAction": map[string]interface{}{
			"type": "STRING",
		},
	},
	"required": []string{"priorityLevel", "suggestedAction"},
}
