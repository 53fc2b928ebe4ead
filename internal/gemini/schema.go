package gemini

import "google.golang.org/genai"

// careerPathSchema constrains the model's output to the CareerPath array
// the rest of the system consumes.
//
// Declaring the schema on the generation call pushes structure enforcement
// to the provider — we never scrape career names out of free-form prose.
// The decode step still re-validates the shape (see decode.go): the schema
// parameter is a request, not a guarantee.
var careerPathSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"career_path": {
				Type:        genai.TypeString,
				Description: "The name of the career path.",
			},
			"suitability_reason": {
				Type:        genai.TypeString,
				Description: "A brief explanation of why this career path is a good fit for the user.",
			},
			"required_skills": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "A list of essential domain-specific skills to acquire.",
			},
			"roadmap": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"step": {
							Type: genai.TypeInteger,
						},
						"action": {
							Type:        genai.TypeString,
							Description: "A clear action for this step.",
						},
						"details": {
							Type:        genai.TypeString,
							Description: "More details about the action to be taken.",
						},
					},
					Required: []string{"step", "action", "details"},
				},
				Description: "A sequential, step-by-step plan to achieve this career.",
			},
		},
		Required: []string{"career_path", "suitability_reason", "required_skills", "roadmap"},
	},
}
