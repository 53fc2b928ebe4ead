package model

// CareerPath is one recommendation produced by the career advisor: a named
// occupation, why it fits the user, the skills to acquire, and an ordered
// plan to get there. Paths are re-derived on every request — the user never
// edits them and a fresh analysis replaces prior results entirely.
type CareerPath struct {
	CareerPath        string        `json:"career_path"`
	SuitabilityReason string        `json:"suitability_reason"`
	RequiredSkills    []string      `json:"required_skills"`
	Roadmap           []RoadmapStep `json:"roadmap"`
}

// RoadmapStep is one ordered action item in a career path's plan.
//
// The authoritative ordering is the slice order in CareerPath.Roadmap.
// Step is a display label coming straight from the model output and is not
// validated against the position — a model that numbers 1,2,4 renders as-is.
type RoadmapStep struct {
	Step    int    `json:"step"`
	Action  string `json:"action"`
	Details string `json:"details"`
}
