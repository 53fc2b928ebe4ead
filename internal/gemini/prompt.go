package gemini

import (
	"fmt"
	"strings"

	"github.com/Renan-Hawladar/OrbitAI/internal/model"
)

// BuildPrompt renders the career-advisor prompt from a profile and an
// optional career query.
//
// Every profile field goes in verbatim — including the extracted CV text,
// which is untrusted free text. The CV is fenced in triple quotes so prose
// that happens to look like an instruction stays visually inside the
// "profile data" block; the real structure enforcement is the response
// schema on the call, not the prompt wording.
//
// No query → ask for the top 5 ranked career paths.
// Query    → ask for a single detailed roadmap for that named career.
func BuildPrompt(profile *model.Profile, careerQuery string) string {
	var b strings.Builder

	b.WriteString("Analyze the following user profile:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orNotProvided(profile.Name))
	fmt.Fprintf(&b, "- Current Degree: %s\n", orNotProvided(profile.Degree))
	fmt.Fprintf(&b, "- Qualifications: %s\n", orNotProvided(profile.Qualifications))
	fmt.Fprintf(&b, "- Skills: %s\n", orNotProvided(profile.Skills))
	fmt.Fprintf(&b, "- CV/Resume Text: \"\"\"%s\"\"\"\n", orNotProvided(profile.CVText))

	if careerQuery != "" {
		fmt.Fprintf(&b, `
The user is specifically interested in a career as a %q.
Based on their profile, create a single, detailed, personalized roadmap for them to achieve this career.
Explain why this path might be suitable or what challenges they might face.
The roadmap should include essential skills to learn, projects to build, certifications to get, and networking advice.
Provide only the single most relevant career path object in the JSON array.
`, careerQuery)
	} else {
		b.WriteString(`
Based on the user's profile, identify the top 5 most suitable career paths.
For each path, provide a detailed, step-by-step roadmap for success.
The roadmap should include essential skills to learn, projects to build, certifications to get, and networking advice.
`)
	}

	return b.String()
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not provided"
	}
	return s
}
