package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Renan-Hawladar/OrbitAI/internal/apperror"
	"github.com/Renan-Hawladar/OrbitAI/internal/model"
)

// DecodeCareerPaths parses and validates the model's JSON answer.
//
// The response schema on the generation call asks for conforming output,
// but the provider is a trust boundary: nothing stops a model revision from
// returning fenced markdown, an empty object, or paths missing fields. Every
// failure here is apperror.ErrMalformedUpstream — a distinct, labelled error
// kind — instead of a parse error escaping into the render path.
func DecodeCareerPaths(raw string) ([]model.CareerPath, error) {
	cleaned := stripMarkdownFences(raw)
	if cleaned == "" {
		return nil, apperror.MalformedUpstream("the AI returned an empty response")
	}

	var paths []model.CareerPath
	if err := json.Unmarshal([]byte(cleaned), &paths); err != nil {
		return nil, apperror.MalformedUpstream("the AI response was not valid JSON")
	}

	for i, p := range paths {
		if err := validatePath(p); err != nil {
			return nil, apperror.MalformedUpstream(
				fmt.Sprintf("career path %d is malformed: %v", i+1, err))
		}
	}

	return paths, nil
}

// validatePath checks one path for the fields the renderer depends on.
// The roadmap's `step` numbers are display labels and deliberately not
// checked against list position.
func validatePath(p model.CareerPath) error {
	if strings.TrimSpace(p.CareerPath) == "" {
		return fmt.Errorf("missing career_path")
	}
	if strings.TrimSpace(p.SuitabilityReason) == "" {
		return fmt.Errorf("missing suitability_reason")
	}
	if len(p.Roadmap) == 0 {
		return fmt.Errorf("missing roadmap")
	}
	for j, step := range p.Roadmap {
		if strings.TrimSpace(step.Action) == "" {
			return fmt.Errorf("roadmap step %d has no action", j+1)
		}
	}
	return nil
}

// stripMarkdownFences removes a surrounding ```json ... ``` block when the
// model wraps its answer despite the JSON response MIME type.
func stripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimLeft(s, "\r\n")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}
