// Package gemini is the career advisor: it turns a user profile into ranked
// career paths by calling Google's Gemini API with a constrained JSON
// response schema.
//
// The server holds the single API key; clients never talk to the provider
// directly. Generation parameters (temperature, schema, model) live here —
// callers only see profiles in and validated CareerPath values out.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/Renan-Hawladar/OrbitAI/internal/apperror"
	"github.com/Renan-Hawladar/OrbitAI/internal/model"
)

// generationModel is the Gemini model used for career analysis.
const generationModel = "gemini-2.0-flash"

// callTimeout bounds one generation call. Roadmap generation for five
// careers routinely takes tens of seconds, so this is generous but finite.
const callTimeout = 60 * time.Second

// Client calls the Gemini API and decodes career paths.
type Client struct {
	genai  *genai.Client
	logger *slog.Logger
}

// New creates a Gemini client with the given API key.
func New(ctx context.Context, apiKey string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: API key is required")
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}

	return &Client{genai: gc, logger: logger}, nil
}

// AnalyzeCareerPaths asks for the top career paths matching the profile.
// The service layer clamps the count; the prompt asks for five.
func (c *Client) AnalyzeCareerPaths(ctx context.Context, profile *model.Profile) ([]model.CareerPath, error) {
	return c.generate(ctx, BuildPrompt(profile, ""))
}

// SearchCareerPath asks for a single detailed roadmap toward the named
// career, personalized to the profile.
func (c *Client) SearchCareerPath(ctx context.Context, profile *model.Profile, careerQuery string) ([]model.CareerPath, error) {
	return c.generate(ctx, BuildPrompt(profile, careerQuery))
}

// generate runs one schema-constrained generation call and decodes it.
func (c *Client) generate(ctx context.Context, prompt string) ([]model.CareerPath, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	start := time.Now()
	resp, err := c.genai.Models.GenerateContent(ctx, generationModel,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr[float32](0.5),
			ResponseMIMEType: "application/json",
			ResponseSchema:   careerPathSchema,
		},
	)
	if err != nil {
		return nil, c.translateError(err)
	}

	raw := resp.Text()
	if raw == "" {
		return nil, apperror.MalformedUpstream("the AI returned no candidates")
	}

	paths, err := DecodeCareerPaths(raw)
	if err != nil {
		c.logger.Error("gemini response failed validation",
			slog.String("error", err.Error()),
			slog.Int("responseBytes", len(raw)),
		)
		return nil, err
	}

	c.logger.Info("gemini call completed",
		slog.Int("paths", len(paths)),
		slog.Duration("duration", time.Since(start)),
	)

	return paths, nil
}

// translateError maps provider failures onto the app error taxonomy. All of
// them render as a retryable error block; 429 gets the friendlier message
// since it resolves on its own.
func (c *Client) translateError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.Upstream("the AI request timed out, please try again")
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		c.logger.Error("gemini API error",
			slog.Int("code", apiErr.Code),
			slog.String("status", apiErr.Status),
		)
		if apiErr.Code == http.StatusTooManyRequests {
			return apperror.Upstream("the AI service is currently busy due to high demand, please wait a moment and try again")
		}
		return apperror.Upstream(fmt.Sprintf("AI service error: %s", apiErr.Message))
	}

	c.logger.Error("gemini call failed", slog.String("error", err.Error()))
	return apperror.Upstream("failed to get a response from the AI service")
}
