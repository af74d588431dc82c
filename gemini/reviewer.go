// Package gemini implements a code reviewer backed by Google Gemini.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/bugspotter"
)

// Compile-time interface verification.
var _ bugspotter.Reviewer = (*Reviewer)(nil)

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("gemini: API key is required")

// SystemInstruction frames the model as a senior code reviewer.
const SystemInstruction = `You are a senior code reviewer with deep experience across languages and frameworks.

Review the code you are given for bugs, security problems, performance issues and readability. For each issue:
- name the problem and where it occurs,
- explain its impact briefly,
- show a corrected snippet.

Finish with a short summary of strengths. Respond in Markdown. Be concise and constructive.`

// Reviewer implements bugspotter.Reviewer using Google Gemini.
type Reviewer struct {
	client GenerativeClient
	model  string
}

// NewReviewer creates a new Reviewer.
func NewReviewer(client GenerativeClient, model string) *Reviewer {
	if model == "" {
		model = DefaultModel
	}
	return &Reviewer{client: client, model: model}
}

// Model returns the model name used for requests.
func (r *Reviewer) Model() string {
	return r.model
}

// Review sends the code to Gemini and returns the markdown review.
func (r *Reviewer) Review(ctx context.Context, req bugspotter.ReviewRequest) (string, error) {
	contents := []*Content{{
		Parts: []*Part{{Text: BuildPrompt(req)}},
	}}

	resp, err := r.client.GenerateContent(ctx, r.model, contents, BuildConfig())
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", fmt.Errorf("gemini: returned nil response")
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", fmt.Errorf("gemini: %w", bugspotter.ErrEmptyReview)
	}

	return resp.Text, nil
}

// BuildPrompt creates the user prompt for the Gemini API.
func BuildPrompt(req bugspotter.ReviewRequest) string {
	language := req.Language
	if language == "" {
		language = "plaintext"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Review the following %s code.\n\n", language)
	fmt.Fprintf(&sb, "```%s\n", language)
	sb.WriteString(req.Code)
	if !strings.HasSuffix(req.Code, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("```\n")

	return sb.String()
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *GenerateContentConfig {
	temp := float32(0.4)
	return &GenerateContentConfig{
		SystemInstruction: &Content{
			Parts: []*Part{{Text: SystemInstruction}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "text/plain",
	}
}

// GenerativeClient abstracts the Gemini API for testing.
type GenerativeClient interface {
	GenerateContent(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error)
}

// Content represents a message in a Gemini conversation.
type Content struct {
	Parts []*Part
}

// Part represents a part of a message.
type Part struct {
	Text string
}

// GenerateContentConfig holds configuration for content generation.
type GenerateContentConfig struct {
	SystemInstruction *Content
	Temperature       *float32
	ResponseMIMEType  string
}

// GenerateContentResponse holds the response from content generation.
type GenerateContentResponse struct {
	Text string
}

// MockGenerativeClient is a mock implementation of GenerativeClient for testing.
type MockGenerativeClient struct {
	GenerateContentFn func(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error)
}

func (m *MockGenerativeClient) GenerateContent(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error) {
	return m.GenerateContentFn(ctx, model, contents, config)
}

// APIError represents an error from the Gemini API with HTTP status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError with the given status code and message.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}
