package enhance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/scriptdeck/scriptdeck/internal/descriptor"
	genai "google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// ErrEmptyResponse is returned when the model produced no candidate text.
var ErrEmptyResponse = errors.New("model returned no content")

const prompt = `You organize package.json scripts for a command launcher.
Group the scripts below into a few categories (for example Development, Testing, Build, Deployment, Code Quality, Utilities).
For every script write a short description of what it does, a short title, and one fitting emoji.
Use only the script keys given. Respond with JSON of this exact shape:
{"scriptGroups":[{"name":"...","scripts":[{"key":"...","description":"...","title":"...","emoji":"..."}]}]}`

// Gemini is a Provider backed by the Gemini API.
type Gemini struct {
	cli   *genai.Client
	model string
}

// NewGemini creates a Gemini provider. An empty apiKey lets the client read
// GEMINI_API_KEY / GOOGLE_API_KEY from the environment.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if model == "" {
		model = DefaultModel
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Gemini{cli: cli, model: model}, nil
}

func (g *Gemini) Name() string { return "gemini:" + g.model }

// Enhance sends the scripts as JSON and decodes the model's JSON answer.
func (g *Gemini) Enhance(ctx context.Context, commands []descriptor.Command) (*descriptor.Config, error) {
	in, err := json.MarshalIndent(commands, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding scripts: %w", err)
	}
	full := prompt + "\n\n[SCRIPTS]\n" + string(in)

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: full}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyResponse
	}

	return Decode(resp.Candidates[0].Content.Parts[0].Text)
}

// Decode parses a model answer, tolerating a surrounding Markdown code fence.
func Decode(text string) (*descriptor.Config, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var cfg descriptor.Config
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &cfg); err != nil {
		return nil, fmt.Errorf("decoding model response: %w", err)
	}
	return &cfg, nil
}
