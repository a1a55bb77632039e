package refine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/etrmlabs/scriba/internal/errors"
	"github.com/etrmlabs/scriba/internal/model"
)

const (
	defaultGeminiURL = "https://generativelanguage.googleapis.com/v1beta"
	geminiModel      = "gemini-2.5-flash"
)

// systemInstruction describes the cleanup rules: remove disfluencies, trim to
// the target word band, keep speaker attribution intact.
const systemInstruction = `You are an excellent content editor and transcriptor. Please refine this interview transcript to improve readability and make it appropriate for a written post.
Remove speech artifacts (ums, ahs, repeated words), fix obvious grammatical errors and delete pleasantries with no other content.
Remove redundant content, ensure natural flow, shorten where appropriate and remove unnecessary connective words.
Maintain all important information, and if you decide to change wording then make sure to preserve the original intention.
Try to reduce the transcript to 1500-2500 words and make each segment between 10 and 45s where appropriate.`

// geminiRefiner implements Refiner using the Gemini generateContent API with
// a JSON response schema so the reply parses straight back into segments.
type geminiRefiner struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewGeminiRefiner creates a Refiner backed by Gemini
func NewGeminiRefiner(apiKey string) Refiner {
	return &geminiRefiner{
		apiKey:  apiKey,
		baseURL: defaultGeminiURL,
		client:  http.DefaultClient,
	}
}

// NewGeminiRefinerWithClient creates a Gemini Refiner with a custom endpoint
// and HTTP client (for testing)
func NewGeminiRefinerWithClient(apiKey, baseURL string, client *http.Client) Refiner {
	return &geminiRefiner{apiKey: apiKey, baseURL: baseURL, client: client}
}

type geminiRequest struct {
	SystemInstruction geminiContent   `json:"system_instruction"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  struct {
		ResponseMimeType string          `json:"response_mime_type"`
		ResponseSchema   json.RawMessage `json:"response_schema"`
	} `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// segmentSchema constrains the model to a segments array with timing, speaker
// and text per entry
var segmentSchema = json.RawMessage(`{
	"type": "OBJECT",
	"required": ["segments"],
	"properties": {
		"segments": {
			"type": "ARRAY",
			"items": {
				"type": "OBJECT",
				"required": ["start", "end", "speaker", "text"],
				"properties": {
					"start":   {"type": "NUMBER"},
					"end":     {"type": "NUMBER"},
					"speaker": {"type": "STRING"},
					"text":    {"type": "STRING"}
				}
			}
		}
	}
}`)

// Refine sends the flattened transcript to Gemini and parses the structured
// reply back into a segment collection
func (r *geminiRefiner) Refine(ctx context.Context, segments []model.Segment) ([]model.Segment, error) {
	if r.apiKey == "" {
		return nil, errors.New(errors.CodeInvalidArg, "gemini API key is not configured")
	}
	if len(segments) == 0 {
		return nil, errors.New(errors.CodeInvalidArg, "no segments to refine")
	}

	request := geminiRequest{
		SystemInstruction: geminiContent{Parts: []geminiPart{{Text: systemInstruction}}},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: Flatten(segments)}}},
		},
	}
	request.GenerationConfig.ResponseMimeType = "application/json"
	request.GenerationConfig.ResponseSchema = segmentSchema

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to encode gemini request")
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", r.baseURL, geminiModel, r.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to build gemini request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "gemini refinement failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to read gemini response")
	}
	if resp.StatusCode != http.StatusOK {
		message := fmt.Sprintf("gemini refinement failed (status %d)", resp.StatusCode)
		return nil, errors.New(errors.CodeExternal, message)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to parse gemini response")
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New(errors.CodeExternal, "empty response from gemini")
	}

	var result struct {
		Segments []model.Segment `json:"segments"`
	}
	if err := json.Unmarshal([]byte(parsed.Candidates[0].Content.Parts[0].Text), &result); err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to parse refined segments")
	}
	return result.Segments, nil
}
