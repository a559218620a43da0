// Package gemini provides a holding classifier backed by the Google Gemini API.
// It is the last tier of the enrichment chain, consulted only when the
// curated table, the profile API and the name rules all failed.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"portfolio_backend/internal/feature/enrichment/domain/entity"
	"portfolio_backend/internal/feature/enrichment/usecase"
)

const (
	// DefaultModel is the default Gemini model.
	DefaultModel = "gemini-2.5-flash"
)

// GeminiClassifier classifies holdings using the Google Gemini API.
type GeminiClassifier struct {
	client *genai.Client
	model  string
}

// Compile-time check that GeminiClassifier implements LLMClassifier.
var _ usecase.LLMClassifier = (*GeminiClassifier)(nil)

// NewGeminiClassifier creates a new GeminiClassifier using ADC.
// The environment variables GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT
// and GOOGLE_CLOUD_LOCATION (or GEMINI_API_KEY) configure the client.
func NewGeminiClassifier(ctx context.Context) (*GeminiClassifier, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiClassifier{client: client, model: DefaultModel}, nil
}

// classificationPrompt asks for a strict JSON answer so the response can be
// decoded without free-text cleanup beyond code fence stripping.
const classificationPrompt = `You are a financial instrument classifier.
Classify the following brokerage holding.

Symbol: %s
Name: %s
Product type: %s

Respond with ONLY a JSON object, no prose, with these keys:
{"sector": "<GICS sector or fund category>",
 "region": "<United States|Canada|Europe|Asia|Global|Emerging Markets|Unknown>",
 "country": "<listing country or Unknown>",
 "industry": "<GICS industry or fund type>",
 "confidence": <0.0-1.0>,
 "reasoning": "<one sentence>"}
Use "Unknown" for anything you cannot determine and lower the confidence accordingly.`

// llmAnswer mirrors the JSON object the prompt requests.
type llmAnswer struct {
	Sector     string  `json:"sector"`
	Region     string  `json:"region"`
	Country    string  `json:"country"`
	Industry   string  `json:"industry"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Classify asks the model to classify one holding and decodes its answer.
func (g *GeminiClassifier) Classify(ctx context.Context, symbol, name, product string) (entity.Classification, error) {
	prompt := fmt.Sprintf(classificationPrompt, symbol, name, product)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return entity.Classification{}, fmt.Errorf("gemini API request failed: %w", err)
	}

	var ans llmAnswer
	if err := json.Unmarshal([]byte(stripCodeFences(resp.Text())), &ans); err != nil {
		return entity.Classification{}, fmt.Errorf("gemini returned unparsable classification: %w", err)
	}

	return entity.Classification{
		Symbol:     symbol,
		Name:       name,
		Sector:     orUnknown(ans.Sector),
		Region:     orUnknown(ans.Region),
		Country:    orUnknown(ans.Country),
		Industry:   orUnknown(ans.Industry),
		Confidence: ans.Confidence,
		Source:     entity.SourceLLM,
	}, nil
}

// stripCodeFences removes a surrounding markdown code block, which the model
// sometimes adds despite the prompt.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}
