package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// ErrEmptyIndustry is returned when a caller asks for insights on a blank
// industry. This is the only error Generate surfaces; everything else
// degrades to the deterministic fallback.
var ErrEmptyIndustry = errors.New("industry is required and cannot be empty")

const insightPrompt = `
Analyze the current state of the %s industry and provide insights in ONLY the following JSON format without any additional notes or explanations:
{
"salaryRange": [
	{ "role": "string", "min": number, "max": number, "median": number, "location": "string" }
],
"growthRate": number,
"demandLevel": "HIGH" | "MEDIUM" | "LOW",
"topSkills": ["skill1", "skill2"],
"marketOutlook": "POSITIVE" | "NEUTRAL" | "NEGATIVE",
"keyTrends": ["trend1", "trend2"],
"recommendedSkills": ["skill1", "skill2"]
}

IMPORTANT:
- Return ONLY the JSON. No additional text, notes, or markdown formatting.
- Include at least 5 common roles for salary ranges.
- Growth rate should be a percentage (0-100).
- Include at least 5 skills and trends.
- Use proper role names related to %s industry.
- Do not use "Null" in any field names or values.
`

// Models love wrapping "JSON only" answers in markdown fences anyway.
var codeFence = regexp.MustCompile("```(?:json)?\n?")

// Generator produces industry insights from a Gemini model. The model is
// injected so tests can substitute a double, and may be nil when no API key
// is configured — Generate then serves fallback data directly.
type Generator struct {
	model  llms.Model
	logger *zap.Logger
}

func NewGenerator(model llms.Model, logger *zap.Logger) *Generator {
	return &Generator{model: model, logger: logger}
}

// HasModel reports whether a Gemini client is configured.
func (g *Generator) HasModel() bool {
	return g.model != nil
}

// Generate returns sanitized model insights for the industry. It fails only
// on a blank industry; any model, transport, or parse failure is logged and
// replaced with Fallback output, so callers never see those errors.
func (g *Generator) Generate(ctx context.Context, industry string) (Insights, error) {
	if strings.TrimSpace(industry) == "" {
		return Insights{}, ErrEmptyIndustry
	}

	ins, err := g.generate(ctx, industry)
	if err != nil {
		g.logger.Error("ai insight generation failed, using fallback",
			zap.String("industry", industry), zap.Error(err))
		return Fallback(industry), nil
	}
	return ins, nil
}

// generate is the fallible inner call: prompt, strip fences, parse, sanitize.
func (g *Generator) generate(ctx context.Context, industry string) (Insights, error) {
	if g.model == nil {
		return Insights{}, errors.New("gemini client is not configured")
	}

	prompt := fmt.Sprintf(insightPrompt, industry, industry)
	resp, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt)
	if err != nil {
		return Insights{}, fmt.Errorf("generate content: %w", err)
	}

	cleaned := strings.TrimSpace(codeFence.ReplaceAllString(resp, ""))

	var raw RawInsights
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return Insights{}, fmt.Errorf("parse model output: %w", err)
	}

	return Sanitize(raw, industry), nil
}
