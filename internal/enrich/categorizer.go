package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Keeps prompts inside token limits; snippets beyond this add little
// signal for categorization.
const maxDescriptionChars = 3000

// maxSkills caps the skill list as a defensive guard against verbose models.
const maxSkills = 12

// LLMCategorizer implements Categorizer on top of an LLM provider.
type LLMCategorizer struct {
	provider LLMProvider
}

// NewLLMCategorizer creates a categorizer backed by the given provider.
func NewLLMCategorizer(provider LLMProvider) *LLMCategorizer {
	return &LLMCategorizer{provider: provider}
}

// Categorize renders the prompt, calls the LLM and parses the structured
// response into Insights.
func (c *LLMCategorizer) Categorize(ctx context.Context, title, description string) (*Insights, error) {
	if len(description) > maxDescriptionChars {
		description = description[:maxDescriptionChars]
	}

	var promptBuf bytes.Buffer
	err := jobCategorizationTemplate.Execute(&promptBuf, struct {
		Title       string
		Description string
	}{Title: title, Description: description})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	raw, err := c.provider.Complete(ctx, promptBuf.String())
	if err != nil {
		return nil, fmt.Errorf("llm complete: %w", err)
	}

	return parseInsights(raw)
}

// rawInsights is the JSON shape returned by the LLM (matches
// jobInsightsSchema).
type rawInsights struct {
	Language        string   `json:"language"`
	TechnicalSkills []string `json:"technical_skills"`
	Seniority       string   `json:"seniority"`
	EmploymentType  string   `json:"employment_type"`
	Remote          bool     `json:"remote"`
	SalaryMin       *int     `json:"salary_min"`
	SalaryMax       *int     `json:"salary_max"`
	FormattedAddr   *string  `json:"formatted_address"`
	City            *string  `json:"city"`
	Country         *string  `json:"country"`
}

// parseInsights deserializes the LLM response. Structured outputs
// guarantees schema-valid JSON, so no code-fence stripping is needed.
func parseInsights(raw string) (*Insights, error) {
	var ri rawInsights
	if err := json.Unmarshal([]byte(raw), &ri); err != nil {
		return nil, fmt.Errorf("unmarshal insights JSON: %w", err)
	}

	insights := &Insights{
		Language:       ri.Language,
		Skills:         ri.TechnicalSkills,
		Seniority:      ri.Seniority,
		EmploymentType: ri.EmploymentType,
		Remote:         ri.Remote,
	}
	if ri.SalaryMin != nil {
		insights.SalaryMin = *ri.SalaryMin
	}
	if ri.SalaryMax != nil {
		insights.SalaryMax = *ri.SalaryMax
	}
	if ri.FormattedAddr != nil {
		insights.FormattedAddress = *ri.FormattedAddr
	}
	if ri.City != nil {
		insights.City = *ri.City
	}
	if ri.Country != nil {
		insights.Country = *ri.Country
	}

	if len(insights.Skills) > maxSkills {
		insights.Skills = insights.Skills[:maxSkills]
	}

	return insights, nil
}
