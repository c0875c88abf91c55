package enrich

import (
	_ "embed"
	"text/template"
)

//go:embed prompts/job_categorization.md
var jobCategorizationPromptRaw string

// jobCategorizationTemplate is the parsed prompt for categorization calls.
// Parsed once at package init; reused on every Categorize call.
var jobCategorizationTemplate = template.Must(
	template.New("job_categorization").Parse(jobCategorizationPromptRaw))
