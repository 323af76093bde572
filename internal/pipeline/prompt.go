package pipeline

import (
	"fmt"
	"strings"

	"github.com/pulse-works/pulse/internal/sources/news"
)

const articleSeparator = "\n\n---\n\n"

const systemPrompt = "You are an economic analyst assessing the impact of artificial intelligence " +
	"on the American labor market. Respond with only a JSON object matching the requested schema. " +
	"Do not include markdown formatting, code fences, or any text outside the JSON object."

var schemaInstructions = map[SchemaVersion]string{
	SchemaV1: `Return only a JSON object with this exact shape:
{
  "rating": <number 1-10, overall impact score>,
  "summary": <string, 500-700 word narrative assessment>
}`,
	SchemaV2: `Return only a JSON object with this exact shape:
{
  "rating": <number 1-10, overall impact score>,
  "summary": <string, 500-700 word narrative assessment>,
  "productivity_insight": <string, short insight on productivity effects>,
  "american_dream_impact": <string, short insight on economic mobility>
}`,
	SchemaV3: `Return only a JSON object with this exact shape:
{
  "rating": <number 1-10, overall impact score>,
  "summary": <string, 500-700 word narrative assessment>,
  "prod_labor_score": <number 0-100, productivity vs labor displacement balance>,
  "prod_labor_tip": <string, at most 120 characters explaining the score>,
  "american_dream_score": <number 0-100, economic mobility outlook>,
  "american_dream_tooltip": <string, at most 120 characters explaining the score>
}`,
}

// BuildPrompt assembles the user message from the leading articles.
// Each article contributes its title, description (with an explicit
// placeholder when missing), and publish date.
func BuildPrompt(articles []news.Article, maxArticles int, version SchemaVersion) string {
	if len(articles) > maxArticles {
		articles = articles[:maxArticles]
	}

	excerpts := make([]string, 0, len(articles))
	for _, a := range articles {
		description := a.Description
		if description == "" {
			description = "(no description)"
		}

		excerpts = append(excerpts, fmt.Sprintf(
			"Title: %s\nDescription: %s\nPublished: %s",
			a.Title,
			description,
			a.PublishedAt,
		))
	}

	var b strings.Builder
	b.WriteString("Assess the following recent news coverage of AI and the labor market.\n\n")
	b.WriteString(strings.Join(excerpts, articleSeparator))
	b.WriteString("\n\n")
	b.WriteString(schemaInstructions[version])

	return b.String()
}
