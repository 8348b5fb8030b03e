package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/benefind/core"
)

const rankingResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "ranked_slugs": {
      "type": "array",
      "items": {
        "type": "string"
      }
    }
  },
  "required": ["ranked_slugs"],
  "additionalProperties": false
}`

const rankingPromptTemplate = `You rank public assistance programs by relevance to a resident's question.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- ranked_slugs must contain only slugs from the candidate list below, ordered from most to least relevant.
- Omit candidates that are clearly irrelevant to the question; a subset answer is fine.
- Never invent a slug that is not in the candidate list.
- The question may be written in any language; judge relevance by meaning, not wording.
- If no candidate is relevant, return "ranked_slugs": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Candidate program slugs:
%s`

// buildRankingPrompt constructs the system prompt with the response schema
// and the candidate slug list.
func buildRankingPrompt(candidates []core.Slug) string {
	lines := make([]string, 0, len(candidates))
	for _, slug := range candidates {
		lines = append(lines, "- "+string(slug))
	}
	return fmt.Sprintf(rankingPromptTemplate, rankingResponseSchema, strings.Join(lines, "\n"))
}

// buildRankingQuery formats the user message, tagging the locale so the
// model knows which language the question is asked in.
func buildRankingQuery(query, locale string) string {
	query = strings.TrimSpace(query)
	if locale == "" {
		return query
	}
	return fmt.Sprintf("[locale: %s] %s", locale, query)
}
