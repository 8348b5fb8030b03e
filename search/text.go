package search

import "strings"

// Stop words to filter out when tokenizing queries and documents
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "i": true, "me": true, "my": true, "need": true,
	"help": true, "get": true, "how": true, "where": true, "can": true,
}

// tokenizeAndFilter splits text into words, lowercases, trims punctuation, and removes stop words
func tokenizeAndFilter(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		// Lowercase and trim punctuation
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))

		// Skip stop words and empty strings
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// containsToken reports a case-insensitive substring match.
func containsToken(text, token string) bool {
	return strings.Contains(strings.ToLower(text), token)
}

// containsAllQueryTokens checks if every filtered query token appears in the document
func containsAllQueryTokens(document, query string) bool {
	queryTokens := tokenizeAndFilter(query)
	if len(queryTokens) == 0 {
		return false
	}

	document = strings.ToLower(document)
	for _, token := range queryTokens {
		if !strings.Contains(document, token) {
			return false
		}
	}

	return true
}
