package segment

import "strings"

// tokensPerWord approximates subword tokens per English word.
const tokensPerWord = 1.33

// EstimateTokens gives a rough token count from the number of words.
// Exact tokenization is not required for bounding sentence length.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	tokens := int(float64(len(strings.Fields(text))) * tokensPerWord)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}
