package nlp

import (
	"regexp"
	"strings"
)

// tokenRegex matches runs of letters and digits (allowing inner separators such
// as "50,000", "2.5" or "owner's") or any single other non-space character.
var tokenRegex = regexp.MustCompile(`[\p{L}\p{N}]+(?:[.,'’][\p{L}\p{N}]+)*|[^\s\p{L}\p{N}]`)

// Tokenize splits text into tokens that keep their byte offsets.
func Tokenize(text string) []Token {
	locs := tokenRegex.FindAllStringIndex(text, -1)
	tokens := make([]Token, 0, len(locs))
	for _, loc := range locs {
		word := text[loc[0]:loc[1]]
		tokens = append(tokens, Token{
			Text:  word,
			Lower: strings.ToLower(word),
			Start: loc[0],
			End:   loc[1],
		})
	}
	return tokens
}
