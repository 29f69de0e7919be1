// Package text splits document and query text into words.
//
// A word is a maximal run of bytes between ASCII spaces (0x20). No other
// byte is a delimiter, so tabs and newlines stay inside words and are caught
// by validation instead.
package text

// SplitIntoWords returns the non-empty space-separated words of text, in order.
func SplitIntoWords(text string) []string {
	words := make([]string, 0, len(text)/2)
	start := -1
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' {
			if start >= 0 {
				words = append(words, text[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, text[start:])
	}
	return words
}

// IsValidWord reports whether word is free of control characters.
func IsValidWord(word string) bool {
	for i := 0; i < len(word); i++ {
		if word[i] < 0x20 {
			return false
		}
	}
	return true
}
