package ai

import "strings"

// Snippet truncates raw user text to a handler's character budget before it
// is embedded in a prompt. Budgets are per-handler contracts, not a global
// constant.
func Snippet(text string, budget int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= budget {
		return text
	}
	return string(runes[:budget]) + "..."
}
