package commands

import "strings"

// MaxMessageLength is Discord's per-message character limit
const MaxMessageLength = 2000

// SplitMessage breaks text into chunks of at most limit characters, cutting
// at line breaks where possible.
func SplitMessage(text string, limit int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if limit <= 0 {
		limit = MaxMessageLength
	}

	var (
		chunks []string
		cur    []rune
	)
	flush := func() {
		if s := strings.TrimRight(string(cur), "\n"); strings.TrimSpace(s) != "" {
			chunks = append(chunks, s)
		}
		cur = cur[:0]
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		runes := []rune(line)
		if len(cur)+len(runes) <= limit {
			cur = append(cur, runes...)
			continue
		}
		flush()
		// Hard-cut lines longer than the limit
		for len(runes) > limit {
			cur = append(cur, runes[:limit]...)
			flush()
			runes = runes[limit:]
		}
		cur = append(cur, runes...)
	}
	flush()
	return chunks
}
