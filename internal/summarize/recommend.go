package summarize

import (
	"context"
	"fmt"
)

// Compose joins a comparison report with the analysis of it. A failed or
// missing summarizer degrades to an inline error in the analysis section.
func Compose(ctx context.Context, s Summarizer, report string) string {
	analysis := "AI analysis is not configured."
	if s != nil {
		text, err := s.Summarize(ctx, report)
		if err != nil {
			analysis = fmt.Sprintf("Error getting AI analysis: %v", err)
		} else {
			analysis = text
		}
	}
	return fmt.Sprintf("Price Comparison:\n%s\n\nAI Analysis:\n%s", report, analysis)
}
