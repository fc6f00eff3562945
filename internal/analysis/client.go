package analysis

import "context"

// Client is the menu-analysis contract handlers depend on. The Gemini
// implementation satisfies it in production; tests use a fake.
type Client interface {
	AnalyzeImage(ctx context.Context, image []byte) (Outcome, error)
	AnalyzeText(ctx context.Context, items []string) (Outcome, error)
}
