package ai

import "context"

// Generator produces raw text from a system instruction and a user message.
// Provider packages (gemini) implement it; the outreach layer consumes it.
type Generator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}
