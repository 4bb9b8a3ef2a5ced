package port

import "context"

// ReviewResult is the structured outcome of one AI code review.
type ReviewResult struct {
	Score   int      `json:"score"`
	Summary string   `json:"summary"`
	Issues  []string `json:"issues"`
}

// AIProvider abstracts the generative-AI backend used for code review.
// Implementations can target Gemini, OpenAI, or any compatible API.
type AIProvider interface {
	// ModelName returns the identifier of the model being used.
	ModelName() string

	// Analyze reviews a code snippet and scores it 0-100. It never fails:
	// any transport or decode error is absorbed into a degraded result with
	// score 0 and a diagnostic summary, so a report can always be persisted.
	Analyze(ctx context.Context, code string) ReviewResult

	// Fix asks the model to rewrite the code with the listed issues
	// resolved and returns only the corrected source text. Unlike Analyze,
	// failures propagate to the caller.
	Fix(ctx context.Context, code string, issues []string) (string, error)
}
