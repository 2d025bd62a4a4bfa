package llm

import (
	"context"
)

// LLMClient is the one contract the pipeline has with a language model:
// send a system instruction plus a user message, get text back. expectJSON
// switches the provider into structured-output mode where supported.
type LLMClient interface {
	Generate(ctx context.Context, systemInstruction, userMessage string, expectJSON bool) (string, error)
}
