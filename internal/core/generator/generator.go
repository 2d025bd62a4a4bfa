package generator

import (
	"context"
	"fmt"

	"github.com/KaanSezen1923/MovieRag/internal/core/common"
	"github.com/KaanSezen1923/MovieRag/internal/core/model"
	"github.com/KaanSezen1923/MovieRag/internal/llm"
)

// GenerationError wraps an LLM transport failure or timeout. The caller gets
// a single internal-error response, never partial results.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate recommendations: %v", e.Cause)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// SchemaViolation means structured output did not match the required shape
// even after the single retry.
type SchemaViolation struct {
	Detail string
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("recommendation output violated required schema: %s", e.Detail)
}

// RecommendationCount is the exact number of records structured mode must
// produce, and the cap on titles extracted from conversational prose.
const RecommendationCount = 5

const conversationalPrompt = `You are MovieRag, a warm, friendly and empathetic movie recommendation chatbot that acts like the user's best friend. Your goal is to recommend 3-5 movies tailored to their interests and mood in a concise, engaging chat, avoiding unnecessary questions.

How to respond:
1. If the user mentioned a specific genre, director, actor, keyword or movie, use it together with the database results below to suggest relevant movies immediately. Do not ask for clarification.
2. If the input is vague (e.g. "I'm bored", "I don't know"), infer the mood (boredom -> fun or uplifting movies) and ask at most ONE clarifying question. Never ask more than one.
3. Reflect the user's emotions warmly (e.g. "Feeling stressed? Let's find something relaxing!").
4. Seamlessly incorporate the database results into your suggestions without breaking the conversational flow. If the results are empty, recommend from your own knowledge instead.
5. Suggest 3-5 movies, each with:
   - Title
   - Director
   - Main actors
   - Short summary (2-3 sentences)
   - Why it fits the user's mood or request
6. Pick one movie as the "star of the day" and explain why it is perfect for the user.
7. Keep the tone relaxed and fun, like chatting over coffee. Avoid formal language.

Database results for this query:
%s`

const structuredPrompt = `You are MovieRag, a movie recommendation engine. Using the user's query and the database results below, recommend movies.

Respond with a JSON object of the form {"recommendations": [...]} and nothing else, where "recommendations" is an array of EXACTLY 5 recommendation objects. Each object must have exactly these fields:
  "title": string
  "overview": string, 2-3 sentence summary
  "genres": array of strings
  "actors": array of strings, main cast
  "director": string
  "vote_average": string, rating with one decimal (e.g. "8.4")
  "reason": string, why this movie fits the user's query

Ground your picks in the database results when they are relevant; fall back to well-known movies when the results are empty or thin.

Database results for this query:
%s`

// Generator produces recommendations from user text plus retrieved context.
// Retrieval augments generation, it never gates it: empty context simply
// means the model answers from world knowledge.
type Generator struct {
	LLM llm.LLMClient
}

func New(llmClient llm.LLMClient) *Generator {
	return &Generator{LLM: llmClient}
}

// Generate produces free-flowing conversational recommendations.
func (g *Generator) Generate(ctx context.Context, userText string, records []model.MovieRecord) (string, error) {
	system := fmt.Sprintf(conversationalPrompt, model.ContextString(records))
	response, err := g.LLM.Generate(ctx, system, userText, false)
	if err != nil {
		return "", &GenerationError{Cause: err}
	}
	return response, nil
}

// GenerateStructured produces exactly RecommendationCount records. A reply
// that parses but has the wrong shape is retried once with the same prompt;
// a second bad shape is a SchemaViolation.
func (g *Generator) GenerateStructured(ctx context.Context, userText string, records []model.MovieRecord) ([]model.Recommendation, error) {
	system := fmt.Sprintf(structuredPrompt, model.ContextString(records))

	var lastDetail string
	for attempt := 0; attempt < 2; attempt++ {
		response, err := g.LLM.Generate(ctx, system, userText, true)
		if err != nil {
			return nil, &GenerationError{Cause: err}
		}

		recs, detail := parseRecommendations(response)
		if detail == "" {
			return recs, nil
		}
		lastDetail = detail
	}

	return nil, &SchemaViolation{Detail: lastDetail}
}

// recommendationEnvelope is the wrapper the structured prompt demands. The
// object wrapper (rather than a bare array) keeps provider JSON modes happy:
// OpenAI's response_format only permits a top-level object.
type recommendationEnvelope struct {
	Recommendations []model.Recommendation `json:"recommendations"`
}

// parseRecommendations validates shape and required fields. It returns a
// non-empty detail string on any violation.
func parseRecommendations(response string) ([]model.Recommendation, string) {
	var recs []model.Recommendation
	if env, err := common.ParseJSON[recommendationEnvelope](response); err == nil && env.Recommendations != nil {
		recs = env.Recommendations
	} else {
		// Some models drop the wrapper and emit the bare array.
		var arrErr error
		recs, arrErr = common.ParseJSON[[]model.Recommendation](response)
		if arrErr != nil {
			return nil, arrErr.Error()
		}
	}

	if len(recs) != RecommendationCount {
		return nil, fmt.Sprintf("expected %d recommendations, got %d", RecommendationCount, len(recs))
	}
	for i, r := range recs {
		if r.Title == "" || r.Overview == "" || r.Director == "" || r.Reason == "" || r.VoteAverage == "" {
			return nil, fmt.Sprintf("recommendation %d is missing required fields", i)
		}
		if r.Genres == nil || r.Actors == nil {
			return nil, fmt.Sprintf("recommendation %d is missing required fields", i)
		}
	}
	return recs, ""
}
