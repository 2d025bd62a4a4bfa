package classifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/KaanSezen1923/MovieRag/internal/core/common"
	"github.com/KaanSezen1923/MovieRag/internal/core/model"
	"github.com/KaanSezen1923/MovieRag/internal/llm"
)

// ErrCategoryNotFound means the model answered but named no category.
// The user should be more specific.
var ErrCategoryNotFound = errors.New("category not found, please be more specific")

// ClassificationError wraps a malformed or unparseable classifier response.
type ClassificationError struct {
	Cause error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("failed to classify query: %v", e.Cause)
}

func (e *ClassificationError) Unwrap() error { return e.Cause }

// categoryPrompt enumerates the closed taxonomy with the example vocabulary
// the movie graph was ingested with, and demands strict JSON.
const categoryPrompt = `Analyze the user query and categorize the mentioned term(s) into one or more of the following categories:

- "Director" (e.g., Christopher Nolan, Quentin Tarantino)
- "Actor" (e.g., Leonardo DiCaprio, Tom Hanks)
- "Genre" (e.g., 'Action', 'Adventure', 'Fantasy', 'Science Fiction', 'Crime', 'Drama', 'Thriller', 'Animation', 'Family', 'Western', 'Comedy', 'Romance', 'Horror', 'Mystery', 'History', 'War', 'Music', 'Documentary', 'Foreign', 'TV Movie')
- "Keyword" (e.g., 'culture clash', 'future', 'space war', 'space colony', 'society', 'space travel', 'futuristic', 'romance', 'space', 'alien', 'tribe', 'alien planet', 'cgi', 'marine', 'soldier', 'battle', 'love affair', 'anti war', 'spy', 'based on novel', 'secret agent', 'sequel', 'dc comics', 'crime fighter', 'terrorist', 'secret identity', 'superhero', 'revenge', 'hostage', 'magic', 'fairy tale', 'musical', 'animation', 'based on comic book', 'superhero team', 'marvel cinematic universe', 'witch', 'vampire', 'werewolf', 'super powers')
- "Movie" (e.g., Inception, Interstellar)

Return the results in JSON format like this:
{
    "categories": [
        {"category": "Director", "name": "Christopher Nolan"}
    ]
}

If the query names no director, actor, genre, keyword or movie at all, return {"categories": []}.`

// Classifier maps free-form user text onto the category taxonomy via one
// JSON-mode LLM call.
type Classifier struct {
	LLM llm.LLMClient
}

func New(llmClient llm.LLMClient) *Classifier {
	return &Classifier{LLM: llmClient}
}

// Classify returns the first (category, name) pair the model identifies.
// Multi-category queries are deliberately truncated to the first match.
// An empty categories list surfaces ErrCategoryNotFound; anything
// unparseable or outside the taxonomy is a ClassificationError.
func (c *Classifier) Classify(ctx context.Context, userText string) (model.Classification, error) {
	var zero model.Classification

	response, err := c.LLM.Generate(ctx, categoryPrompt, userText, true)
	if err != nil {
		return zero, &ClassificationError{Cause: err}
	}

	parsed, err := common.ParseJSON[model.ClassifierResponse](response)
	if err != nil {
		return zero, &ClassificationError{Cause: err}
	}

	if len(parsed.Categories) == 0 {
		return zero, ErrCategoryNotFound
	}

	first := parsed.Categories[0]
	if !first.Category.Valid() {
		return zero, &ClassificationError{
			Cause: fmt.Errorf("unknown category %q", first.Category),
		}
	}

	return first, nil
}
