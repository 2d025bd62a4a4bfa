package enricher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/KaanSezen1923/MovieRag/internal/core/common"
	"github.com/KaanSezen1923/MovieRag/internal/core/generator"
	"github.com/KaanSezen1923/MovieRag/internal/llm"
)

const extractionPrompt = `Your task is to extract up to five movie titles from the given text.
Output one title per line and nothing else.
Example output:
Avatar
Avengers: Age of Ultron
Man of Steel
Men in Black 3
Jurassic World`

// ImageResolver resolves a movie title to its stored poster path, nil when
// the store has no match.
type ImageResolver interface {
	ResolveImage(ctx context.Context, title string) (*string, error)
}

// Enricher re-links recommended titles from generated prose back to
// graph-stored poster images. Titles the store does not know stay in the
// result mapped to nil, so callers can tell "no image" from "not attempted".
type Enricher struct {
	LLM    llm.LLMClient
	Images ImageResolver

	// Workers caps the concurrent image lookups; LookupTimeout bounds each
	// one so a slow lookup cannot stall the whole response.
	Workers       int
	LookupTimeout time.Duration
}

func New(llmClient llm.LLMClient, images ImageResolver, workers int, lookupTimeout time.Duration) *Enricher {
	if workers <= 0 {
		workers = 5
	}
	if lookupTimeout <= 0 {
		lookupTimeout = 3 * time.Second
	}
	return &Enricher{
		LLM:           llmClient,
		Images:        images,
		Workers:       workers,
		LookupTimeout: lookupTimeout,
	}
}

// ExtractTitles pulls up to five literal movie titles out of generated prose
// via a narrow LLM call constrained to newline-separated titles.
func (e *Enricher) ExtractTitles(ctx context.Context, text string) ([]string, error) {
	response, err := e.LLM.Generate(ctx, extractionPrompt, text, false)
	if err != nil {
		return nil, &generator.GenerationError{Cause: fmt.Errorf("title extraction: %w", err)}
	}
	return common.SplitTitles(response, generator.RecommendationCount), nil
}

// Enrich extracts titles from the prose and resolves a poster for each.
// Lookups run on a bounded worker pool; individual failures and store
// misses both degrade to nil entries, never to an error.
func (e *Enricher) Enrich(ctx context.Context, text string) (map[string]*string, error) {
	titles, err := e.ExtractTitles(ctx, text)
	if err != nil {
		return nil, err
	}
	return e.ResolveImages(ctx, titles), nil
}

// ResolveImages scatter/gathers image lookups for the given titles.
func (e *Enricher) ResolveImages(ctx context.Context, titles []string) map[string]*string {
	images := make(map[string]*string, len(titles))
	if len(titles) == 0 {
		return images
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, e.Workers)

	for _, title := range titles {
		wg.Add(1)
		go func(title string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			lookupCtx, cancel := context.WithTimeout(ctx, e.LookupTimeout)
			defer cancel()

			path, err := e.Images.ResolveImage(lookupCtx, title)
			if err != nil {
				path = nil
			}

			mu.Lock()
			images[title] = path
			mu.Unlock()
		}(title)
	}

	wg.Wait()
	return images
}
