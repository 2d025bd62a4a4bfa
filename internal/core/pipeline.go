package core

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/KaanSezen1923/MovieRag/internal/config"
	"github.com/KaanSezen1923/MovieRag/internal/core/classifier"
	"github.com/KaanSezen1923/MovieRag/internal/core/enricher"
	"github.com/KaanSezen1923/MovieRag/internal/core/generator"
	"github.com/KaanSezen1923/MovieRag/internal/core/model"
	"github.com/KaanSezen1923/MovieRag/internal/core/retriever"
	"github.com/KaanSezen1923/MovieRag/internal/driver"
	"github.com/KaanSezen1923/MovieRag/internal/llm"
)

// Mode selects the generation output shape for the whole pipeline.
type Mode string

const (
	// ModeConversational produces free-form prose plus post-hoc image
	// enrichment of the mentioned titles. This is the default.
	ModeConversational Mode = "conversational"
	// ModeStructured produces exactly five fixed-shape recommendation
	// records with inline image enrichment.
	ModeStructured Mode = "structured"
)

// SearchResult is the final payload of one pipeline run. Response and Images
// are set in conversational mode, Recommendations in structured mode.
type SearchResult struct {
	Question        string                 `json:"question"`
	Context         []model.MovieRecord    `json:"context"`
	Response        string                 `json:"response,omitempty"`
	Images          map[string]*string     `json:"images,omitempty"`
	Recommendations []model.Recommendation `json:"recommendations,omitempty"`
}

// Pipeline wires classifier -> retriever -> generator -> enricher into the
// single-shot per-query flow. It keeps no cross-request state.
type Pipeline struct {
	Classifier *classifier.Classifier
	Retriever  *retriever.Retriever
	Generator  *generator.Generator
	Enricher   *enricher.Enricher
	Mode       Mode
	Timeout    time.Duration
}

func NewPipeline(d driver.GraphDriver, llmClient llm.LLMClient, cfg *config.Config) *Pipeline {
	ret := retriever.New(d)
	return &Pipeline{
		Classifier: classifier.New(llmClient),
		Retriever:  ret,
		Generator:  generator.New(llmClient),
		Enricher: enricher.New(
			llmClient,
			ret,
			cfg.Pipeline.ImageWorkers,
			time.Duration(cfg.Pipeline.ImageTimeoutSeconds)*time.Second,
		),
		Mode:    Mode(cfg.Pipeline.Mode),
		Timeout: time.Duration(cfg.Pipeline.RequestTimeoutSeconds) * time.Second,
	}
}

// Run executes one user query end to end.
//
// A classifier that finds no category only aborts the structured pipeline:
// conversational generation proceeds with empty context and either asks one
// clarifying question or recommends from world knowledge. A classifier reply
// that cannot be parsed at all is an error in both modes, since it usually
// means the provider is misbehaving.
func (p *Pipeline) Run(ctx context.Context, query string) (*SearchResult, error) {
	result := &SearchResult{Question: query, Context: []model.MovieRecord{}}

	classification, err := p.Classifier.Classify(ctx, query)
	switch {
	case err == nil:
		records, rerr := p.Retriever.Retrieve(ctx, classification)
		if rerr != nil {
			return nil, rerr
		}
		result.Context = records
	case errors.Is(err, classifier.ErrCategoryNotFound):
		if p.Mode == ModeStructured {
			return nil, err
		}
		log.Printf("No category for query %q, generating from world knowledge", query)
	default:
		return nil, err
	}

	if p.Mode == ModeStructured {
		recs, err := p.Generator.GenerateStructured(ctx, query, result.Context)
		if err != nil {
			return nil, err
		}
		p.enrichRecommendations(ctx, recs)
		result.Recommendations = recs
		return result, nil
	}

	response, err := p.Generator.Generate(ctx, query, result.Context)
	if err != nil {
		return nil, err
	}
	result.Response = response

	images, err := p.Enricher.Enrich(ctx, response)
	if err != nil {
		return nil, err
	}
	result.Images = images

	return result, nil
}

// enrichRecommendations resolves posters for structured records in place.
// Misses stay nil; recommendations are still valuable without an image.
func (p *Pipeline) enrichRecommendations(ctx context.Context, recs []model.Recommendation) {
	titles := make([]string, len(recs))
	for i, r := range recs {
		titles[i] = r.Title
	}
	images := p.Enricher.ResolveImages(ctx, titles)
	for i := range recs {
		recs[i].ImagePath = images[recs[i].Title]
	}
}
