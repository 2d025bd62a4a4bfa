package retriever

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/KaanSezen1923/MovieRag/internal/core/model"
	"github.com/KaanSezen1923/MovieRag/internal/driver"
)

// StoreUnavailableError wraps a graph backend failure. Fatal for the request.
type StoreUnavailableError struct {
	Cause error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("graph store unavailable: %v", e.Cause)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Cause }

// queryByCategory binds each entity category to exactly one Cypher pattern.
// The taxonomy is a closed set, so this table is fixed at compile time; the
// Movie category goes through the SimilarityFinder seam instead.
var queryByCategory = map[model.Category]string{
	model.CategoryActor:    driver.MoviesByActorQuery,
	model.CategoryDirector: driver.MoviesByDirectorQuery,
	model.CategoryGenre:    driver.MoviesByGenreQuery,
	model.CategoryKeyword:  driver.MoviesByKeywordQuery,
}

// Retriever executes the category-bound lookup and normalizes rows into
// MovieRecords. It is stateless; all state lives in the graph.
type Retriever struct {
	Driver     driver.GraphDriver
	Similarity SimilarityFinder
}

func New(d driver.GraphDriver) *Retriever {
	return &Retriever{
		Driver:     d,
		Similarity: &OverviewSubstringSimilarity{Driver: d},
	}
}

// Retrieve runs the query bound to the classification's category. Zero rows
// is a valid outcome and returns an empty slice: the generator can still
// recommend from world knowledge.
func (r *Retriever) Retrieve(ctx context.Context, c model.Classification) ([]model.MovieRecord, error) {
	if c.Category == model.CategoryMovie {
		return r.Similarity.SimilarMovies(ctx, c.Name)
	}

	query, ok := queryByCategory[c.Category]
	if !ok {
		return nil, fmt.Errorf("no query bound to category %q", c.Category)
	}

	result, err := r.Driver.ExecuteQuery(ctx, query, map[string]interface{}{
		"param": c.Name,
	})
	if err != nil {
		return nil, &StoreUnavailableError{Cause: err}
	}

	records := make([]model.MovieRecord, 0, len(result.Records))
	for _, rec := range result.Records {
		records = append(records, recordFromRow(rec))
	}
	return records, nil
}

// ResolveImage looks up a movie poster by exact, case-insensitive title.
// A missing title resolves to nil, never an error.
func (r *Retriever) ResolveImage(ctx context.Context, title string) (*string, error) {
	result, err := r.Driver.ExecuteQuery(ctx, driver.MovieImageQuery, map[string]interface{}{
		"title": title,
	})
	if err != nil {
		return nil, &StoreUnavailableError{Cause: err}
	}
	if len(result.Records) == 0 {
		return nil, nil
	}
	if v, found := result.Records[0].Get("image_path"); found {
		if s, ok := v.(string); ok && s != "" {
			return &s, nil
		}
	}
	return nil, nil
}

func recordFromRow(rec *neo4j.Record) model.MovieRecord {
	m := model.MovieRecord{
		MovieID:  stringValue(rec, "movie_id"),
		Title:    stringValue(rec, "title"),
		Overview: stringValue(rec, "overview"),
		Genres:   stringListValue(rec, "genres"),
		Actors:   stringListValue(rec, "actors"),
		Director: stringValue(rec, "director"),
	}
	if v, found := rec.Get("vote_average"); found {
		switch n := v.(type) {
		case float64:
			m.VoteAverage = n
		case int64:
			m.VoteAverage = float64(n)
		}
	}
	if v, found := rec.Get("image_path"); found {
		if s, ok := v.(string); ok && s != "" {
			m.ImagePath = &s
		}
	}
	return m
}

func stringValue(rec *neo4j.Record, key string) string {
	if v, found := rec.Get(key); found {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func stringListValue(rec *neo4j.Record, key string) []string {
	v, found := rec.Get(key)
	if !found {
		return nil
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
