package retriever

import (
	"context"

	"github.com/KaanSezen1923/MovieRag/internal/core/model"
	"github.com/KaanSezen1923/MovieRag/internal/driver"
)

// SimilarityFinder returns up to 10 loosely related movies given a seed
// movie name. Callers only depend on this contract, so the heuristic below
// can be replaced by embedding similarity without touching them.
type SimilarityFinder interface {
	SimilarMovies(ctx context.Context, seedTitle string) ([]model.MovieRecord, error)
}

// OverviewSubstringSimilarity finds movies whose overview contains the seed
// movie's overview as a substring. This is a known-crude heuristic inherited
// from the ingestion-time data model; in practice it mostly returns the seed
// itself plus movies sharing boilerplate overview text.
type OverviewSubstringSimilarity struct {
	Driver driver.GraphDriver
}

func (s *OverviewSubstringSimilarity) SimilarMovies(ctx context.Context, seedTitle string) ([]model.MovieRecord, error) {
	result, err := s.Driver.ExecuteQuery(ctx, driver.SimilarMoviesQuery, map[string]interface{}{
		"param": seedTitle,
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
