package driver

// Category lookup queries. All name fragments arrive as bound parameters,
// matched case-insensitively as substrings, capped at 10 movies.
const (
	MoviesByActorQuery = `
		MATCH (a:Actor)-[:ACTED_IN]->(m:Movie)
		WHERE toLower(a.name) CONTAINS toLower($param)
		RETURN m.movie_id AS movie_id, m.title AS title, m.overview AS overview,
		       m.genres AS genres, m.actors AS actors, m.director AS director,
		       m.vote_average AS vote_average, m.image_path AS image_path
		LIMIT 10
	`

	MoviesByDirectorQuery = `
		MATCH (d:Director)-[:DIRECTED]->(m:Movie)
		WHERE toLower(d.name) CONTAINS toLower($param)
		RETURN m.movie_id AS movie_id, m.title AS title, m.overview AS overview,
		       m.genres AS genres, m.actors AS actors, m.director AS director,
		       m.vote_average AS vote_average, m.image_path AS image_path
		LIMIT 10
	`

	MoviesByGenreQuery = `
		MATCH (g:Genre)-[:HAS_GENRE]->(m:Movie)
		WHERE toLower(g.name) CONTAINS toLower($param)
		RETURN m.movie_id AS movie_id, m.title AS title, m.overview AS overview,
		       m.genres AS genres, m.actors AS actors, m.director AS director,
		       m.vote_average AS vote_average, m.image_path AS image_path
		LIMIT 10
	`

	MoviesByKeywordQuery = `
		MATCH (k:Keyword)-[:HAS_KEYWORD]->(m:Movie)
		WHERE toLower(k.name) CONTAINS toLower($param)
		RETURN m.movie_id AS movie_id, m.title AS title, m.overview AS overview,
		       m.genres AS genres, m.actors AS actors, m.director AS director,
		       m.vote_average AS vote_average, m.image_path AS image_path
		LIMIT 10
	`

	// SimilarMoviesQuery finds the named seed movie, then other movies whose
	// overview contains the seed's overview as a substring. Crude, but the
	// contract is only "up to 10 loosely related movies given a seed".
	SimilarMoviesQuery = `
		MATCH (m:Movie)
		WHERE toLower(m.title) CONTAINS toLower($param)
		WITH m
		MATCH (similar:Movie)
		WHERE toLower(similar.overview) CONTAINS toLower(m.overview)
		RETURN similar.movie_id AS movie_id, similar.title AS title,
		       similar.overview AS overview, similar.vote_average AS vote_average
		LIMIT 10
	`

	// MovieImageQuery resolves a recommended title back to a stored poster.
	// Exact match, case-insensitive; zero rows means no image, not an error.
	MovieImageQuery = `
		MATCH (m:Movie)
		WHERE toLower(m.title) = toLower($title)
		RETURN m.image_path AS image_path
		LIMIT 1
	`
)
