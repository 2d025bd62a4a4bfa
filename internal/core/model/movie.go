package model

import "fmt"

// Category routes a classified query to a graph traversal.
type Category string

const (
	CategoryDirector Category = "Director"
	CategoryActor    Category = "Actor"
	CategoryGenre    Category = "Genre"
	CategoryKeyword  Category = "Keyword"
	CategoryMovie    Category = "Movie"
)

// Valid reports whether c is one of the five known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryDirector, CategoryActor, CategoryGenre, CategoryKeyword, CategoryMovie:
		return true
	}
	return false
}

// Classification is a single (category, name) pair extracted from user text.
// The classifier may detect several; only the first is acted upon.
type Classification struct {
	Category Category `json:"category"`
	Name     string   `json:"name"`
}

// ClassifierResponse matches the JSON shape the classifier prompt demands.
type ClassifierResponse struct {
	Categories []Classification `json:"categories"`
}

// MovieRecord is the uniform shape retrieval normalizes graph rows into.
// The similarity query for the Movie category only populates MovieID, Title,
// Overview and VoteAverage; the remaining fields stay zero-valued.
type MovieRecord struct {
	MovieID     string   `json:"movie_id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	Genres      []string `json:"genres,omitempty"`
	Actors      []string `json:"actors,omitempty"`
	Director    string   `json:"director,omitempty"`
	VoteAverage float64  `json:"vote_average"`
	ImagePath   *string  `json:"image_path"`
}

// ContextString serializes retrieved records for embedding into an LLM prompt.
func ContextString(records []MovieRecord) string {
	if len(records) == 0 {
		return "(no database results)"
	}
	out := ""
	for _, r := range records {
		out += fmt.Sprintf("- %s (rating %.1f): %s\n", r.Title, r.VoteAverage, r.Overview)
	}
	return out
}

// Recommendation is one entry of the structured generation output.
// VoteAverage stays a string because the model echoes it back as text.
type Recommendation struct {
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	Genres      []string `json:"genres"`
	Actors      []string `json:"actors"`
	Director    string   `json:"director"`
	VoteAverage string   `json:"vote_average"`
	Reason      string   `json:"reason"`
	ImagePath   *string  `json:"image_path"`
}
