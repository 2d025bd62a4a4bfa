package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaanSezen1923/MovieRag/internal/core/model"
)

type mockLLM struct {
	Responses []string
	Err       error
	Calls     int
	Systems   []string
	JSONModes []bool
}

func (m *mockLLM) Generate(ctx context.Context, system, user string, expectJSON bool) (string, error) {
	m.Calls++
	m.Systems = append(m.Systems, system)
	m.JSONModes = append(m.JSONModes, expectJSON)
	if m.Err != nil {
		return "", m.Err
	}
	resp := m.Responses[0]
	if len(m.Responses) > 1 {
		m.Responses = m.Responses[1:]
	}
	return resp, nil
}

const validStructured = `[
	{"title": "Inception", "overview": "A thief steals secrets through dreams.", "genres": ["Science Fiction"], "actors": ["Leonardo DiCaprio"], "director": "Christopher Nolan", "vote_average": "8.3", "reason": "Mind-bending like your query."},
	{"title": "Interstellar", "overview": "Explorers travel through a wormhole.", "genres": ["Science Fiction"], "actors": ["Matthew McConaughey"], "director": "Christopher Nolan", "vote_average": "8.4", "reason": "Epic space drama."},
	{"title": "The Prestige", "overview": "Rival magicians push each other too far.", "genres": ["Drama"], "actors": ["Hugh Jackman"], "director": "Christopher Nolan", "vote_average": "8.0", "reason": "Twisty and clever."},
	{"title": "Memento", "overview": "A man with no short-term memory hunts a killer.", "genres": ["Thriller"], "actors": ["Guy Pearce"], "director": "Christopher Nolan", "vote_average": "8.2", "reason": "Told backwards."},
	{"title": "Dunkirk", "overview": "Allied soldiers are evacuated under fire.", "genres": ["War"], "actors": ["Fionn Whitehead"], "director": "Christopher Nolan", "vote_average": "7.9", "reason": "Tense and immersive."}
]`

func TestGenerate_Conversational(t *testing.T) {
	mock := &mockLLM{Responses: []string{"Here are some picks for you! 1. Inception..."}}
	g := New(mock)

	out, err := g.Generate(context.Background(), "something mind-bending", []model.MovieRecord{
		{Title: "Inception", Overview: "Dream heist.", VoteAverage: 8.3},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Inception")
	assert.False(t, mock.JSONModes[0], "conversational mode must not request JSON")
	assert.Contains(t, mock.Systems[0], "Inception", "context must be serialized into the prompt")
	assert.Contains(t, mock.Systems[0], "rating 8.3")
}

func TestGenerate_EmptyContextStillGenerates(t *testing.T) {
	mock := &mockLLM{Responses: []string{"Feeling adventurous? Try these..."}}
	g := New(mock)

	out, err := g.Generate(context.Background(), "I'm bored", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Contains(t, mock.Systems[0], "(no database results)")
}

func TestGenerate_TransportError(t *testing.T) {
	mock := &mockLLM{Err: errors.New("deadline exceeded")}
	g := New(mock)

	_, err := g.Generate(context.Background(), "anything", nil)
	var genErr *GenerationError
	assert.ErrorAs(t, err, &genErr)
}

func TestGenerateStructured(t *testing.T) {
	mock := &mockLLM{Responses: []string{`{"recommendations": ` + validStructured + `}`}}
	g := New(mock)

	recs, err := g.GenerateStructured(context.Background(), "Nolan movies", nil)
	require.NoError(t, err)
	require.Len(t, recs, RecommendationCount)
	assert.Equal(t, "Inception", recs[0].Title)
	assert.Equal(t, "8.3", recs[0].VoteAverage)
	assert.Equal(t, 1, mock.Calls)
	assert.True(t, mock.JSONModes[0])
	assert.Contains(t, mock.Systems[0], `{"recommendations":`, "prompt must demand the object wrapper")
}

func TestGenerateStructured_BareArrayStillAccepted(t *testing.T) {
	// Models that drop the {"recommendations": ...} wrapper and emit the
	// bare array are tolerated.
	mock := &mockLLM{Responses: []string{validStructured}}
	g := New(mock)

	recs, err := g.GenerateStructured(context.Background(), "Nolan movies", nil)
	require.NoError(t, err)
	assert.Len(t, recs, RecommendationCount)
	assert.Equal(t, 1, mock.Calls)
}

func TestGenerateStructured_WrongLengthRetriesOnce(t *testing.T) {
	short := `[{"title": "Inception", "overview": "o", "genres": [], "actors": [], "director": "Nolan", "vote_average": "8.3", "reason": "r"}]`
	mock := &mockLLM{Responses: []string{short, validStructured}}
	g := New(mock)

	recs, err := g.GenerateStructured(context.Background(), "Nolan movies", nil)
	require.NoError(t, err)
	assert.Len(t, recs, RecommendationCount)
	assert.Equal(t, 2, mock.Calls, "one retry after a shape violation")
}

func TestGenerateStructured_SchemaViolationAfterRetry(t *testing.T) {
	short := `[{"title": "Inception", "overview": "o", "genres": [], "actors": [], "director": "Nolan", "vote_average": "8.3", "reason": "r"}]`
	mock := &mockLLM{Responses: []string{short}}
	g := New(mock)

	_, err := g.GenerateStructured(context.Background(), "Nolan movies", nil)
	var schemaErr *SchemaViolation
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, 2, mock.Calls, "exactly one retry, no more")
}

func TestGenerateStructured_MissingFieldIsViolation(t *testing.T) {
	// Five records but the third has no director.
	bad := `[
		{"title": "A", "overview": "o", "genres": [], "actors": [], "director": "d", "vote_average": "7.0", "reason": "r"},
		{"title": "B", "overview": "o", "genres": [], "actors": [], "director": "d", "vote_average": "7.0", "reason": "r"},
		{"title": "C", "overview": "o", "genres": [], "actors": [], "director": "", "vote_average": "7.0", "reason": "r"},
		{"title": "D", "overview": "o", "genres": [], "actors": [], "director": "d", "vote_average": "7.0", "reason": "r"},
		{"title": "E", "overview": "o", "genres": [], "actors": [], "director": "d", "vote_average": "7.0", "reason": "r"}
	]`
	mock := &mockLLM{Responses: []string{bad}}
	g := New(mock)

	_, err := g.GenerateStructured(context.Background(), "anything", nil)
	var schemaErr *SchemaViolation
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Detail, "missing required fields")
}

func TestGenerateStructured_MissingRatingIsViolation(t *testing.T) {
	// Five otherwise-complete records, but the second has no vote_average.
	bad := `{"recommendations": [
		{"title": "A", "overview": "o", "genres": ["Drama"], "actors": ["x"], "director": "d", "vote_average": "7.0", "reason": "r"},
		{"title": "B", "overview": "o", "genres": ["Drama"], "actors": ["x"], "director": "d", "reason": "r"},
		{"title": "C", "overview": "o", "genres": ["Drama"], "actors": ["x"], "director": "d", "vote_average": "7.0", "reason": "r"},
		{"title": "D", "overview": "o", "genres": ["Drama"], "actors": ["x"], "director": "d", "vote_average": "7.0", "reason": "r"},
		{"title": "E", "overview": "o", "genres": ["Drama"], "actors": ["x"], "director": "d", "vote_average": "7.0", "reason": "r"}
	]}`
	mock := &mockLLM{Responses: []string{bad}}
	g := New(mock)

	_, err := g.GenerateStructured(context.Background(), "anything", nil)
	var schemaErr *SchemaViolation
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Detail, "missing required fields")
	assert.Equal(t, 2, mock.Calls, "one retry before giving up")
}

func TestGenerateStructured_AbsentListsAreViolation(t *testing.T) {
	// genres/actors must be present as arrays; an omitted key unmarshals to
	// a nil slice and is rejected, while an explicit empty array passes.
	bad := `{"recommendations": [
		{"title": "A", "overview": "o", "actors": ["x"], "director": "d", "vote_average": "7.0", "reason": "r"},
		{"title": "B", "overview": "o", "genres": ["Drama"], "actors": ["x"], "director": "d", "vote_average": "7.0", "reason": "r"},
		{"title": "C", "overview": "o", "genres": ["Drama"], "actors": ["x"], "director": "d", "vote_average": "7.0", "reason": "r"},
		{"title": "D", "overview": "o", "genres": ["Drama"], "actors": ["x"], "director": "d", "vote_average": "7.0", "reason": "r"},
		{"title": "E", "overview": "o", "genres": ["Drama"], "actors": ["x"], "director": "d", "vote_average": "7.0", "reason": "r"}
	]}`
	mock := &mockLLM{Responses: []string{bad}}
	g := New(mock)

	_, err := g.GenerateStructured(context.Background(), "anything", nil)
	var schemaErr *SchemaViolation
	assert.ErrorAs(t, err, &schemaErr)
}

func TestGenerateStructured_TransportErrorNotRetried(t *testing.T) {
	mock := &mockLLM{Err: errors.New("connection refused")}
	g := New(mock)

	_, err := g.GenerateStructured(context.Background(), "anything", nil)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, 1, mock.Calls, "transport failures are not retried")
}
