package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KaanSezen1923/MovieRag/internal/core/model"
)

type mockLLM struct {
	Response   string
	Err        error
	LastSystem string
	LastUser   string
	LastJSON   bool
}

func (m *mockLLM) Generate(ctx context.Context, system, user string, expectJSON bool) (string, error) {
	m.LastSystem = system
	m.LastUser = user
	m.LastJSON = expectJSON
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func TestClassify(t *testing.T) {
	mock := &mockLLM{
		Response: `{"categories": [{"category": "Director", "name": "Christopher Nolan"}]}`,
	}
	c := New(mock)

	result, err := c.Classify(context.Background(), "movies by Christopher Nolan")
	assert.NoError(t, err)
	assert.Equal(t, model.CategoryDirector, result.Category)
	assert.Equal(t, "Christopher Nolan", result.Name)
	assert.True(t, mock.LastJSON, "classifier must request JSON output")
	assert.Equal(t, "movies by Christopher Nolan", mock.LastUser)
}

func TestClassify_FirstCategoryWins(t *testing.T) {
	// Multi-category replies are truncated to the first entry on purpose.
	mock := &mockLLM{
		Response: `{"categories": [
			{"category": "Actor", "name": "Leonardo DiCaprio"},
			{"category": "Movie", "name": "Inception"}
		]}`,
	}
	c := New(mock)

	result, err := c.Classify(context.Background(), "Leonardo DiCaprio in Inception")
	assert.NoError(t, err)
	assert.Equal(t, model.CategoryActor, result.Category)
	assert.Equal(t, "Leonardo DiCaprio", result.Name)
}

func TestClassify_NoCategories(t *testing.T) {
	mock := &mockLLM{Response: `{"categories": []}`}
	c := New(mock)

	_, err := c.Classify(context.Background(), "I'm bored")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestClassify_GarbageResponse(t *testing.T) {
	mock := &mockLLM{Response: "I am not sure what you mean."}
	c := New(mock)

	_, err := c.Classify(context.Background(), "")
	var classErr *ClassificationError
	assert.ErrorAs(t, err, &classErr)
}

func TestClassify_UnknownCategory(t *testing.T) {
	mock := &mockLLM{
		Response: `{"categories": [{"category": "Composer", "name": "Hans Zimmer"}]}`,
	}
	c := New(mock)

	_, err := c.Classify(context.Background(), "Hans Zimmer scores")
	var classErr *ClassificationError
	assert.ErrorAs(t, err, &classErr)
}

func TestClassify_TransportError(t *testing.T) {
	mock := &mockLLM{Err: errors.New("connection refused")}
	c := New(mock)

	_, err := c.Classify(context.Background(), "action movies")
	var classErr *ClassificationError
	assert.ErrorAs(t, err, &classErr)
	assert.Contains(t, err.Error(), "connection refused")
}
