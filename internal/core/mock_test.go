package core

import (
	"context"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// MockDriver records every executed query and serves canned results keyed by
// query text, so tests can assert exactly which pattern each stage ran.
// Image lookups arrive concurrently from the enricher, hence the mutex.
type MockDriver struct {
	mu      sync.Mutex
	Queries []string
	Params  []map[string]interface{}
	Results map[string]neo4j.EagerResult
	Err     error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queries = append(m.Queries, query)
	m.Params = append(m.Params, params)
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	if res, ok := m.Results[query]; ok {
		return res, nil
	}
	return neo4j.EagerResult{}, nil
}

func (m *MockDriver) EnsureIndexes(ctx context.Context) error { return nil }
func (m *MockDriver) Close(ctx context.Context) error         { return nil }

// MockLLM serves queued responses in order: one pipeline run consumes one
// classifier reply, one generation reply and (conversational mode) one
// extraction reply.
type MockLLM struct {
	ResponseQueue []string
	Err           error
	Systems       []string
	Users         []string
}

func (m *MockLLM) Generate(ctx context.Context, system, user string, expectJSON bool) (string, error) {
	m.Systems = append(m.Systems, system)
	m.Users = append(m.Users, user)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) == 0 {
		return "", nil
	}
	resp := m.ResponseQueue[0]
	m.ResponseQueue = m.ResponseQueue[1:]
	return resp, nil
}

func movieRow(id, title, overview string, rating float64, image interface{}) *neo4j.Record {
	return &neo4j.Record{
		Keys: []string{"movie_id", "title", "overview", "genres", "actors", "director", "vote_average", "image_path"},
		Values: []interface{}{
			id, title, overview,
			[]interface{}{"Science Fiction"},
			[]interface{}{"Leading Actor"},
			"Christopher Nolan", rating, image,
		},
	}
}
