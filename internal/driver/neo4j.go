package driver

import (
	"context"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jDriver holds the one long-lived driver for the process. Each call to
// ExecuteQuery runs in its own session, released on completion or error.
type Neo4jDriver struct {
	Driver neo4j.DriverWithContext
}

func NewNeo4jDriver(uri, username, password string) (*Neo4jDriver, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		return nil, fmt.Errorf("graph store unreachable at %s: %w", uri, err)
	}

	log.Println("Connected to Neo4j")
	return &Neo4jDriver{Driver: driver}, nil
}

func (d *Neo4jDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *Neo4jDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

// EnsureIndexes creates lookup indexes for the movie graph. Failures are
// logged and skipped since the index may already exist or the server may
// lack the privilege; queries still work without them.
func (d *Neo4jDriver) EnsureIndexes(ctx context.Context) error {
	queries := []string{
		"CREATE INDEX movie_id IF NOT EXISTS FOR (m:Movie) ON (m.movie_id)",
		"CREATE INDEX movie_title IF NOT EXISTS FOR (m:Movie) ON (m.title)",
		"CREATE INDEX actor_name IF NOT EXISTS FOR (a:Actor) ON (a.name)",
		"CREATE INDEX director_name IF NOT EXISTS FOR (d:Director) ON (d.name)",
		"CREATE INDEX genre_name IF NOT EXISTS FOR (g:Genre) ON (g.name)",
		"CREATE INDEX keyword_name IF NOT EXISTS FOR (k:Keyword) ON (k.name)",
	}

	for _, q := range queries {
		if _, err := d.ExecuteQuery(ctx, q, nil); err != nil {
			log.Printf("Warning: failed to create index '%s': %v", q, err)
		}
	}

	return nil
}
