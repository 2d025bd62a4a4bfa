package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KaanSezen1923/MovieRag/internal/config"
	"github.com/KaanSezen1923/MovieRag/internal/core"
	"github.com/KaanSezen1923/MovieRag/internal/core/classifier"
	"github.com/KaanSezen1923/MovieRag/internal/driver"
	"github.com/KaanSezen1923/MovieRag/internal/llm"
)

type Server struct {
	Pipeline *core.Pipeline
	Driver   driver.GraphDriver
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Falling back to environment configuration", cfgPath, err)
		cfg = config.Default()
	}
	applyEnvOverrides(cfg)

	d, err := driver.NewNeo4jDriver(cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password)
	if err != nil {
		log.Fatalf("Failed to connect to Neo4j: %v", err)
	}
	if err := d.EnsureIndexes(context.Background()); err != nil {
		log.Printf("Warning: could not ensure indexes: %v", err)
	}

	llmClient, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	return &Server{
		Pipeline: core.NewPipeline(d, llmClient, cfg),
		Driver:   d,
	}
}

func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("NEO4J_URI"); v != "" {
		cfg.Neo4j.URI = v
	}
	if v := os.Getenv("NEO4J_USER"); v != "" {
		cfg.Neo4j.User = v
	}
	if v := os.Getenv("NEO4J_PASSWORD"); v != "" {
		cfg.Neo4j.Password = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("PIPELINE_MODE"); v != "" {
		cfg.Pipeline.Mode = v
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(requestID())

	r.GET("/movies/search/:query", s.SearchMovies)

	return r
}

// requestID tags each request for log correlation.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) SearchMovies(c *gin.Context) {
	query := c.Param("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Query must not be empty"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.Pipeline.Timeout)
	defer cancel()

	result, err := s.Pipeline.Run(ctx, query)
	if err != nil {
		s.writeError(c, query, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// writeError maps pipeline failures onto the stable {detail} envelope.
// Causes are logged with the request id but never leaked to the caller.
func (s *Server) writeError(c *gin.Context, query string, err error) {
	reqID, _ := c.Get("request_id")
	log.Printf("[%v] search %q failed: %v", reqID, query, err)

	var classErr *classifier.ClassificationError
	switch {
	case errors.Is(err, classifier.ErrCategoryNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Category not found. Please be more specific."})
	case errors.As(err, &classErr):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Could not understand the query. Please rephrase."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
	}
}

// Close releases the shared graph driver.
func (s *Server) Close(ctx context.Context) error {
	return s.Driver.Close(ctx)
}
