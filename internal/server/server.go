package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"

	"github.com/genre-guide/graphql-api/config"
)

// Server handles HTTP requests for the genre catalog GraphQL API
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	schema graphql.Schema
}

// New creates a new HTTP server instance around a built schema
func New(cfg *config.Config, schema graphql.Schema) *Server {
	router := gin.Default()

	server := &Server{
		cfg:    cfg,
		router: router,
		schema: schema,
	}

	server.setupRoutes(router)
	return server
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes(router *gin.Engine) {
	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/health", s.healthCheck)

	router.POST("/graphql", s.handleGraphQL)
}

// Start starts the HTTP server
func (s *Server) Start(port string) error {
	return s.router.Run(":" + port)
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":    "ok",
		"timestamp": time.Now(),
		"service":   "genre-guide-graphql-api",
	})
}

// graphQLRequest is the standard GraphQL-over-HTTP POST body
type graphQLRequest struct {
	Query         string                 `json:"query" binding:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// handleGraphQL executes a GraphQL query against the catalog schema
func (s *Server) handleGraphQL(c *gin.Context) {
	var req graphQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Request.Context(),
	})

	// Field errors ride along in the result body; HTTP stays 200 so that
	// partial data is still usable by clients.
	c.JSON(200, result)
}
