package services

import (
	"context"

	"github.com/ali1k/mcp-query-assistant/internal/core/domain"
	"github.com/ali1k/mcp-query-assistant/internal/logger"
)

// defaultExamples seed a fresh deployment so a similarity query never runs
// against an empty training set on first use.
var defaultExamples = []struct {
	question    string
	answerQuery string
	meta        domain.Metadata
}{
	{
		question:    "How many users are in the system?",
		answerQuery: "MATCH (u:User) RETURN count(u) AS userCount",
		meta:        domain.Metadata{Domain: "users", Complexity: domain.ComplexitySimple},
	},
	{
		question:    "List the five most recent orders",
		answerQuery: "MATCH (o:Order) RETURN o ORDER BY o.createdAt DESC LIMIT 5",
		meta:        domain.Metadata{Domain: "orders", Complexity: domain.ComplexitySimple},
	},
	{
		question:    "Which products have never been ordered?",
		answerQuery: "MATCH (p:Product) WHERE NOT (p)<-[:CONTAINS]-(:Order) RETURN p.name",
		meta:        domain.Metadata{Domain: "products", Complexity: domain.ComplexityMedium},
	},
}

// seed inserts the built-in examples through the normal add path so each one
// is embedded and indexed. Failures are logged, not fatal: a deployment
// without an API key simply starts with an empty training set.
func (c *IndexCoordinator) seed(ctx context.Context) {
	if c.embedder == nil {
		logger.Info("Skipping default seeding: embedding service unavailable")
		return
	}

	for _, seed := range defaultExamples {
		if _, err := c.Add(ctx, seed.question, seed.answerQuery, seed.meta); err != nil {
			logger.Warn("Seeding example %q failed: %v", seed.question, err)
			return
		}
	}
	logger.Info("Seeded %d default examples", len(defaultExamples))
}
