package contracts

import (
	"context"

	"archdoc/providers/models"
)

// IArchitectureAnalyzer is the contract for the generation-endpoint client.
type IArchitectureAnalyzer interface {
	// Analyze issues exactly one request to the generation endpoint and
	// returns the structured answer. Network and authentication errors
	// propagate; a malformed answer degrades to a result carrying the raw
	// text as narrative.
	Analyze(ctx context.Context, projectSummary string, sampledFiles []models.FileSample) (*models.AnalysisResult, error)
}
