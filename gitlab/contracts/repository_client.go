package contracts

import (
	"context"

	"archdoc/gitlab/models"
)

// IRepositoryClient is the contract for the hosting-provider client.
type IRepositoryClient interface {
	// Project returns the project resolved at construction time.
	Project() *models.Project

	// ResolveDefaultBranch returns the project's configured default branch,
	// or the supplied fallback if the provider reports none.
	ResolveDefaultBranch(fallback string) string

	// ListTree retrieves the full recursive tree for a branch, paging until
	// the provider returns an empty page or the safety cap is reached.
	ListTree(ctx context.Context, branch string) ([]models.TreeEntry, error)

	// FetchFile retrieves one file's decoded text content. The second return
	// is false on any retrieval or decode failure; such files are simply
	// excluded from the sample set.
	FetchFile(ctx context.Context, path string, ref string) (string, bool)
}
