package commands

import (
	"context"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
	"github.com/rios0rios0/catalog-gate/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/catalog-gate/internal/infrastructure/repositories"
)

// ListEntries is the interface for the entries command.
type ListEntries interface {
	Execute(ctx context.Context, settings *entities.Settings) ([]entities.CandidateEntry, error)
}

// ListEntriesCommand reports the entries a pull request adds, parsed but not
// cloned or validated.
type ListEntriesCommand struct {
	pipeline *pullRequestPipeline
}

// NewListEntriesCommand creates a new ListEntriesCommand.
func NewListEntriesCommand(
	vcs repositories.VCSRepository,
	providers *infraRepos.ProviderRegistry,
) *ListEntriesCommand {
	return &ListEntriesCommand{
		pipeline: &pullRequestPipeline{vcs: vcs, providers: providers},
	}
}

// Execute returns one candidate per added record, in diff order.
func (it *ListEntriesCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
) ([]entities.CandidateEntry, error) {
	changes, err := it.pipeline.collect(ctx, settings)
	if err != nil {
		return nil, err
	}
	defer closeCheckout(changes.checkout)

	return entities.ParseCandidates(changes.records, settings.DefaultCatalogFile), nil
}
