package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
	"github.com/rios0rios0/catalog-gate/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/catalog-gate/internal/infrastructure/repositories"
)

const directoryDirPrefix = "catalog-gate-directory-"

// pullRequestChanges is what a pull request adds to the tracked index file.
type pullRequestChanges struct {
	checkout  repositories.Checkout
	revisions entities.RevisionPair
	diff      entities.DiffResult
	records   []string
}

// pullRequestPipeline runs the steps shared by every command: clone the
// directory repository, fetch the pull request, resolve both revisions, diff
// the tracked file and extract the added records.
type pullRequestPipeline struct {
	vcs       repositories.VCSRepository
	providers *infraRepos.ProviderRegistry
}

// collect returns the added records. On success the caller owns the checkout
// and must close it.
func (it *pullRequestPipeline) collect(
	ctx context.Context,
	settings *entities.Settings,
) (*pullRequestChanges, error) {
	if err := settings.Validate(); err != nil {
		return nil, &entities.SetupError{Step: "configuration", Err: err}
	}

	logger.Infof("Cloning %s at branch %s", settings.RepositoryURI, settings.BaselineBranch)
	checkout, err := it.vcs.Clone(ctx, repositories.CloneInput{
		URL:       settings.RepositoryURI,
		Branch:    settings.BaselineBranch,
		AuthToken: settings.AuthToken,
		DirPrefix: directoryDirPrefix,
	})
	if err != nil {
		return nil, &entities.SetupError{Step: "clone", Err: err}
	}

	changes, err := it.collectFrom(ctx, checkout, settings)
	if err != nil {
		closeCheckout(checkout)
		return nil, err
	}
	return changes, nil
}

func (it *pullRequestPipeline) collectFrom(
	ctx context.Context,
	checkout repositories.Checkout,
	settings *entities.Settings,
) (*pullRequestChanges, error) {
	logger.Infof("Fetching pull request #%d", settings.PullRequestNumber)
	if err := checkout.Fetch(ctx, settings.PullRequestRefSpec(), settings.AuthToken); err != nil {
		return nil, &entities.SetupError{Step: "fetch", Err: err}
	}

	revisions, err := NewRevisionResolver().ResolvePair(
		ctx, checkout, settings.BaselineRef(), settings.PullRequestRef(),
	)
	if err != nil {
		return nil, err
	}

	if settings.InspectPullRequest {
		it.inspectPullRequest(ctx, settings, revisions.Candidate.Commit)
	}

	diff, err := NewPathScopedDiffer(settings.AmbiguousDiffPolicy).Diff(
		ctx, checkout, revisions.Baseline.Tree, revisions.Candidate.Tree, settings.FileToDiff,
	)
	if err != nil {
		return nil, fmt.Errorf("computing changes of %s: %w", settings.FileToDiff, err)
	}

	records := entities.CollectAddedRecords(diff, settings.RecordMarker)
	logger.Infof("There are %d entries to validate.", len(records))

	return &pullRequestChanges{
		checkout:  checkout,
		revisions: revisions,
		diff:      diff,
		records:   records,
	}, nil
}

// inspectPullRequest cross-checks the fetched head with the hosting provider.
// Problems are only logged: the fetched refs remain the source of truth.
func (it *pullRequestPipeline) inspectPullRequest(
	ctx context.Context,
	settings *entities.Settings,
	candidate entities.CommitID,
) {
	if it.providers == nil {
		return
	}

	provider, ok := it.providers.ForURL(settings.RepositoryURI, settings.AuthToken)
	if !ok {
		logger.Debugf("No pull request provider matches %s", settings.RepositoryURI)
		return
	}

	repo := entities.Repository{
		RemoteURL:     settings.RepositoryURI,
		DefaultBranch: settings.BaselineRef(),
	}
	info, err := provider.GetPullRequest(ctx, repo, settings.PullRequestNumber)
	if err != nil {
		logger.Warnf("Could not read pull request #%d metadata: %v", settings.PullRequestNumber, err)
		return
	}

	logger.Infof("Pull request #%d: %q (%s) %s", info.Number, info.Title, info.State, info.URL)
	if !info.Open() {
		logger.Warnf("Pull request #%d is %s", info.Number, info.State)
	}
	if info.HeadSHA != "" && info.HeadSHA != string(candidate) {
		logger.Warnf(
			"Pull request #%d head is %s but the fetched ref points at %s",
			info.Number, info.HeadSHA, candidate,
		)
	}
}

func closeCheckout(checkout repositories.Checkout) {
	if err := checkout.Close(); err != nil {
		logger.Warnf("Failed to remove %s: %v", checkout.Dir(), err)
	}
}
