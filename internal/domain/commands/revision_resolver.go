package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
	"github.com/rios0rios0/catalog-gate/internal/domain/repositories"
)

// RevisionResolver turns ref names into commits and their root trees.
type RevisionResolver struct{}

// NewRevisionResolver creates a new RevisionResolver.
func NewRevisionResolver() *RevisionResolver {
	return &RevisionResolver{}
}

// Resolve returns the commit a ref points at. A missing ref is reported as a
// *entities.RefNotFoundError.
func (it *RevisionResolver) Resolve(
	ctx context.Context,
	checkout repositories.Checkout,
	refName string,
) (entities.CommitID, error) {
	commit, err := checkout.ResolveRef(ctx, refName)
	if err != nil {
		return "", err
	}
	if validateErr := commit.Validate(); validateErr != nil {
		return "", fmt.Errorf("resolving %q: %w", refName, validateErr)
	}
	return commit, nil
}

// TreeOf dereferences the root tree of a resolved commit.
func (it *RevisionResolver) TreeOf(
	ctx context.Context,
	checkout repositories.Checkout,
	commit entities.CommitID,
) (entities.TreeID, error) {
	tree, err := checkout.TreeOf(ctx, commit)
	if err != nil {
		return "", fmt.Errorf("reading tree of %s: %w", commit.Short(), err)
	}
	return tree, nil
}

// ResolvePair resolves both sides of the comparison. Both refs must exist in
// the local store once clone and fetch are done; anything else is a setup error.
func (it *RevisionResolver) ResolvePair(
	ctx context.Context,
	checkout repositories.Checkout,
	baselineRef, candidateRef string,
) (entities.RevisionPair, error) {
	baseline, err := it.resolveRevision(ctx, checkout, baselineRef)
	if err != nil {
		return entities.RevisionPair{}, &entities.SetupError{Step: "resolve baseline", Err: err}
	}

	candidate, err := it.resolveRevision(ctx, checkout, candidateRef)
	if err != nil {
		return entities.RevisionPair{}, &entities.SetupError{Step: "resolve candidate", Err: err}
	}

	logger.Infof(
		"Comparing %s (%s) with %s (%s)",
		baseline.Ref, baseline.Commit.Short(), candidate.Ref, candidate.Commit.Short(),
	)
	return entities.RevisionPair{Baseline: baseline, Candidate: candidate}, nil
}

func (it *RevisionResolver) resolveRevision(
	ctx context.Context,
	checkout repositories.Checkout,
	ref string,
) (entities.Revision, error) {
	commit, err := it.Resolve(ctx, checkout, ref)
	if err != nil {
		return entities.Revision{}, err
	}

	tree, err := it.TreeOf(ctx, checkout, commit)
	if err != nil {
		return entities.Revision{}, err
	}

	return entities.Revision{Ref: ref, Commit: commit, Tree: tree}, nil
}
