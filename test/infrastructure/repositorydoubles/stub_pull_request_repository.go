//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
	"github.com/rios0rios0/catalog-gate/internal/domain/repositories"
)

// StubPullRequestRepository implements repositories.PullRequestRepository.
type StubPullRequestRepository struct {
	Matches bool
	Info    *entities.PullRequestInfo
	Err     error

	// spy: pull request numbers requested
	RequestedNumbers []int
}

var _ repositories.PullRequestRepository = (*StubPullRequestRepository)(nil)

func (p *StubPullRequestRepository) MatchesURL(_ string) bool { return p.Matches }

func (p *StubPullRequestRepository) GetPullRequest(
	_ context.Context,
	_ entities.Repository,
	number int,
) (*entities.PullRequestInfo, error) {
	p.RequestedNumbers = append(p.RequestedNumbers, number)
	return p.Info, p.Err
}
