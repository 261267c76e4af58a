//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/catalog-gate/internal/domain/commands"
	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
)

// StubListEntriesCommand is a stub implementation of commands.ListEntries.
type StubListEntriesCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Candidates       []entities.CandidateEntry
	LastSettings     *entities.Settings
}

var _ commands.ListEntries = (*StubListEntriesCommand)(nil)

func (s *StubListEntriesCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
) ([]entities.CandidateEntry, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	return s.Candidates, s.ExecuteErr
}
