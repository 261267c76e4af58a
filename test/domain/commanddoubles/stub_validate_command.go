//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/catalog-gate/internal/domain/commands"
	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
)

// StubValidateCommand is a stub implementation of commands.Validate.
type StubValidateCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Report           *entities.ValidationReport
	LastSettings     *entities.Settings
}

var _ commands.Validate = (*StubValidateCommand)(nil)

func (s *StubValidateCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
) (*entities.ValidationReport, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	return s.Report, s.ExecuteErr
}
