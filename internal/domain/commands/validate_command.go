package commands

import (
	"context"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
	"github.com/rios0rios0/catalog-gate/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/catalog-gate/internal/infrastructure/repositories"
)

// Validate is the interface for the validate command.
type Validate interface {
	Execute(ctx context.Context, settings *entities.Settings) (*entities.ValidationReport, error)
}

// ValidateCommand validates every catalog entry a pull request adds:
// clone and fetch -> resolve -> diff -> extract -> validate each entry.
type ValidateCommand struct {
	pipeline   *pullRequestPipeline
	validators *infraRepos.ValidatorRegistry
}

// NewValidateCommand creates a new ValidateCommand.
func NewValidateCommand(
	vcs repositories.VCSRepository,
	providers *infraRepos.ProviderRegistry,
	validators *infraRepos.ValidatorRegistry,
) *ValidateCommand {
	return &ValidateCommand{
		pipeline:   &pullRequestPipeline{vcs: vcs, providers: providers},
		validators: validators,
	}
}

// Execute runs the validation and returns the report.
//
// Setup problems and an ambiguous diff are returned as errors before any entry
// is validated. Failed entries only turn into an error (ErrEntriesFailed) when
// settings.FailFast is set; otherwise they are logged and the run succeeds.
func (it *ValidateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
) (*entities.ValidationReport, error) {
	validator, err := it.validators.Get(settings.Validator)
	if err != nil {
		return nil, &entities.SetupError{Step: "validator", Err: err}
	}

	changes, err := it.pipeline.collect(ctx, settings)
	if err != nil {
		return nil, err
	}
	defer closeCheckout(changes.checkout)

	if !changes.diff.Changed {
		logger.Info("Nothing to validate.")
		return entities.NewValidationReport(0), nil
	}

	orchestrator := NewValidationOrchestrator(it.pipeline.vcs, validator, settings)
	report, runErr := orchestrator.RunAll(ctx, changes.records)
	logSummary(report)
	if runErr != nil {
		return report, runErr
	}

	if !report.Clean() && settings.FailFast {
		return report, fmt.Errorf("%w: %d of %d", entities.ErrEntriesFailed,
			len(report.Failures()), len(report.Outcomes))
	}
	return report, nil
}

func logSummary(report *entities.ValidationReport) {
	for _, outcome := range report.Outcomes {
		elapsed := outcome.Duration.Round(time.Millisecond)
		if outcome.Succeeded() {
			logger.Infof("  PASS #%d '%s' (%s)", outcome.Position, outcome.Record, elapsed)
			continue
		}
		logger.Errorf("  FAIL #%d '%s' (%s): %v", outcome.Position, outcome.Record, elapsed, outcome.Err)
	}

	failures := report.Failures()
	if len(failures) == 0 {
		logger.Infof("All %d entries successfully validated.", len(report.Outcomes))
		return
	}
	logger.Warnf("%d of %d entries failed validation.", len(failures), len(report.Outcomes))
}
