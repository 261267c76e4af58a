package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
	"github.com/rios0rios0/catalog-gate/internal/domain/repositories"
)

const entryDirPrefix = "catalog-gate-entry-"

// ValidationOrchestrator validates added records one at a time. A failing
// record is recorded in the report and never stops the records after it.
type ValidationOrchestrator struct {
	vcs       repositories.VCSRepository
	validator repositories.CatalogValidator
	settings  *entities.Settings
}

// NewValidationOrchestrator creates a new ValidationOrchestrator.
func NewValidationOrchestrator(
	vcs repositories.VCSRepository,
	validator repositories.CatalogValidator,
	settings *entities.Settings,
) *ValidationOrchestrator {
	return &ValidationOrchestrator{
		vcs:       vcs,
		validator: validator,
		settings:  settings,
	}
}

// RunAll validates every record in order and returns one outcome per record.
//
// The returned error is non-nil only when the run had to stop early: the
// context was cancelled or too many consecutive resource errors occurred. The
// report still holds every outcome recorded up to that point.
func (it *ValidationOrchestrator) RunAll(
	ctx context.Context,
	records []string,
) (*entities.ValidationReport, error) {
	report := entities.NewValidationReport(len(records))
	consecutiveResourceErrs := 0

	for i, record := range records {
		if ctx.Err() != nil {
			return report, fmt.Errorf("validation interrupted after %d of %d entries: %w",
				i, len(records), ctx.Err())
		}

		position := i + 1
		logger.Infof("[%d/%d] Validating entry: '%s'", position, len(records), record)

		outcome := it.runOne(ctx, position, record)
		report.Add(outcome)

		if outcome.Succeeded() {
			logger.Infof("[%d/%d] Successfully validated entry: '%s'", position, len(records), record)
		} else {
			logger.Errorf("[%d/%d] Validation failed for entry: '%s': %v", position, len(records), record, outcome.Err)
		}

		if errors.Is(outcome.Err, entities.ErrResource) {
			consecutiveResourceErrs++
			if consecutiveResourceErrs >= it.maxResourceErrors() {
				return report, fmt.Errorf("%w: %d in a row, last: %w",
					entities.ErrTooManyResourceErrors, consecutiveResourceErrs, outcome.Err)
			}
		} else {
			consecutiveResourceErrs = 0
		}
	}

	return report, nil
}

func (it *ValidationOrchestrator) runOne(
	ctx context.Context,
	position int,
	record string,
) (outcome entities.ValidationOutcome) {
	start := time.Now()
	outcome = entities.ValidationOutcome{Position: position, Record: record}
	defer func() {
		if r := recover(); r != nil {
			outcome.Err = &entities.ValidationFailure{
				Validator: it.validator.Name(),
				Err:       fmt.Errorf("validator panicked: %v", r),
			}
		}
		outcome.Duration = time.Since(start)
	}()

	descriptor, err := entities.ParseEntryDescriptor(record, it.settings.DefaultCatalogFile)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Descriptor = descriptor

	outcome.Err = it.Validate(ctx, descriptor)
	return outcome
}

// Validate clones the entry repository, runs the validator against it and
// removes the clone, whatever the result.
func (it *ValidationOrchestrator) Validate(ctx context.Context, descriptor entities.EntryDescriptor) (err error) {
	if it.settings.EntryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, it.settings.EntryTimeout)
		defer cancel()
	}

	checkout, err := it.vcs.Clone(ctx, repositories.CloneInput{
		URL:       descriptor.RepositoryURL,
		Branch:    it.settings.BranchToTest,
		DirPrefix: entryDirPrefix,
	})
	if err != nil {
		if errors.Is(err, entities.ErrResource) {
			return err
		}
		return fmt.Errorf("cannot clone %s at branch %s: %w",
			descriptor.RepositoryURL, it.settings.BranchToTest, err)
	}
	defer func() {
		if closeErr := checkout.Close(); closeErr != nil {
			logger.Warnf("Failed to remove clone of %s: %v", descriptor.RepositoryURL, closeErr)
			if err == nil {
				err = closeErr
			}
		}
	}()

	logger.Debugf("Cloned %s into %s", descriptor.RepositoryURL, checkout.Dir())

	if descriptor.HasParent() {
		return it.validator.ValidateWithParent(ctx, checkout.Dir(), descriptor.FilePath, descriptor.ParentID)
	}
	return it.validator.Validate(ctx, checkout.Dir(), descriptor.FilePath)
}

func (it *ValidationOrchestrator) maxResourceErrors() int {
	if it.settings.MaxResourceErrors < 1 {
		return entities.DefaultMaxResourceErrors
	}
	return it.settings.MaxResourceErrors
}
