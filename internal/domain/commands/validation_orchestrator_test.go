//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/catalog-gate/internal/domain/commands"
	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
	"github.com/rios0rios0/catalog-gate/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/catalog-gate/test/infrastructure/repositorydoubles"
)

func TestValidationOrchestratorRunAll(t *testing.T) {
	t.Parallel()

	t.Run("should produce one outcome per record even when one is malformed", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &doubles.SpyVCSRepository{}
		validator := &doubles.SpyCatalogValidator{}
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()
		records := []string{
			"https://example.org/a.git",
			"{file: catalog.bom}",
			"https://example.org/c.git",
		}

		// when
		report, err := commands.NewValidationOrchestrator(vcs, validator, settings).RunAll(context.Background(), records)

		// then
		require.NoError(t, err)
		require.Len(t, report.Outcomes, 3)
		assert.True(t, report.Outcomes[0].Succeeded())
		assert.ErrorIs(t, report.Outcomes[1].Err, entities.ErrMalformedEntry)
		assert.True(t, report.Outcomes[2].Succeeded())
		assert.Len(t, validator.Calls, 2)
		assert.Len(t, vcs.CloneInputs, 2)
	})

	t.Run("should validate the same repository once per parent independently", func(t *testing.T) {
		t.Parallel()

		// given
		url := "https://example.org/shared.git"
		vcs := &doubles.SpyVCSRepository{}
		validator := &doubles.SpyCatalogValidator{
			Errs: map[string]error{
				"clone:" + url: &entities.ValidationFailure{Validator: "spy", Err: errors.New("unknown parent")},
			},
		}
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()
		records := []string{
			"{repository: " + url + ", parentId: first}",
			"{repository: " + url + ", parentId: second}",
		}

		// when
		report, err := commands.NewValidationOrchestrator(vcs, validator, settings).RunAll(context.Background(), records)

		// then
		require.NoError(t, err)
		require.Len(t, report.Outcomes, 2)
		require.Len(t, validator.Calls, 2)
		assert.Equal(t, "first", validator.Calls[0].ParentID)
		assert.Equal(t, "second", validator.Calls[1].ParentID)
		assert.Equal(t, "first", report.Outcomes[0].Descriptor.ParentID)
		assert.Equal(t, "second", report.Outcomes[1].Descriptor.ParentID)
		assert.ErrorIs(t, report.Outcomes[0].Err, entities.ErrValidationFailed)
		assert.ErrorIs(t, report.Outcomes[1].Err, entities.ErrValidationFailed)
	})

	t.Run("should release every clone whatever the outcome", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &doubles.SpyVCSRepository{}
		validator := &doubles.SpyCatalogValidator{
			Errs:   map[string]error{"clone:https://example.org/bad.git": errors.New("invalid bom")},
			Panics: map[string]bool{"clone:https://example.org/panic.git": true},
		}
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()
		records := []string{
			"https://example.org/good.git",
			"https://example.org/bad.git",
			"https://example.org/panic.git",
		}

		// when
		report, err := commands.NewValidationOrchestrator(vcs, validator, settings).RunAll(context.Background(), records)

		// then
		require.NoError(t, err)
		assert.Len(t, vcs.Cloned, 3)
		assert.Zero(t, vcs.OpenCheckouts())
		assert.False(t, report.Clean())
		assert.Len(t, report.Failures(), 2)
	})

	t.Run("should turn a validator panic into a failed outcome", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &doubles.SpyVCSRepository{}
		validator := &doubles.SpyCatalogValidator{
			Panics: map[string]bool{"clone:https://example.org/panic.git": true},
		}
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		report, err := commands.NewValidationOrchestrator(vcs, validator, settings).RunAll(
			context.Background(), []string{"https://example.org/panic.git", "https://example.org/next.git"},
		)

		// then
		require.NoError(t, err)
		require.Len(t, report.Outcomes, 2)
		assert.ErrorIs(t, report.Outcomes[0].Err, entities.ErrValidationFailed)
		assert.Contains(t, report.Outcomes[0].Err.Error(), "panicked")
		assert.True(t, report.Outcomes[1].Succeeded())
	})

	t.Run("should record clone failures and keep going", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &doubles.SpyVCSRepository{
			CloneErrs: map[string]error{"https://example.org/missing.git": errors.New("repository not found")},
		}
		validator := &doubles.SpyCatalogValidator{}
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		report, err := commands.NewValidationOrchestrator(vcs, validator, settings).RunAll(
			context.Background(), []string{"https://example.org/missing.git", "https://example.org/ok.git"},
		)

		// then
		require.NoError(t, err)
		assert.Contains(t, report.Outcomes[0].Err.Error(), "cannot clone https://example.org/missing.git")
		assert.True(t, report.Outcomes[1].Succeeded())
	})

	t.Run("should stop after too many consecutive resource errors", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &doubles.SpyVCSRepository{
			CloneErr: &entities.ResourceError{Op: "create temp dir", Err: errors.New("no space left on device")},
		}
		validator := &doubles.SpyCatalogValidator{}
		settings := entitybuilders.NewSettingsBuilder().WithMaxResourceErrors(2).BuildSettings()
		records := []string{"https://example.org/a.git", "https://example.org/b.git", "https://example.org/c.git"}

		// when
		report, err := commands.NewValidationOrchestrator(vcs, validator, settings).RunAll(context.Background(), records)

		// then
		require.ErrorIs(t, err, entities.ErrTooManyResourceErrors)
		assert.Len(t, report.Outcomes, 2)
		assert.Len(t, vcs.CloneInputs, 2)
	})

	t.Run("should reset the resource error count after a normal outcome", func(t *testing.T) {
		t.Parallel()

		// given
		resourceErr := &entities.ResourceError{Op: "create temp dir", Err: errors.New("quota")}
		vcs := &doubles.SpyVCSRepository{
			CloneErrs: map[string]error{
				"https://example.org/a.git": resourceErr,
				"https://example.org/c.git": resourceErr,
			},
		}
		validator := &doubles.SpyCatalogValidator{}
		settings := entitybuilders.NewSettingsBuilder().WithMaxResourceErrors(2).BuildSettings()
		records := []string{"https://example.org/a.git", "https://example.org/b.git", "https://example.org/c.git"}

		// when
		report, err := commands.NewValidationOrchestrator(vcs, validator, settings).RunAll(context.Background(), records)

		// then
		require.NoError(t, err)
		assert.Len(t, report.Outcomes, 3)
		assert.ErrorIs(t, report.Outcomes[2].Err, entities.ErrResource)
	})

	t.Run("should stop when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		// given
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		vcs := &doubles.SpyVCSRepository{}
		validator := &doubles.SpyCatalogValidator{}
		settings := entitybuilders.NewSettingsBuilder().BuildSettings()

		// when
		report, err := commands.NewValidationOrchestrator(vcs, validator, settings).RunAll(
			ctx, []string{"https://example.org/a.git"},
		)

		// then
		require.ErrorIs(t, err, context.Canceled)
		assert.True(t, report.Empty())
		assert.Empty(t, vcs.CloneInputs)
	})

	t.Run("should clone entries at the branch to test", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &doubles.SpyVCSRepository{}
		validator := &doubles.SpyCatalogValidator{}
		settings := entitybuilders.NewSettingsBuilder().WithEntryTimeout(time.Minute).BuildSettings()
		settings.BranchToTest = "release"

		// when
		_, err := commands.NewValidationOrchestrator(vcs, validator, settings).RunAll(
			context.Background(), []string{"{repository: https://example.org/a.git, file: sub/a.bom}"},
		)

		// then
		require.NoError(t, err)
		require.Len(t, vcs.CloneInputs, 1)
		assert.Equal(t, "release", vcs.CloneInputs[0].Branch)
		assert.Empty(t, vcs.CloneInputs[0].AuthToken)
		assert.Equal(t, "sub/a.bom", validator.Calls[0].FilePath)
		assert.Equal(t, "clone:https://example.org/a.git", validator.Calls[0].Location)
	})
}
