package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/catalog-gate/internal/domain/commands"
	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
)

// ValidateController handles the "validate" subcommand.
type ValidateController struct {
	command commands.Validate
}

// NewValidateController creates a new ValidateController.
func NewValidateController(command commands.Validate) *ValidateController {
	return &ValidateController{command: command}
}

// GetBind returns the Cobra command metadata for the validate controller.
func (it *ValidateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "validate",
		Short: "Validate the catalog entries added by a pull request",
		Long: `Clone the directory repository, fetch the pull request head and diff the
tracked index file between the two revisions. Every entry the pull request adds
is cloned at the test branch and checked by the configured catalog validator.

A failing entry never stops the others. With --fail-fast the command exits
with a non-zero status when at least one entry failed.`,
	}
}

// AddFlags adds the validate-specific flags to the given Cobra command.
func (it *ValidateController) AddFlags(cmd *cobra.Command) {
	addPullRequestFlags(cmd)
	cmd.Flags().Bool(flagFailFast, false, "Exit with an error when any entry fails (or FAIL_FAST)")
	cmd.Flags().Duration(flagEntryTimeout, 0, "Time budget per entry clone and validation, 0 for none (or ENTRY_TIMEOUT)")
	cmd.Flags().String(flagValidator, "", "Catalog validator to use (bom, command)")
}

// Execute runs the validation.
func (it *ValidateController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, err := loadSettings(ctx, cmd)
	if err != nil {
		return err
	}

	_, err = it.command.Execute(ctx, settings)
	return err
}
