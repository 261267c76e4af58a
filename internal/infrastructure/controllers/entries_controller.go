package controllers

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/catalog-gate/internal/domain/commands"
	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
)

// EntriesController handles the "entries" subcommand.
type EntriesController struct {
	command commands.ListEntries
}

// NewEntriesController creates a new EntriesController.
func NewEntriesController(command commands.ListEntries) *EntriesController {
	return &EntriesController{command: command}
}

// GetBind returns the Cobra command metadata for the entries controller.
func (it *EntriesController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "entries",
		Short: "List the catalog entries added by a pull request",
		Long: `Diff the tracked index file of the pull request and print every added
entry as it would be validated, without cloning the entry repositories.`,
	}
}

// AddFlags adds the entries-specific flags to the given Cobra command.
func (it *EntriesController) AddFlags(cmd *cobra.Command) {
	addPullRequestFlags(cmd)
}

// Execute lists the added entries.
func (it *EntriesController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, err := loadSettings(ctx, cmd)
	if err != nil {
		return err
	}

	candidates, err := it.command.Execute(ctx, settings)
	if err != nil {
		return err
	}

	printCandidates(cmd.OutOrStdout(), candidates)
	return nil
}

func printCandidates(out io.Writer, candidates []entities.CandidateEntry) {
	if len(candidates) == 0 {
		_, _ = fmt.Fprintln(out, "No entries added.")
		return
	}

	malformed := 0
	for _, c := range candidates {
		if c.Err != nil {
			malformed++
			_, _ = fmt.Fprintf(out, "%3d  %-60s  INVALID: %v\n", c.Position, c.Record, c.Err)
			continue
		}
		parent := "-"
		if c.Descriptor.HasParent() {
			parent = c.Descriptor.ParentID
		}
		_, _ = fmt.Fprintf(out, "%3d  %-60s  file=%s parent=%s\n",
			c.Position, c.Descriptor.RepositoryURL, c.Descriptor.FilePath, parent)
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintf(out, "Total: %d entries, %d malformed\n", len(candidates), malformed)
}
