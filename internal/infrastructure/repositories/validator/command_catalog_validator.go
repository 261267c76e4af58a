package validator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
	"github.com/rios0rios0/catalog-gate/internal/domain/repositories"
)

const commandValidatorName = "command"

// CommandCatalogValidator delegates validation to an external program. The
// program runs inside the entry checkout and receives the catalog file (and
// the parent id, when present) as trailing arguments. A non-zero exit status
// rejects the entry.
type CommandCatalogValidator struct {
	command []string
}

// NewCommandCatalogValidator creates a validator running settings.Command.
func NewCommandCatalogValidator(settings entities.ValidatorSettings) repositories.CatalogValidator {
	return &CommandCatalogValidator{command: settings.Command}
}

func (v *CommandCatalogValidator) Name() string { return commandValidatorName }

func (v *CommandCatalogValidator) Validate(ctx context.Context, location, filePath string) error {
	return v.run(ctx, location, filePath, "")
}

func (v *CommandCatalogValidator) ValidateWithParent(ctx context.Context, location, filePath, parentID string) error {
	return v.run(ctx, location, filePath, parentID)
}

func (v *CommandCatalogValidator) run(ctx context.Context, location, filePath, parentID string) error {
	if len(v.command) == 0 {
		return &entities.ValidationFailure{
			Validator: commandValidatorName,
			Err:       errors.New("no validator command configured"),
		}
	}

	args := make([]string, 0, len(v.command)+1)
	args = append(args, v.command[1:]...)
	args = append(args, filePath)
	if parentID != "" {
		args = append(args, parentID)
	}

	cmd := exec.CommandContext(ctx, v.command[0], args...)
	cmd.Dir = location
	cmd.Env = append(os.Environ(),
		"CATALOG_LOCATION="+location,
		"CATALOG_FILE="+filePath,
		"CATALOG_PARENT_ID="+parentID,
	)

	logger.Debugf("[command] Running %s %s in %s", v.command[0], strings.Join(args, " "), location)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return &entities.ValidationFailure{
			Validator: commandValidatorName,
			Err:       fmt.Errorf("%s failed: %w\nOutput:\n%s", v.command[0], err, output),
		}
	}
	return nil
}
