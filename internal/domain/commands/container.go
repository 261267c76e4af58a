package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewValidateCommand); err != nil {
		return err
	}
	if err := container.Provide(NewListEntriesCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *ValidateCommand) Validate {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *ListEntriesCommand) ListEntries {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
