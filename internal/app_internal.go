package internal

import "github.com/rios0rios0/catalog-gate/internal/domain/entities"

// AppInternal holds the controllers exposed as CLI subcommands.
type AppInternal struct {
	controllers []entities.Controller
}

// NewAppInternal creates a new AppInternal.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: *controllers}
}

// GetControllers returns the registered controllers in registration order.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
