package repositories

import "context"

// CatalogValidator checks the catalog file of a cloned entry repository.
// Implementations return a *entities.ValidationFailure when the content is
// non-conformant.
type CatalogValidator interface {
	// Name returns the validator identifier (e.g. "bom", "command").
	Name() string

	Validate(ctx context.Context, location, filePath string) error

	// ValidateWithParent validates the catalog in the scope of a parent item.
	ValidateWithParent(ctx context.Context, location, filePath, parentID string) error
}
