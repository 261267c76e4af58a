//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/catalog-gate/internal/domain/repositories"
)

// SpyCatalogValidator implements repositories.CatalogValidator as a configurable spy.
type SpyCatalogValidator struct {
	ValidatorName string

	// Errs maps a checkout location to the error returned for it.
	Errs map[string]error
	// Panics lists the locations for which the validator panics.
	Panics map[string]bool

	// spy: calls received, in order
	Calls []ValidateCall
}

// ValidateCall records a single invocation of Validate or ValidateWithParent.
type ValidateCall struct {
	Location string
	FilePath string
	ParentID string
}

var _ repositories.CatalogValidator = (*SpyCatalogValidator)(nil)

func (v *SpyCatalogValidator) Name() string {
	if v.ValidatorName == "" {
		return "spy"
	}
	return v.ValidatorName
}

func (v *SpyCatalogValidator) Validate(ctx context.Context, location, filePath string) error {
	return v.ValidateWithParent(ctx, location, filePath, "")
}

func (v *SpyCatalogValidator) ValidateWithParent(_ context.Context, location, filePath, parentID string) error {
	v.Calls = append(v.Calls, ValidateCall{Location: location, FilePath: filePath, ParentID: parentID})
	if v.Panics[location] {
		panic("validator exploded on " + location)
	}
	return v.Errs[location]
}
