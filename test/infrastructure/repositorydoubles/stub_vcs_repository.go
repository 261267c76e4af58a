//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
	"github.com/rios0rios0/catalog-gate/internal/domain/repositories"
)

// SpyVCSRepository implements repositories.VCSRepository as a configurable spy.
// Every successful Clone hands out a StubCheckout whose Dir is "clone:" + URL.
type SpyVCSRepository struct {
	// --- Clone ---
	Checkouts map[string]*StubCheckout // URL -> prepared checkout
	CloneErrs map[string]error         // URL -> error
	CloneErr  error                    // returned for every URL when set

	// spy: inputs received and checkouts handed out, in order
	CloneInputs []repositories.CloneInput
	Cloned      []*StubCheckout
}

var _ repositories.VCSRepository = (*SpyVCSRepository)(nil)

func (v *SpyVCSRepository) Clone(
	_ context.Context,
	input repositories.CloneInput,
) (repositories.Checkout, error) {
	v.CloneInputs = append(v.CloneInputs, input)

	if v.CloneErr != nil {
		return nil, v.CloneErr
	}
	if err, ok := v.CloneErrs[input.URL]; ok {
		return nil, err
	}

	checkout, ok := v.Checkouts[input.URL]
	if !ok {
		checkout = &StubCheckout{}
	}
	if checkout.DirPath == "" {
		checkout.DirPath = "clone:" + input.URL
	}
	v.Cloned = append(v.Cloned, checkout)
	return checkout, nil
}

// OpenCheckouts counts the handed out checkouts that were never closed.
func (v *SpyVCSRepository) OpenCheckouts() int {
	open := 0
	for _, checkout := range v.Cloned {
		if checkout.CloseCount == 0 {
			open++
		}
	}
	return open
}

// StubCheckout implements repositories.Checkout with canned answers.
type StubCheckout struct {
	DirPath string

	// --- Fetch ---
	FetchErr        error
	FetchedRefSpecs []string

	// --- ResolveRef ---
	Refs map[string]entities.CommitID

	// --- TreeOf ---
	Trees     map[entities.CommitID]entities.TreeID
	TreeOfErr error

	// --- TreeDiff ---
	Changes     []repositories.PathChange
	TreeDiffErr error
	DiffedPaths []string

	// --- Close ---
	CloseErr   error
	CloseCount int
}

var _ repositories.Checkout = (*StubCheckout)(nil)

func (c *StubCheckout) Dir() string { return c.DirPath }

func (c *StubCheckout) Fetch(_ context.Context, refSpec string, _ string) error {
	c.FetchedRefSpecs = append(c.FetchedRefSpecs, refSpec)
	return c.FetchErr
}

func (c *StubCheckout) ResolveRef(_ context.Context, name string) (entities.CommitID, error) {
	commit, ok := c.Refs[name]
	if !ok {
		return "", &entities.RefNotFoundError{Ref: name}
	}
	return commit, nil
}

func (c *StubCheckout) TreeOf(_ context.Context, commit entities.CommitID) (entities.TreeID, error) {
	if c.TreeOfErr != nil {
		return "", c.TreeOfErr
	}
	return c.Trees[commit], nil
}

func (c *StubCheckout) TreeDiff(
	_ context.Context,
	_, _ entities.TreeID,
	path string,
) ([]repositories.PathChange, error) {
	c.DiffedPaths = append(c.DiffedPaths, path)
	return c.Changes, c.TreeDiffErr
}

func (c *StubCheckout) Close() error {
	c.CloseCount++
	return c.CloseErr
}

// StubPathChange implements repositories.PathChange.
type StubPathChange struct {
	From       string
	To         string
	ActionName string
	Patch      string
	FormatErr  error
}

var _ repositories.PathChange = (*StubPathChange)(nil)

func (p *StubPathChange) FromPath() string { return p.From }
func (p *StubPathChange) ToPath() string   { return p.To }
func (p *StubPathChange) Action() string   { return p.ActionName }

func (p *StubPathChange) Format(_ context.Context) (string, error) {
	return p.Patch, p.FormatErr
}
