package repositories

import (
	"context"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
)

// CloneInput describes a clone into a fresh temporary directory.
type CloneInput struct {
	URL       string
	Branch    string
	AuthToken string // optional; sent as HTTP basic-auth username
	DirPrefix string
}

// PathChange is one entry of a tree-to-tree diff.
type PathChange interface {
	FromPath() string
	ToPath() string
	// Action is "insert", "modify" or "delete".
	Action() string
	// Format renders the change as a unified diff.
	Format(ctx context.Context) (string, error)
}

// Checkout is a cloned working copy together with its object store. It stays
// read-only after clone and fetch, and Close removes it from disk.
type Checkout interface {
	Dir() string
	Fetch(ctx context.Context, refSpec string, authToken string) error
	// ResolveRef returns a *entities.RefNotFoundError when the ref is missing.
	ResolveRef(ctx context.Context, name string) (entities.CommitID, error)
	TreeOf(ctx context.Context, commit entities.CommitID) (entities.TreeID, error)
	// TreeDiff returns the changes between two trees that touch path (exact match).
	TreeDiff(ctx context.Context, oldTree, newTree entities.TreeID, path string) ([]PathChange, error)
	Close() error
}

// VCSRepository abstracts the version control client.
type VCSRepository interface {
	// Clone returns a *entities.ResourceError when the temporary directory
	// cannot be created.
	Clone(ctx context.Context, input CloneInput) (Checkout, error)
}
