package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
	"github.com/rios0rios0/catalog-gate/internal/domain/repositories"
)

const (
	defaultDirPrefix = "catalog-gate-"
	remoteName       = "origin"
)

// GitVCSRepository implements repositories.VCSRepository with go-git.
type GitVCSRepository struct{}

// NewGitVCSRepository creates a new go-git backed VCS repository.
func NewGitVCSRepository() repositories.VCSRepository {
	return &GitVCSRepository{}
}

// Clone performs a single-branch clone into a new temporary directory. The
// directory is removed again when the clone fails.
func (r *GitVCSRepository) Clone(
	ctx context.Context,
	input repositories.CloneInput,
) (repositories.Checkout, error) {
	prefix := input.DirPrefix
	if prefix == "" {
		prefix = defaultDirPrefix
	}

	dir, err := os.MkdirTemp("", prefix)
	if err != nil {
		return nil, &entities.ResourceError{Op: "create temp dir", Err: err}
	}

	repo, err := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
		URL:           input.URL,
		ReferenceName: plumbing.NewBranchReferenceName(input.Branch),
		SingleBranch:  true,
		Tags:          gogit.NoTags,
		Auth:          basicAuth(input.AuthToken),
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("cloning %s at branch %s: %w", input.URL, input.Branch, err)
	}

	return &gitCheckout{dir: dir, repo: repo}, nil
}

// basicAuth sends the token as the basic-auth username, or nothing when the
// token is empty.
func basicAuth(token string) transport.AuthMethod {
	if token == "" {
		return nil
	}
	return &githttp.BasicAuth{Username: token}
}

type gitCheckout struct {
	dir    string
	repo   *gogit.Repository
	closed bool
}

func (c *gitCheckout) Dir() string { return c.dir }

func (c *gitCheckout) Fetch(ctx context.Context, refSpec, authToken string) error {
	spec := gitconfig.RefSpec(refSpec)
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("invalid refspec %q: %w", refSpec, err)
	}

	err := c.repo.FetchContext(ctx, &gogit.FetchOptions{
		RemoteName: remoteName,
		RefSpecs:   []gitconfig.RefSpec{spec},
		Tags:       gogit.NoTags,
		Auth:       basicAuth(authToken),
	})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("fetching %s: %w", refSpec, err)
	}
	return nil
}

func (c *gitCheckout) ResolveRef(_ context.Context, name string) (entities.CommitID, error) {
	ref, err := c.repo.Reference(plumbing.ReferenceName(name), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", &entities.RefNotFoundError{Ref: name}
		}
		return "", fmt.Errorf("reading reference %q: %w", name, err)
	}

	commit, err := c.repo.CommitObject(ref.Hash())
	if err != nil {
		return "", fmt.Errorf("reference %q does not point at a commit: %w", name, err)
	}
	return entities.CommitID(commit.Hash.String()), nil
}

func (c *gitCheckout) TreeOf(_ context.Context, commit entities.CommitID) (entities.TreeID, error) {
	commitObj, err := c.repo.CommitObject(plumbing.NewHash(string(commit)))
	if err != nil {
		return "", fmt.Errorf("reading commit %s: %w", commit, err)
	}
	return entities.TreeID(commitObj.TreeHash.String()), nil
}

func (c *gitCheckout) TreeDiff(
	ctx context.Context,
	oldTree, newTree entities.TreeID,
	path string,
) ([]repositories.PathChange, error) {
	from, err := c.repo.TreeObject(plumbing.NewHash(string(oldTree)))
	if err != nil {
		return nil, fmt.Errorf("reading tree %s: %w", oldTree, err)
	}
	to, err := c.repo.TreeObject(plumbing.NewHash(string(newTree)))
	if err != nil {
		return nil, fmt.Errorf("reading tree %s: %w", newTree, err)
	}

	changes, err := object.DiffTreeWithOptions(ctx, from, to, &object.DiffTreeOptions{})
	if err != nil {
		return nil, fmt.Errorf("diffing trees: %w", err)
	}

	var matching []repositories.PathChange
	for _, change := range changes {
		if change.From.Name == path || change.To.Name == path {
			matching = append(matching, &gitPathChange{change: change})
		}
	}
	return matching, nil
}

func (c *gitCheckout) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if err := os.RemoveAll(c.dir); err != nil {
		return &entities.ResourceError{Op: "remove temp dir", Path: c.dir, Err: err}
	}
	return nil
}

type gitPathChange struct {
	change *object.Change
}

func (p *gitPathChange) FromPath() string { return p.change.From.Name }

func (p *gitPathChange) ToPath() string { return p.change.To.Name }

func (p *gitPathChange) Action() string {
	action, err := p.change.Action()
	if err != nil {
		return "unknown"
	}
	return strings.ToLower(action.String())
}

func (p *gitPathChange) Format(ctx context.Context) (string, error) {
	patch, err := p.change.PatchContext(ctx)
	if err != nil {
		return "", fmt.Errorf("building patch: %w", err)
	}
	return patch.String(), nil
}
