//go:build integration || unit || test

// Package gitfixtures builds throwaway on-disk Git repositories for tests.
package gitfixtures //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repository is a non-bare repository created in a test temp dir.
type Repository struct {
	Dir  string
	repo *git.Repository
	t    *testing.T
}

// Init creates an empty repository whose HEAD points at master.
func Init(t *testing.T) *Repository {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	if err := repo.Storer.SetReference(
		plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName("master")),
	); err != nil {
		t.Fatalf("SetReference: %v", err)
	}

	return &Repository{Dir: dir, repo: repo, t: t}
}

// Commit writes files (path -> content) and commits them on the current branch.
func (r *Repository) Commit(message string, files map[string]string) plumbing.Hash {
	r.t.Helper()

	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("Worktree: %v", err)
	}

	for name, content := range files {
		path := filepath.Join(r.Dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			r.t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // test fixture
			r.t.Fatalf("WriteFile: %v", err)
		}
		if _, err := wt.Add(name); err != nil {
			r.t.Fatalf("Add: %v", err)
		}
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		r.t.Fatalf("Commit: %v", err)
	}
	return hash
}

// SetRef points name at hash, creating the ref if needed.
func (r *Repository) SetRef(name string, hash plumbing.Hash) {
	r.t.Helper()

	if err := r.repo.Storer.SetReference(plumbing.NewHashReference(plumbing.ReferenceName(name), hash)); err != nil {
		r.t.Fatalf("SetReference %s: %v", name, err)
	}
}

// PullRequest publishes a pull request whose head is a commit on top of
// master, while master itself stays where it was.
func (r *Repository) PullRequest(number int, message string, files map[string]string) plumbing.Hash {
	r.t.Helper()

	base, err := r.repo.Reference(plumbing.NewBranchReferenceName("master"), true)
	if err != nil {
		r.t.Fatalf("Reference master: %v", err)
	}

	head := r.Commit(message, files)
	r.SetRef("refs/pull/"+strconv.Itoa(number)+"/head", head)
	r.SetRef("refs/heads/master", base.Hash())
	return head
}
