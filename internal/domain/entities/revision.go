package entities

import (
	"encoding/hex"
	"fmt"
)

const hashLength = 40

// CommitID is the 40-character hex hash of a commit.
type CommitID string

// TreeID is the 40-character hex hash of a root tree.
type TreeID string

// Validate checks that the commit id is a full-length hex hash.
func (c CommitID) Validate() error {
	return validateHash("commit", string(c))
}

// Validate checks that the tree id is a full-length hex hash.
func (t TreeID) Validate() error {
	return validateHash("tree", string(t))
}

// Short returns the abbreviated form used in log lines.
func (c CommitID) Short() string {
	if len(c) < 7 { //nolint:mnd // git's default abbreviation
		return string(c)
	}
	return string(c[:7])
}

func validateHash(kind, value string) error {
	if len(value) != hashLength {
		return fmt.Errorf("invalid %s id %q: expected %d characters", kind, value, hashLength)
	}
	if _, err := hex.DecodeString(value); err != nil {
		return fmt.Errorf("invalid %s id %q: %w", kind, value, err)
	}
	return nil
}

// Revision is one side of the comparison: the ref that was resolved, its
// commit and the commit's root tree.
type Revision struct {
	Ref    string
	Commit CommitID
	Tree   TreeID
}

// RevisionPair holds the baseline and candidate revisions of a run.
type RevisionPair struct {
	Baseline  Revision
	Candidate Revision
}

// Identical reports whether both sides point at the same tree.
func (p RevisionPair) Identical() bool {
	return p.Baseline.Tree == p.Candidate.Tree
}
