package entities

// DiffStats summarizes the line-level changes of a DiffResult.
type DiffStats struct {
	Hunks   int
	Added   int
	Removed int
}

// DiffResult is the unified diff of exactly one path between two trees.
//
// A result with Changed == false means the path is identical in both trees and
// Lines is empty. That is a different state from a changed path whose diff
// carries no added lines (Changed == true, Stats.Added == 0).
type DiffResult struct {
	Path    string
	Changed bool
	Action  string // "insert", "modify" or "delete"
	Lines   []string
	Stats   DiffStats
}

// UnchangedDiff returns the result for a path that did not change.
func UnchangedDiff(path string) DiffResult {
	return DiffResult{Path: path}
}
