package commands

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/waigani/diffparser"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
	"github.com/rios0rios0/catalog-gate/internal/domain/repositories"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// PathScopedDiffer computes the unified diff of a single path between two trees.
type PathScopedDiffer struct {
	ambiguousPolicy string
}

// NewPathScopedDiffer creates a differ. ambiguousPolicy decides what happens
// when more than one change matches the path: "fail" or "warn".
func NewPathScopedDiffer(ambiguousPolicy string) *PathScopedDiffer {
	if ambiguousPolicy == "" {
		ambiguousPolicy = entities.AmbiguousDiffFail
	}
	return &PathScopedDiffer{ambiguousPolicy: ambiguousPolicy}
}

// Diff returns the diff of path between oldTree and newTree.
func (it *PathScopedDiffer) Diff(
	ctx context.Context,
	checkout repositories.Checkout,
	oldTree, newTree entities.TreeID,
	path string,
) (entities.DiffResult, error) {
	changes, err := checkout.TreeDiff(ctx, oldTree, newTree, path)
	if err != nil {
		return entities.DiffResult{}, fmt.Errorf("diffing trees for %q: %w", path, err)
	}

	switch len(changes) {
	case 0:
		logger.Warnf("File [%s] was unchanged", path)
		return entities.UnchangedDiff(path), nil
	case 1:
		return formatChange(ctx, path, changes[0])
	default:
		ambiguous := &entities.AmbiguousDiffError{Path: path, Matches: len(changes)}
		if it.ambiguousPolicy == entities.AmbiguousDiffWarn {
			logger.Warnf("%v; treating the file as unchanged", ambiguous)
			return entities.UnchangedDiff(path), nil
		}
		return entities.DiffResult{}, ambiguous
	}
}

func formatChange(
	ctx context.Context,
	path string,
	change repositories.PathChange,
) (entities.DiffResult, error) {
	body, err := change.Format(ctx)
	if err != nil {
		return entities.DiffResult{}, fmt.Errorf("formatting diff for %q: %w", path, err)
	}

	result := entities.DiffResult{
		Path:    path,
		Changed: true,
		Action:  change.Action(),
		Lines:   splitLines(body),
		Stats:   diffStats(body),
	}

	logger.Infof(
		"File [%s] %s: %d hunk(s), +%d/-%d line(s)",
		path, result.Action, result.Stats.Hunks, result.Stats.Added, result.Stats.Removed,
	)
	return result, nil
}

func splitLines(body string) []string {
	body = strings.TrimRight(body, "\r\n")
	if body == "" {
		return []string{}
	}
	return lineBreak.Split(body, -1)
}

// diffStats parses the unified diff again to count hunks and changed lines.
func diffStats(body string) entities.DiffStats {
	var stats entities.DiffStats

	parsed, err := diffparser.Parse(body)
	if err != nil {
		logger.Debugf("Could not compute diff stats: %v", err)
		return stats
	}

	for _, file := range parsed.Files {
		stats.Hunks += len(file.Hunks)
		for _, hunk := range file.Hunks {
			for _, line := range hunk.WholeRange.Lines {
				switch line.Mode {
				case diffparser.ADDED:
					stats.Added++
				case diffparser.REMOVED:
					stats.Removed++
				case diffparser.UNCHANGED:
				}
			}
		}
	}
	return stats
}
