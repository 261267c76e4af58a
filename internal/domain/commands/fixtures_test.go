//go:build unit

package commands_test

import (
	"strconv"
	"strings"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
	"github.com/rios0rios0/catalog-gate/internal/domain/repositories"
	doubles "github.com/rios0rios0/catalog-gate/test/infrastructure/repositorydoubles"
)

const (
	baselineCommit  = entities.CommitID("1111111111111111111111111111111111111111")
	candidateCommit = entities.CommitID("2222222222222222222222222222222222222222")
	baselineTree    = entities.TreeID("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	candidateTree   = entities.TreeID("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
)

// directoryPatch renders a unified diff of directory.yaml that adds lines.
func directoryPatch(added ...string) string {
	var sb strings.Builder
	sb.WriteString("diff --git a/directory.yaml b/directory.yaml\n")
	sb.WriteString("index 3b18e51..a9c0f2e 100644\n")
	sb.WriteString("--- a/directory.yaml\n")
	sb.WriteString("+++ b/directory.yaml\n")
	sb.WriteString("@@ -1,1 +1," + strconv.Itoa(len(added)+1) + " @@\n")
	sb.WriteString(" - https://example.org/existing.git\n")
	for _, line := range added {
		sb.WriteString("+" + line + "\n")
	}
	return sb.String()
}

// directoryCheckout is a checkout of the directory repository where the pull
// request ref of settings has already been fetched.
func directoryCheckout(settings *entities.Settings, changes ...repositories.PathChange) *doubles.StubCheckout {
	return &doubles.StubCheckout{
		DirPath: "directory",
		Refs: map[string]entities.CommitID{
			settings.BaselineRef():    baselineCommit,
			settings.PullRequestRef(): candidateCommit,
		},
		Trees: map[entities.CommitID]entities.TreeID{
			baselineCommit:  baselineTree,
			candidateCommit: candidateTree,
		},
		Changes: changes,
	}
}

func modifiedDirectory(added ...string) *doubles.StubPathChange {
	return &doubles.StubPathChange{
		From:       "directory.yaml",
		To:         "directory.yaml",
		ActionName: "modify",
		Patch:      directoryPatch(added...),
	}
}
