package entities

import (
	"iter"
	"slices"
	"strings"
)

const (
	// DefaultRecordMarker is the list-item prefix that starts a record in the
	// tracked index file.
	DefaultRecordMarker = "-"

	additionPrefix = "+"
)

// ExtractAddedRecords scans the lines of a unified diff and yields one record
// per added line that starts a new list item, in diff order.
//
// A line matches when it begins with the addition prefix immediately followed
// by marker ("+-" by default). The record is the rest of the line, trimmed.
// Context lines, deletions, file headers and hunk headers never match.
//
// Each record must fit on a single line of the index file. Continuation lines
// of a multi-line list item are not merged into the record.
func ExtractAddedRecords(lines []string, marker string) iter.Seq[string] {
	if marker == "" {
		marker = DefaultRecordMarker
	}
	prefix := additionPrefix + marker

	return func(yield func(string) bool) {
		for _, line := range lines {
			if !strings.HasPrefix(line, prefix) {
				continue
			}
			if !yield(strings.TrimSpace(strings.TrimPrefix(line, prefix))) {
				return
			}
		}
	}
}

// CollectAddedRecords is ExtractAddedRecords materialized into a slice.
func CollectAddedRecords(diff DiffResult, marker string) []string {
	if !diff.Changed {
		return []string{}
	}
	records := slices.Collect(ExtractAddedRecords(diff.Lines, marker))
	if records == nil {
		return []string{}
	}
	return records
}
