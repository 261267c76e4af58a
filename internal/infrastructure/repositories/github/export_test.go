package github

// ParseStandardGitURL exports parseStandardGitURL for testing.
var ParseStandardGitURL = parseStandardGitURL //nolint:gochecknoglobals // test export
