package entities

// PullRequestInfo is the hosting provider's view of the pull request under test.
type PullRequestInfo struct {
	Number  int
	Title   string
	State   string
	HeadSHA string
	URL     string
}

// Open reports whether the pull request is still open.
func (p PullRequestInfo) Open() bool {
	return p.State == "open"
}
