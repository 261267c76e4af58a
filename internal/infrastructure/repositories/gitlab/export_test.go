package gitlab

// ProjectPath exports projectPath for testing.
var ProjectPath = projectPath //nolint:gochecknoglobals // test export
