package host

// Host is the capability surface the agent action protocol executes
// against. Implementations exist for local execution and for connected
// editors; the protocol itself never touches the OS directly.
type Host interface {
	// Root returns the workspace root, or "" when no workspace is open.
	Root() string

	ReadFile(path string) ([]byte, error)
	// WriteFile creates parent directories as needed and overwrites
	// unconditionally.
	WriteFile(path string, data []byte) error
	FileExists(path string) bool

	// RunInTerminal submits a literal command line to an interactive
	// terminal surface. Fire-and-forget: no exit code or output comes back.
	RunInTerminal(command string) error

	// SearchProject triggers a project-wide text search with the query.
	SearchProject(query string) error
}
