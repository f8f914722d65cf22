package report

// Source is a compilation unit: the file path a program was read from plus
// its full text, kept around purely so diagnostics can print the offending
// source text alongside an error message.
type Source struct {
	// Path is the path the source was read from, or "<stdin>"/"<string>" for
	// sources that were not read from a file on disk.
	Path string

	// Text is the full source text.
	Text string
}

// NewSource creates a Source from a path and its already-read contents.
func NewSource(path, text string) *Source {
	return &Source{Path: path, Text: text}
}
