package source

type (
	// FileID uniquely identifies a source file within a Files registry.
	FileID uint32
)

// NoFileID marks the absence of a file (synthesized code).
const NoFileID FileID = 0

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// IsZero reports whether the position is unknown.
func (lc LineCol) IsZero() bool {
	return lc.Line == 0 && lc.Col == 0
}
