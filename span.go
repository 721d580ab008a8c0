package htmldoc

import "fmt"

// Pos is a position as reported by the parser: 1-based line and column
// plus byte offsets into the source.
type Pos struct {
	Line        int // 1-based line number
	Column      int // 1-based column number
	StartOffset int // byte offset of the first character
	EndOffset   int // byte offset one past the last character
}

// IsZero returns true if the position is uninitialized.
func (p Pos) IsZero() bool {
	return p.Line == 0 && p.Column == 0 && p.StartOffset == 0 && p.EndOffset == 0
}

// Position is a 0-based line/column pair used in resolved ranges.
type Position struct {
	Line   int
	Column int
}

// Before reports whether p precedes q in (line, column) order.
func (p Position) Before(q Position) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Column < q.Column)
}

// SourceRange is a resolved text span: 0-based, end-exclusive.
// Start == End denotes an empty span.
type SourceRange struct {
	File  string
	Start Position
	End   Position
}

func (r SourceRange) String() string {
	return fmt.Sprintf("%s:%d:%d-%d:%d", r.File, r.Start.Line, r.Start.Column, r.End.Line, r.End.Column)
}
