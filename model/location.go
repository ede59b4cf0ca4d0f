package model

import (
	"strings"
)

// Position is a zero-based line/column pair, stable across the pipeline.
type Position struct {
	Line   int
	Column int
}

// Less reports whether p sorts before other in (line, column) order.
func (p Position) Less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// LessEq reports whether p sorts before or at other.
func (p Position) LessEq(other Position) bool {
	return p == other || p.Less(other)
}

// Location is a half-open source span: file path plus start/end position.
type Location struct {
	FilePath string
	Start    Position
	End      Position
}

// SymbolID is the canonical wire form "<normalized-module-path>#<name>".
type SymbolID string

// NewSymbolID builds a SymbolID from a module path and a name, normalizing
// the path the same way on every call so textual equality implies identity.
func NewSymbolID(modulePath, name string) SymbolID {
	return SymbolID(NormalizeModulePath(modulePath) + "#" + name)
}

// NormalizeModulePath strips a recognized source-file extension and collapses
// a leading "./" so that two spellings of the same module compare equal.
func NormalizeModulePath(path string) string {
	path = strings.TrimPrefix(path, "./")
	for strings.HasPrefix(path, "../") {
		path = strings.TrimPrefix(path, "../")
	}
	for _, ext := range []string{".tsx", ".jsx", ".ts", ".js", ".mjs", ".cjs", ".py", ".rs"} {
		if strings.HasSuffix(path, ext) {
			path = strings.TrimSuffix(path, ext)
			break
		}
	}
	return path
}
