package model

// ImportEntry is one imported binding in a file.
type ImportEntry struct {
	LocalName     string
	SourceModule  string
	ImportedName  string // empty for a default/namespace import
	IsDefault     bool
	IsTypeOnly    bool
	IsNamespace   bool
}

// FileGraph is one file's entry in a ModuleGraph: what it imports and what
// names it exports.
type FileGraph struct {
	Imports []ImportEntry
	Exports map[string]bool
}

// ModuleGraph maps every analyzed file to its imports and exports. It is an
// external collaborator per §6 — the pipeline builds it once per run and
// both the per-file and global phases read it.
type ModuleGraph struct {
	Files map[string]*FileGraph
}

// NewModuleGraph returns an empty, ready-to-populate graph.
func NewModuleGraph() *ModuleGraph {
	return &ModuleGraph{Files: make(map[string]*FileGraph)}
}

// FileEntry returns (creating if necessary) the entry for filePath.
func (g *ModuleGraph) FileEntry(filePath string) *FileGraph {
	fg, ok := g.Files[filePath]
	if !ok {
		fg = &FileGraph{Exports: make(map[string]bool)}
		g.Files[filePath] = fg
	}
	return fg
}

// ResolveExport finds the file that exports `name`, if any file in the graph
// does. The hierarchy builder does not call it: hierarchy.Builder resolves
// base and interface/trait names by a same-file-then-name scan instead.
func (g *ModuleGraph) ResolveExport(name string) (filePath string, ok bool) {
	for fp, fg := range g.Files {
		if fg.Exports[name] {
			return fp, true
		}
	}
	return "", false
}
