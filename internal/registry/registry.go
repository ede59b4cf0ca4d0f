// Package registry holds well-known receiver-type knowledge that would
// otherwise be scattered as inline literals through the resolver: built-in
// type names and a handful of common standard-library/framework
// idioms per language, modeled on the teacher's builtin_registry.go /
// stdlib_registry.go split between "language builtins" and "known library
// surface."
package registry

import "github.com/codepathfinder/polyglot-callgraph/model"

// Builtin describes a well-known type: its name and whether instances of it
// are commonly chained. Chainable is recorded here only; the resolver does
// not read it.
type Builtin struct {
	Name      string
	Chainable bool
}

// Registry is a read-only table of well-known types and stdlib receivers
// per language, built once at startup and shared across every worker.
type Registry struct {
	builtins map[model.Language]map[string]Builtin
	stdlib   map[model.Language]map[string]string // receiver identifier -> resolved type
}

// New builds the default registry covering the four supported languages.
func New() *Registry {
	r := &Registry{
		builtins: map[model.Language]map[string]Builtin{
			model.LangJavaScript: {
				"Array":  {Name: "Array", Chainable: true},
				"Object": {Name: "Object", Chainable: false},
				"String": {Name: "String", Chainable: true},
				"Map":    {Name: "Map", Chainable: false},
				"Set":    {Name: "Set", Chainable: false},
				"Promise": {Name: "Promise", Chainable: true},
			},
			model.LangTypeScript: {
				"Array":  {Name: "Array", Chainable: true},
				"Object": {Name: "Object", Chainable: false},
				"Map":    {Name: "Map", Chainable: false},
				"Set":    {Name: "Set", Chainable: false},
				"Promise": {Name: "Promise", Chainable: true},
			},
			model.LangPython: {
				"list": {Name: "list", Chainable: false},
				"dict": {Name: "dict", Chainable: false},
				"set":  {Name: "set", Chainable: false},
				"str":  {Name: "str", Chainable: true},
			},
			model.LangRust: {
				"Vec":    {Name: "Vec", Chainable: true},
				"String": {Name: "String", Chainable: true},
				"Option": {Name: "Option", Chainable: true},
				"Result": {Name: "Result", Chainable: true},
				"HashMap": {Name: "HashMap", Chainable: false},
			},
		},
		stdlib: map[model.Language]map[string]string{
			model.LangJavaScript: {
				"console": "Console",
				"JSON":    "JSON",
				"Math":    "Math",
			},
			model.LangPython: {
				"os":  "module:os",
				"sys": "module:sys",
				"re":  "module:re",
			},
			model.LangRust: {
				"std": "module:std",
			},
		},
	}
	return r
}

// Builtin looks up a well-known type name for lang.
func (r *Registry) Builtin(lang model.Language, name string) (Builtin, bool) {
	b, ok := r.builtins[lang][name]
	return b, ok
}

// StdlibReceiver resolves a bare receiver identifier (e.g. "os", "console")
// to a synthetic module type, when the receiver is a recognized standard
// library import rather than a user-defined binding.
func (r *Registry) StdlibReceiver(lang model.Language, receiver string) (string, bool) {
	t, ok := r.stdlib[lang][receiver]
	return t, ok
}
