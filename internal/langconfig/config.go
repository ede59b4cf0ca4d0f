// Package langconfig holds the single source-of-truth configuration table
// described in spec §4.1. Both the class detector and the method-call
// detector read the same *Config value; the 15% of true per-language
// divergence lives in free functions in classdetect/ and calldetect/,
// selected by the Language tag, not in a class hierarchy of detector types
// (design notes, "Configuration over inheritance").
package langconfig

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/codepathfinder/polyglot-callgraph/model"
)

// MemberAccessFields names the fields a member-access node exposes its
// receiver and method under. Rust needs alternates because a call can also
// arrive as a scoped_identifier (Type::method) or a generic_function
// (f::<T>()) rather than a plain field_expression: scoped_identifier
// exposes path/name instead of value/field, and generic_function exposes
// function/type_arguments.
type MemberAccessFields struct {
	NodeTypes     []string                `yaml:"node_types"`
	ReceiverField string                  `yaml:"receiver_field"`
	MethodField   string                  `yaml:"method_field"`
	Alternates    []MemberAccessAlternate `yaml:"alternates"`
}

// MemberAccessAlternate overrides ReceiverField/MethodField for one member-
// access node type whose shape differs from the language's default.
type MemberAccessAlternate struct {
	NodeType      string `yaml:"node_type"`
	ReceiverField string `yaml:"receiver_field"`
	MethodField   string `yaml:"method_field"`
}

// FieldsFor returns the receiver/method field names to use for a
// member-access node of the given type: the matching Alternates entry when
// one is configured, else the language's default ReceiverField/MethodField.
func (m MemberAccessFields) FieldsFor(nodeType string) (receiverField, methodField string) {
	for _, alt := range m.Alternates {
		if alt.NodeType == nodeType {
			return alt.ReceiverField, alt.MethodField
		}
	}
	return m.ReceiverField, m.MethodField
}

// ClassShape names the node types and field names that make up a
// class/struct/trait/interface declaration in this language.
type ClassShape struct {
	NodeTypes       []string `yaml:"node_types"`
	NameField       string   `yaml:"name_field"`
	BodyField       string   `yaml:"body_field"`
	GenericsField   string   `yaml:"generics_field"`
	SuperclassField string   `yaml:"superclass_field"` // empty when the language uses a heritage clause instead
	HeritageField   string   `yaml:"heritage_field"`   // empty when the language uses a superclass field instead
	ImplementsField string   `yaml:"implements_field"`
}

// ParameterShape segments parameter node types by category so the class
// detector can tell a rest parameter from an optional one without per-call
// string comparisons scattered through the walker.
type ParameterShape struct {
	RegularTypes  []string `yaml:"regular_types"`
	OptionalTypes []string `yaml:"optional_types"`
	RestTypes     []string `yaml:"rest_types"`
	TypedTypes    []string `yaml:"typed_types"`
}

// Config is one language's complete configuration-table entry.
type Config struct {
	Language Language `yaml:"language"`

	CallExpressionTypes []string           `yaml:"call_expression_types"`
	MemberAccess         MemberAccessFields `yaml:"member_access"`
	Class                ClassShape         `yaml:"class"`
	MemberNodeTypes      []string           `yaml:"member_node_types"`
	PropertyNodeTypes    []string           `yaml:"property_node_types"`
	Parameters           ParameterShape     `yaml:"parameters"`

	// ArgumentSkipTokens lists node types to skip when counting arguments
	// (punctuation, comments).
	ArgumentSkipTokens []string `yaml:"argument_skip_tokens"`

	// PrivatePrefixes/ProtectedPrefixes are textual name-prefix conventions
	// ("#" for JS private fields, "_"/"__" for Python).
	PrivatePrefixes   []string `yaml:"private_prefixes"`
	ProtectedPrefixes []string `yaml:"protected_prefixes"`

	// Keyword modifiers recognized on a member (e.g. Java-family "private",
	// "static"; Python relies on decorators instead, see classdetect/python.go).
	StaticKeywords   []string `yaml:"static_keywords"`
	AbstractKeywords []string `yaml:"abstract_keywords"`

	ConstructorName string `yaml:"constructor_name"`

	// UppercaseIsStatic: an identifier receiver like "MyClass" (vs "myVar")
	// is treated as a static-method receiver by convention.
	UppercaseIsStatic bool `yaml:"uppercase_is_static"`

	// StaticReceiverLiterals are receiver spellings that always denote a
	// static call regardless of casing (e.g. Python's "cls").
	StaticReceiverLiterals []string `yaml:"static_receiver_literals"`

	// SelfKeywords are the language's self-reference spellings ("this",
	// "self", "cls") consulted by the receiver-type resolver.
	SelfKeywords []string `yaml:"self_keywords"`

	// LiteralTypeNames maps a literal AST node type to the built-in type
	// name the receiver-type resolver should report for it.
	LiteralTypeNames map[string]string `yaml:"literal_type_names"`
}

// Language is re-exported so config files don't need to import model just
// for the tag type.
type Language = model.Language

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// LoadDefault returns the embedded built-in configuration for lang.
func LoadDefault(lang Language) (*Config, error) {
	data, err := defaultsFS.ReadFile(fmt.Sprintf("defaults/%s.yaml", lang))
	if err != nil {
		return nil, fmt.Errorf("langconfig: no default for %q: %w", lang, err)
	}
	return parse(data)
}

// LoadFile loads an operator-supplied override (§1a): a YAML document in the
// same shape as the embedded defaults, replacing the built-in entirely for
// that language.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("langconfig: read %s: %w", path, err)
	}
	return parse(data)
}

func parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("langconfig: parse: %w", err)
	}
	return &c, nil
}

// Table is the set of configurations active for a pipeline run, keyed by
// language. It is read-only after initialization (§5, Shared resources).
type Table struct {
	configs map[Language]*Config
}

// NewTable builds a Table from the four embedded defaults, applying any
// per-language overrides supplied.
func NewTable(overrides map[Language]*Config) (*Table, error) {
	t := &Table{configs: make(map[Language]*Config)}
	for _, lang := range []Language{model.LangJavaScript, model.LangTypeScript, model.LangPython, model.LangRust} {
		cfg, err := LoadDefault(lang)
		if err != nil {
			return nil, err
		}
		t.configs[lang] = cfg
	}
	for lang, cfg := range overrides {
		t.configs[lang] = cfg
	}
	return t, nil
}

// Get returns the configuration for lang, or nil if the language is
// unsupported (§6, "Any other value yields an empty analysis result").
func (t *Table) Get(lang Language) *Config {
	return t.configs[lang]
}
