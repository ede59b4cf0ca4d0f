package model

// DispatchKind classifies how a method call resolves at runtime (GLOSSARY).
type DispatchKind string

const (
	DispatchStatic    DispatchKind = "STATIC"
	DispatchVirtual   DispatchKind = "VIRTUAL"
	DispatchInterface DispatchKind = "INTERFACE"
	DispatchDynamic   DispatchKind = "DYNAMIC"
)

// EnrichedFunctionCall layers import-resolution and confidence scoring on
// top of a FunctionCallInfo (§4.8).
type EnrichedFunctionCall struct {
	FunctionCallInfo

	// ResolvedFunction is "<source_module>#<name>" when the function name
	// was resolved via an import, else "<file_path>#<name>".
	ResolvedFunction string
	IsImported       bool
	ReturnType       string // not set by the enrichment pass, so empty in pipeline output
	Confidence       float64
}

// EnrichedMethodCall layers dispatch-kind classification and confidence
// scoring on top of a MethodCallInfo (§4.8).
type EnrichedMethodCall struct {
	MethodCallInfo

	DefiningClass     SymbolID
	IsOverride        bool
	OverrideChain     []SymbolID
	IsInterfaceMethod bool

	DispatchType    DispatchKind
	PossibleTargets []SymbolID
	IsVirtualCall   bool

	Confidence float64
}

// EnrichedConstructorCall layers abstract-class rejection and generic-type
// resolution on top of a ConstructorCallInfo (§4.8).
type EnrichedConstructorCall struct {
	ConstructorCallInfo

	IsValid           bool
	IsAbstract        bool
	ResolvedGenerics  []string
}

// EnrichedFileAnalysis is one file's final output: every enriched call plus
// the classes that file defined (§6, Outbound).
type EnrichedFileAnalysis struct {
	FilePath          string
	FunctionCalls     []EnrichedFunctionCall
	MethodCalls       []EnrichedMethodCall
	ConstructorCalls  []EnrichedConstructorCall
	Classes           []*ClassDefinition
}
