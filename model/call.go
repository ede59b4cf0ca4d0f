package model

// CallBase holds the fields common to every call-site kind. It is embedded,
// never used standalone — see FunctionCallInfo, MethodCallInfo and
// ConstructorCallInfo below, which form the tagged-union "CallInfo" family
// described in the design notes: a sum type over three structs rather than
// an interface-inheritance chain.
type CallBase struct {
	// CallerName is the enclosing function/method, qualified by class for
	// methods (e.g. "MyClass.m"), "<module>" for top-level code, or
	// "<anonymous>" for an unnamed closure.
	CallerName string

	Location      Location
	FilePath      string
	ArgumentsCount int
}

// FunctionCallInfo is a plain function call: `foo(x, y)`.
type FunctionCallInfo struct {
	CallBase
	FunctionName string
}

// MethodCallInfo is a call through a receiver: `obj.method(x)`.
type MethodCallInfo struct {
	CallBase
	MethodName string

	// Receiver is the textual form of the receiver expression.
	Receiver string
	// ReceiverType is set only when the Receiver-Type Resolver (§4.5)
	// could establish it from local evidence.
	ReceiverType string

	IsStaticMethod bool
	IsChainedCall  bool
	IsOptional     bool
	IsSuperCall    bool
	IsMagicMethod  bool
	IsClassmethod  bool

	// Rust-only flags; zero-valued for every other language.
	IsUnsafe   bool
	IsRefMethod bool
	IsMutRef   bool
	TraitImpl  string // "<Trait>" of a `<Type as Trait>::method` call
	ImplType   string // "<Type>" of the same

	// TypeScript-only: type arguments from `service.get<User>(...)`.
	TypeArguments []string
	// Rust-only: turbofish type parameters from `f::<T, 'a>()`.
	TurbofishTypes []string
}

// ConstructorCallInfo is an instantiation: `new Foo()` / `Foo()` / `Foo::new()`.
type ConstructorCallInfo struct {
	CallBase
	ClassName string
}
