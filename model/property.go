package model

// PropertyFlags holds the boolean modifiers a property may carry.
type PropertyFlags struct {
	IsStatic   bool
	IsPrivate  bool
	IsProtected bool
	IsReadonly bool
}

// PropertyDefinition is a field/attribute declared on a class, or derived
// from a constructor parameter per the Python extender's convention
// (see classdetect/python.go).
type PropertyDefinition struct {
	Name         string
	Location     Location
	Type         string // empty when not annotated
	InitialValue string // empty when absent
	Flags        PropertyFlags
}
