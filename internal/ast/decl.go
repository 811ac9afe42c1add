package ast

// Visibility is a function's declared visibility.
type Visibility int

const (
	VisibilityInternal Visibility = iota
	VisibilityPublic
)

// ArgDecl is one formal parameter of a function: its name and type.
type ArgDecl struct {
	span
	Name Var
	Type Type
}

func NewArgDecl(name Var, typ Type, start, end int) ArgDecl {
	return ArgDecl{span: newSpan(start, end), Name: name, Type: typ}
}

// FunctionSignature is a function's externally-visible shape: its type
// formals, argument list, return types (a tuple is zero-or-more types),
// and the set of struct types it may acquire global state for.
type FunctionSignature struct {
	span
	TypeFormals []TypeFormal
	Args        []ArgDecl
	ReturnTypes []Type
	Acquires    []StructName
}

func NewFunctionSignature(typeFormals []TypeFormal, args []ArgDecl, returnTypes []Type, acquires []StructName, start, end int) FunctionSignature {
	return FunctionSignature{
		span: newSpan(start, end), TypeFormals: typeFormals, Args: args,
		ReturnTypes: returnTypes, Acquires: acquires,
	}
}

// FunctionBody is either a native declaration (no block, a ';' follows the
// signature) or a concrete function block.
type FunctionBody struct {
	Native bool
	Block  *Block // nil when Native
}

// Function is a complete function definition: name, visibility, signature,
// zero or more spec conditions, and a body.
type Function struct {
	span
	Name       FunctionName
	Visibility Visibility
	Signature  FunctionSignature
	Specs      []Condition
	Body       FunctionBody
}

func NewFunction(name FunctionName, vis Visibility, sig FunctionSignature, specs []Condition, body FunctionBody, start, end int) Function {
	return Function{span: newSpan(start, end), Name: name, Visibility: vis, Signature: sig, Specs: specs, Body: body}
}

// StructVisibility distinguishes an ordinary struct from a resource
// (linear, cannot be copied or dropped implicitly).
type StructVisibility int

const (
	StructOrdinary StructVisibility = iota
	StructResource
)

// FieldDecl is one "name: Type" entry of a struct's field list.
type FieldDecl struct {
	span
	Name Field
	Type Type
}

func NewFieldDecl(name Field, typ Type, start, end int) FieldDecl {
	return FieldDecl{span: newSpan(start, end), Name: name, Type: typ}
}

// StructDefinition is a "struct"/"resource" declaration: its name, type
// formals, fields (absent for a native struct), and invariants.
type StructDefinition struct {
	span
	Name        StructName
	Visibility  StructVisibility
	Native      bool
	TypeFormals []TypeFormal
	Fields      []FieldDecl
	Invariants  []Invariant
}

func NewStructDefinition(name StructName, vis StructVisibility, native bool, typeFormals []TypeFormal, fields []FieldDecl, invariants []Invariant, start, end int) StructDefinition {
	return StructDefinition{
		span: newSpan(start, end), Name: name, Visibility: vis, Native: native,
		TypeFormals: typeFormals, Fields: fields, Invariants: invariants,
	}
}
