package ast

// Kind classifies a generic type parameter: whether values of that type may
// be freely copied/dropped, must be treated as a resource, or either
// (All), per spec.md §4.4.
type Kind int

const (
	KindAll Kind = iota
	KindResource
	KindUnrestricted
)

func (k Kind) String() string {
	switch k {
	case KindResource:
		return "resource"
	case KindUnrestricted:
		return "unrestricted"
	default:
		return "all"
	}
}

// TypeFormal is one entry of a generic declaration's type-parameter list:
// a name plus the kind constraint it must satisfy. A bare name with no
// ":Kind" annotation defaults to KindAll (spec.md §4.4, syntax.rs
// parse_type_formal).
type TypeFormal struct {
	span
	Var  TypeVar
	Kind Kind
}

func NewTypeFormal(v TypeVar, k Kind, start, end int) TypeFormal {
	return TypeFormal{span: newSpan(start, end), Var: v, Kind: k}
}

// QualifiedStructIdent names a struct as the grammar actually writes it:
// either bare ("Struct", meaning a struct defined in the enclosing
// module) or qualified by a module alias bound by an import statement
// ("Alias.Struct"). Resolving the alias to the module it actually names
// is name resolution, out of this parser's scope (spec.md §1); the parser
// only records the alias text it saw.
type QualifiedStructIdent struct {
	span
	Module    ModuleName // zero value means "the enclosing module"
	Qualified bool
	Name      StructName
}

func NewQualifiedStructIdent(module ModuleName, qualified bool, name StructName, start, end int) QualifiedStructIdent {
	return QualifiedStructIdent{span: newSpan(start, end), Module: module, Qualified: qualified, Name: name}
}

// Type is any of the grammar's type productions: primitives, a qualified
// struct instantiation, a reference, or a bare type-parameter reference.
type Type interface {
	Node
	isType()
}

type TypeAddress struct{ span }
type TypeU8 struct{ span }
type TypeU64 struct{ span }
type TypeU128 struct{ span }
type TypeBool struct{ span }
type TypeByteArray struct{ span }

// TypeStruct is a qualified struct name applied to zero or more type
// arguments, e.g. "Module.Struct<u64, bool>".
type TypeStruct struct {
	span
	Ident QualifiedStructIdent
	Actuals []Type
}

// TypeReference is "&T" or "&mut T".
type TypeReference struct {
	span
	Mutable bool
	Inner   Type
}

// TypeParameter is a bare name standing for a generic type parameter bound
// by the enclosing declaration's type formals.
type TypeParameter struct {
	span
	Var TypeVar
}

func (TypeAddress) isType()   {}
func (TypeU8) isType()        {}
func (TypeU64) isType()       {}
func (TypeU128) isType()      {}
func (TypeBool) isType()      {}
func (TypeByteArray) isType() {}
func (TypeStruct) isType()    {}
func (TypeReference) isType() {}
func (TypeParameter) isType() {}

func NewTypeAddress(start, end int) TypeAddress     { return TypeAddress{newSpan(start, end)} }
func NewTypeU8(start, end int) TypeU8               { return TypeU8{newSpan(start, end)} }
func NewTypeU64(start, end int) TypeU64             { return TypeU64{newSpan(start, end)} }
func NewTypeU128(start, end int) TypeU128           { return TypeU128{newSpan(start, end)} }
func NewTypeBool(start, end int) TypeBool           { return TypeBool{newSpan(start, end)} }
func NewTypeByteArray(start, end int) TypeByteArray { return TypeByteArray{newSpan(start, end)} }

func NewTypeStruct(ident QualifiedStructIdent, actuals []Type, start, end int) TypeStruct {
	return TypeStruct{span: newSpan(start, end), Ident: ident, Actuals: actuals}
}

func NewTypeReference(mutable bool, inner Type, start, end int) TypeReference {
	return TypeReference{span: newSpan(start, end), Mutable: mutable, Inner: inner}
}

func NewTypeParameter(v TypeVar, start, end int) TypeParameter {
	return TypeParameter{span: newSpan(start, end), Var: v}
}
