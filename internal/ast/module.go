package ast

import "fmt"

// ModuleName was defined in names.go; AccountAddress also.

// ModuleIdent is an unqualified module reference inside the module whose
// imports are in scope: either a plain ModuleName or the literal
// "Transaction" (meaning "the current transaction script's module"),
// matching syntax.rs's ModuleIdent::Transaction / ::Module(ModuleName).
type ModuleIdent struct {
	span
	Transaction bool
	Name        ModuleName
}

func NewModuleIdentTransaction(start, end int) ModuleIdent {
	return ModuleIdent{span: newSpan(start, end), Transaction: true}
}

func NewModuleIdentName(name ModuleName, start, end int) ModuleIdent {
	return ModuleIdent{span: newSpan(start, end), Name: name}
}

// QualifiedModuleIdent fully qualifies a module by the account address (or
// the literal "Transaction") that published it, plus its name.
type QualifiedModuleIdent struct {
	span
	Address AccountAddress
	IsTxn   bool
	Name    ModuleName
}

func NewQualifiedModuleIdent(addr AccountAddress, isTxn bool, name ModuleName, start, end int) QualifiedModuleIdent {
	return QualifiedModuleIdent{span: newSpan(start, end), Address: addr, IsTxn: isTxn, Name: name}
}

// ImportDefinition brings a module into scope under its own name or an
// alias ("import 0x1.M as N;").
type ImportDefinition struct {
	span
	Ident QualifiedModuleIdent
	Alias *ModuleName
}

func NewImportDefinition(ident QualifiedModuleIdent, alias *ModuleName, start, end int) ImportDefinition {
	return ImportDefinition{span: newSpan(start, end), Ident: ident, Alias: alias}
}

// ModuleDefinition is one "module M { ... }" unit: imports, synthetic
// definitions, struct definitions, and function definitions.
type ModuleDefinition struct {
	span
	Name       ModuleName
	Imports    []ImportDefinition
	Synthetics []SyntheticDefinition
	Structs    []StructDefinition
	Functions  []Function
}

func NewModuleDefinition(name ModuleName, imports []ImportDefinition, synthetics []SyntheticDefinition, structs []StructDefinition, functions []Function, start, end int) ModuleDefinition {
	return ModuleDefinition{
		span: newSpan(start, end), Name: name, Imports: imports,
		Synthetics: synthetics, Structs: structs, Functions: functions,
	}
}

// Script is a transaction script: its imports and its single "main"
// function.
type Script struct {
	span
	Imports []ImportDefinition
	Main    Function
}

func NewScript(imports []ImportDefinition, main Function, start, end int) Script {
	return Script{span: newSpan(start, end), Imports: imports, Main: main}
}

// Program is a full transaction: zero or more helper modules plus the
// script that runs against them.
type Program struct {
	span
	Modules []ModuleDefinition
	Script  Script
}

func NewProgram(modules []ModuleDefinition, script Script, start, end int) Program {
	return Program{span: newSpan(start, end), Modules: modules, Script: script}
}

// ScriptOrModule is the result of the "parse either a script or a module"
// entry point.
type ScriptOrModule struct {
	span
	IsScript bool
	Script   Script
	Module   ModuleDefinition
}

func NewScriptOrModuleScript(s Script, start, end int) ScriptOrModule {
	return ScriptOrModule{span: newSpan(start, end), IsScript: true, Script: s}
}

func NewScriptOrModuleModule(m ModuleDefinition, start, end int) ScriptOrModule {
	return ScriptOrModule{span: newSpan(start, end), Module: m}
}

func (m QualifiedModuleIdent) String() string {
	if m.IsTxn {
		return fmt.Sprintf("Transaction.%s", m.Name.Name)
	}
	return fmt.Sprintf("%s.%s", m.Address, m.Name.Name)
}
