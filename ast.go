package stlc

import (
	"strconv"
)

type Type interface {
	typ()
	String() string
}

type BoolType struct{}

type FunctionType struct {
	From Type
	To   Type
}

func (BoolType) typ()     {}
func (FunctionType) typ() {}

// Bool is the only base type.
var Bool Type = BoolType{}

func Function(from, to Type) Type {
	return FunctionType{From: from, To: to}
}

func (BoolType) String() string {
	return "Bool"
}

func (f FunctionType) String() string {
	from := f.From.String()
	if _, ok := f.From.(FunctionType); ok {
		from = "(" + from + ")"
	}
	return from + " -> " + f.To.String()
}

func TypesEqual(a, b Type) bool {
	switch a := a.(type) {
	case BoolType:
		_, ok := b.(BoolType)
		return ok
	case FunctionType:
		b, ok := b.(FunctionType)
		return ok && TypesEqual(a.From, b.From) && TypesEqual(a.To, b.To)
	}
	return false
}

type Binding interface {
	binding()
}

// NameBinding is a name whose type is not known yet.
type NameBinding struct{}

type VariableBinding struct {
	Type Type
}

func (NameBinding) binding()     {}
func (VariableBinding) binding() {}

// NoBinder marks an abstraction whose parameter was never registered in a
// Context.
const NoBinder = -1

type Term interface {
	term()
	String() string
	ContextString(ctx *Context) string
}

type True struct{}

type False struct{}

// Variable refers to a Context entry by its absolute position.
type Variable struct {
	Index int
}

type Conditional struct {
	Cond Term
	Then Term
	Else Term
}

// Abstraction binds Param in Body. An unannotated parameter takes the type
// of the declared binding named Param, never that of an enclosing parameter.
// Binder is the context slot registered for the parameter, or NoBinder.
type Abstraction struct {
	Param     string
	ParamType Type
	Binder    int
	Body      Term
}

type Application struct {
	Func Term
	Arg  Term
}

func (True) term()        {}
func (False) term()       {}
func (Variable) term()    {}
func (Conditional) term() {}
func (Abstraction) term() {}
func (Application) term() {}

func (True) String() string {
	return "true"
}
func (False) String() string {
	return "false"
}
func (v Variable) String() string {
	return "#" + strconv.Itoa(v.Index)
}
func (c Conditional) String() string {
	return "if " + c.Cond.String() + " then " + c.Then.String() + " else " + c.Else.String()
}
func (a Abstraction) String() string {
	return "(fun " + a.param() + " -> " + a.Body.String() + ")"
}
func (a Application) String() string {
	return "(" + a.Func.String() + " " + a.Arg.String() + ")"
}

func (True) ContextString(*Context) string {
	return "true"
}
func (False) ContextString(*Context) string {
	return "false"
}
func (v Variable) ContextString(ctx *Context) string {
	name, err := ctx.NameAt(v.Index)
	if err != nil {
		return v.String()
	}
	return name
}
func (c Conditional) ContextString(ctx *Context) string {
	return "if " + c.Cond.ContextString(ctx) + " then " + c.Then.ContextString(ctx) + " else " + c.Else.ContextString(ctx)
}
func (a Abstraction) ContextString(ctx *Context) string {
	return "(fun " + a.param() + " -> " + a.Body.ContextString(ctx) + ")"
}
func (a Application) ContextString(ctx *Context) string {
	return "(" + a.Func.ContextString(ctx) + " " + a.Arg.ContextString(ctx) + ")"
}

func (a Abstraction) param() string {
	if a.ParamType == nil {
		return a.Param
	}
	if _, ok := a.ParamType.(FunctionType); ok {
		return a.Param + ": (" + a.ParamType.String() + ")"
	}
	return a.Param + ": " + a.ParamType.String()
}
