package stlc

// TermBuilder assembles terms by hand, registering bindings in its Context
// the same way lowering a parsed statement does.
type TermBuilder struct {
	ctx *Context
}

func NewTermBuilder(ctx *Context) *TermBuilder {
	return &TermBuilder{ctx: ctx}
}

func (b *TermBuilder) Context() *Context {
	return b.ctx
}

func (b *TermBuilder) True() Term {
	return True{}
}

func (b *TermBuilder) False() Term {
	return False{}
}

func (b *TermBuilder) VarTyped(typ Type, name string) Term {
	return Variable{Index: b.ctx.AddBinding(name, VariableBinding{Type: typ})}
}

func (b *TermBuilder) Var(name string) Term {
	return Variable{Index: b.ctx.AddBinding(name, NameBinding{})}
}

// Ref refers to the binding name currently resolves to. An unresolved name
// yields a variable that fails type checking.
func (b *TermBuilder) Ref(name string) Term {
	idx, ok := b.ctx.IndexOf(name)
	if !ok {
		return Variable{Index: -1}
	}
	return Variable{Index: idx}
}

func (b *TermBuilder) Conditional(cond, then, els Term) Term {
	return Conditional{Cond: cond, Then: then, Else: els}
}

func (b *TermBuilder) Application(fn, arg Term) Term {
	return Application{Func: fn, Arg: arg}
}

func (b *TermBuilder) Abstraction(param string, body Term) Term {
	return Abstraction{Param: param, Binder: NoBinder, Body: body}
}

func (b *TermBuilder) Lambda(param string, body func(*TermBuilder) Term) Term {
	return b.lambda(param, nil, body)
}

func (b *TermBuilder) LambdaTyped(param string, typ Type, body func(*TermBuilder) Term) Term {
	return b.lambda(param, typ, body)
}

func (b *TermBuilder) lambda(param string, typ Type, body func(*TermBuilder) Term) Term {
	if b.ctx.Policy == FlatScoping {
		return Abstraction{Param: param, ParamType: typ, Binder: NoBinder, Body: body(b)}
	}
	scope := b.ctx.EnterScope()
	defer b.ctx.LeaveScope(scope)
	binder := b.ctx.AddBinding(param, NameBinding{})
	return Abstraction{Param: param, ParamType: typ, Binder: binder, Body: body(b)}
}
