package stlc

import (
	"io"
	"log/slog"
)

func CheckType(t Term, ctx *Context) (Type, error) {
	return NewChecker(ctx).Check(t)
}

type CheckerOption func(*Checker)

func WithCheckerLogger(l *slog.Logger) CheckerOption {
	return func(c *Checker) {
		c.log = l
	}
}

type param struct {
	binder int
	typ    Type
}

// Checker types terms against a Context without modifying it. Abstraction
// parameters live on the checker's own scope stack while their body is
// checked.
type Checker struct {
	ctx    *Context
	log    *slog.Logger
	params []param
}

func NewChecker(ctx *Context, opts ...CheckerOption) *Checker {
	c := &Checker{
		ctx: ctx,
		log: discardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Checker) Check(t Term) (Type, error) {
	c.params = c.params[:0]
	return c.check(t)
}

func (c *Checker) check(t Term) (Type, error) {
	c.log.Debug("check", "term", t.String(), "depth", len(c.params))
	switch t := t.(type) {
	case True, False:
		return Bool, nil
	case Variable:
		return c.checkVariable(t)
	case Conditional:
		return c.checkConditional(t)
	case Abstraction:
		if c.ctx.Policy == FlatScoping {
			return c.checkFlatAbstraction(t)
		}
		return c.checkAbstraction(t)
	case Application:
		return c.checkApplication(t)
	}
	panic("unreachable")
}

func (c *Checker) checkVariable(v Variable) (Type, error) {
	if v.Index != NoBinder {
		for i := len(c.params) - 1; i >= 0; i-- {
			if c.params[i].binder == v.Index {
				return c.params[i].typ, nil
			}
		}
	}
	if typ, ok := c.ctx.TypeAt(v.Index); ok {
		return typ, nil
	}
	if _, err := c.ctx.BindingAt(v.Index); err != nil {
		return nil, NewTypeError(UnboundOrUntyped, v, "%s", err)
	}
	name, _ := c.ctx.NameAt(v.Index)
	return nil, NewTypeError(UnboundOrUntyped, v, "%s has no type", name)
}

func (c *Checker) checkConditional(t Conditional) (Type, error) {
	cond, err := c.check(t.Cond)
	if err != nil {
		return nil, err
	}
	then, err := c.check(t.Then)
	if err != nil {
		return nil, err
	}
	els, err := c.check(t.Else)
	if err != nil {
		return nil, err
	}
	if !TypesEqual(cond, Bool) {
		return nil, NewTypeError(NonBooleanCondition, t, "condition has type %s", cond)
	}
	if !TypesEqual(then, els) {
		return nil, NewTypeError(BranchTypeMismatch, t, "then branch has type %s, else branch has type %s", then, els)
	}
	return then, nil
}

func (c *Checker) checkAbstraction(t Abstraction) (Type, error) {
	paramType, err := c.paramType(t)
	if err != nil {
		return nil, err
	}
	c.params = append(c.params, param{binder: t.Binder, typ: paramType})
	defer func() {
		c.params = c.params[:len(c.params)-1]
	}()
	body, err := c.check(t.Body)
	if err != nil {
		return nil, err
	}
	return Function(paramType, body), nil
}

// paramType finds the type of an abstraction's parameter: its annotation,
// else the declared context binding with that name. Enclosing parameters are
// never consulted.
func (c *Checker) paramType(t Abstraction) (Type, error) {
	if t.ParamType != nil {
		return t.ParamType, nil
	}
	return c.declaredType(t)
}

func (c *Checker) declaredType(t Abstraction) (Type, error) {
	idx, ok := c.ctx.IndexOf(t.Param)
	if !ok {
		return nil, NewTypeError(UnboundOrUntyped, t, "no binding for parameter %s", t.Param)
	}
	typ, ok := c.ctx.TypeAt(idx)
	if !ok {
		return nil, NewTypeError(UnannotatedAbstractionParameter, t, "parameter %s is declared without a type", t.Param)
	}
	return typ, nil
}

// checkFlatAbstraction checks the body before looking the parameter up, and
// takes the parameter type from the earliest binding with its name.
func (c *Checker) checkFlatAbstraction(t Abstraction) (Type, error) {
	body, err := c.check(t.Body)
	if err != nil {
		return nil, err
	}
	if t.ParamType != nil {
		return Function(t.ParamType, body), nil
	}
	paramType, err := c.declaredType(t)
	if err != nil {
		return nil, err
	}
	return Function(paramType, body), nil
}

func (c *Checker) checkApplication(t Application) (Type, error) {
	fn, err := c.check(t.Func)
	if err != nil {
		return nil, err
	}
	arg, err := c.check(t.Arg)
	if err != nil {
		return nil, err
	}
	f, ok := fn.(FunctionType)
	if !ok {
		return nil, NewTypeError(NotAFunctionApplied, t, "%s applied to an argument", fn)
	}
	if !TypesEqual(f.From, arg) {
		return nil, NewTypeError(ArgumentTypeMismatch, t, "expected argument of type %s, got %s", f.From, arg)
	}
	return f.To, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
