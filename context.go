package stlc

import (
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

type ScopingPolicy int

const (
	// LexicalScoping hides bindings when their scope is left, and name lookup
	// prefers the most recent visible binding.
	LexicalScoping ScopingPolicy = iota
	// FlatScoping never hides anything, and name lookup returns the earliest
	// binding with the name.
	FlatScoping
)

func (p ScopingPolicy) String() string {
	switch p {
	case LexicalScoping:
		return "lexical"
	case FlatScoping:
		return "flat"
	}
	panic("unreachable")
}

func ParseScopingPolicy(s string) (ScopingPolicy, error) {
	switch s {
	case "", "lexical":
		return LexicalScoping, nil
	case "flat":
		return FlatScoping, nil
	}
	return LexicalScoping, fmt.Errorf("unknown scoping policy: %q", s)
}

type ContextEntry struct {
	Name    string
	Binding Binding
}

// Context is an append-only ledger of bindings. Entries are never removed,
// so an index returned by AddBinding stays valid for the life of the Context.
// Scopes only control which entries name lookup can see.
type Context struct {
	Policy  ScopingPolicy
	entries []ContextEntry
	visible []int
}

func NewContext() *Context {
	return &Context{Policy: LexicalScoping}
}

func NewFlatContext() *Context {
	return &Context{Policy: FlatScoping}
}

func (c *Context) Len() int {
	return len(c.entries)
}

func (c *Context) Entries() []ContextEntry {
	return slices.Clone(c.entries)
}

func (c *Context) AddBinding(name string, b Binding) int {
	idx := len(c.entries)
	c.entries = append(c.entries, ContextEntry{Name: name, Binding: b})
	c.visible = append(c.visible, idx)
	return idx
}

func (c *Context) entry(idx int) (ContextEntry, error) {
	if idx < 0 || idx >= len(c.entries) {
		return ContextEntry{}, fmt.Errorf("context index %d out of range [0, %d)", idx, len(c.entries))
	}
	return c.entries[idx], nil
}

func (c *Context) BindingAt(idx int) (Binding, error) {
	e, err := c.entry(idx)
	if err != nil {
		return nil, err
	}
	return e.Binding, nil
}

func (c *Context) TypeAt(idx int) (Type, bool) {
	e, err := c.entry(idx)
	if err != nil {
		return nil, false
	}
	if vb, ok := e.Binding.(VariableBinding); ok {
		return vb.Type, true
	}
	return nil, false
}

func (c *Context) NameAt(idx int) (string, error) {
	e, err := c.entry(idx)
	if err != nil {
		return "", err
	}
	return e.Name, nil
}

func (c *Context) IndexOf(name string) (int, bool) {
	if c.Policy == FlatScoping {
		i := slices.IndexFunc(c.entries, func(e ContextEntry) bool { return e.Name == name })
		return i, i >= 0
	}
	idx, _, ok := lo.FindLastIndexOf(c.visible, func(i int) bool { return c.entries[i].Name == name })
	if !ok {
		return -1, false
	}
	return idx, true
}

// Scope marks the visible bindings at the time it was entered.
type Scope struct {
	mark int
}

func (c *Context) EnterScope() Scope {
	return Scope{mark: len(c.visible)}
}

func (c *Context) LeaveScope(s Scope) {
	if c.Policy == FlatScoping || s.mark > len(c.visible) {
		return
	}
	c.visible = c.visible[:s.mark]
}

// Visible lists the indices name lookup can currently see, oldest first.
func (c *Context) Visible() []int {
	if c.Policy == FlatScoping {
		return lo.Range(len(c.entries))
	}
	return slices.Clone(c.visible)
}

func (c *Context) String() string {
	return fmt.Sprint(lo.Map(c.entries, func(e ContextEntry, i int) string {
		return fmt.Sprintf("%d %s", i, describeBinding(e))
	}))
}

func describeBinding(e ContextEntry) string {
	switch b := e.Binding.(type) {
	case VariableBinding:
		return e.Name + " : " + b.Type.String()
	case NameBinding:
		return e.Name
	}
	panic("unreachable")
}
