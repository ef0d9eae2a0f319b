package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// Releaser is implemented by components that hold resources of their own.
// Release is called exactly once when the owning entity drops the component.
type Releaser interface {
	Release()
}

// Tag is the value installed for components declared with DeclareTag.
type Tag struct {
	Name string
}

var tagType = reflect.TypeOf(Tag{})

// Kind pairs a component type's identifier with a constructor for it. Kinds
// are what Install consumes; build them once and reuse them.
type Kind struct {
	reg   *Registry
	id    ComponentID
	typ   reflect.Type
	name  string
	newFn func() any
}

// Comp returns the Kind for T in r, constructing new(T) on install.
func Comp[T any](r *Registry) Kind {
	return CompFn(r, func() *T { return new(T) })
}

// CompFn is Comp with a caller supplied constructor. fn must return a fresh
// value on every call; entities never share components.
func CompFn[T any](r *Registry, fn func() *T) Kind {
	k, err := comp(r, fn)
	if err != nil {
		panic(err)
	}
	return k
}

func comp[T any](r *Registry, fn func() *T) (Kind, error) {
	if fn == nil {
		return Kind{}, eris.Wrapf(ErrInvalidKind, "nil constructor for %s", typeOf[T]())
	}
	t := typeOf[T]()
	id, err := r.Register(t)
	if err != nil {
		return Kind{}, err
	}
	return Kind{
		reg:   r,
		id:    id,
		typ:   t,
		newFn: func() any { return fn() },
	}, nil
}

func (k Kind) ID() ComponentID     { return k.id }
func (k Kind) Type() reflect.Type  { return k.typ }
func (k Kind) Registry() *Registry { return k.reg }
func (k Kind) IsZero() bool        { return k.newFn == nil }

// Name returns the declared name, or the Go type name for undeclared kinds.
func (k Kind) Name() string {
	if k.name != "" {
		return k.name
	}
	if k.typ == nil {
		return ""
	}
	return k.typ.String()
}
