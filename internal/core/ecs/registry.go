package ecs

import (
	"reflect"
	"sync"

	"github.com/rotisserie/eris"
)

// Registry hands out one ComponentID per component type. Identifiers are
// allocated on first request, in request order, and never reused.
//
// Every entity and Kind is bound to exactly one Registry. The allocation
// cursor is the only mutable shared state and is guarded by mu; entities
// themselves are not synchronized.
type Registry struct {
	mu     sync.RWMutex
	layout Layout
	idx    uint64                       // current index slot
	off    uint                         // next free bit offset in slot idx
	ids    map[reflect.Type]ComponentID // typed components only
	types  map[ComponentID]reflect.Type // every allocated identifier
	kinds  map[string]Kind
}

func NewRegistry(layout Layout) *Registry {
	return &Registry{
		layout: layout,
		ids:    make(map[reflect.Type]ComponentID, 64),
		types:  make(map[ComponentID]reflect.Type, 64),
		kinds:  make(map[string]Kind, 16),
	}
}

var defaultRegistry = NewRegistry(DefaultLayout())

// Default returns the process-wide registry used by zero-value entities.
func Default() *Registry { return defaultRegistry }

func (r *Registry) Layout() Layout { return r.layout }

// Len returns the number of identifiers allocated so far.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// Register returns the identifier of t, allocating the next free one on the
// first call for t.
func (r *Registry) Register(t reflect.Type) (ComponentID, error) {
	if id, ok := r.lookup(t); ok {
		return id, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.ids[t]; ok {
		return id, nil
	}
	id, err := r.next()
	if err != nil {
		return 0, eris.Wrapf(err, "registering %s", t)
	}
	r.ids[t] = id
	r.types[id] = t
	return id, nil
}

// next advances the cursor. r.mu must be held.
func (r *Registry) next() (ComponentID, error) {
	if int(r.off) == r.layout.BitsPerWord() {
		if r.idx == r.layout.MaxIndex() {
			return 0, eris.Wrapf(ErrCapacityExceeded, "%d types in use, index bits %d",
				len(r.types), r.layout.IndexBits())
		}
		r.idx++
		r.off = 0
	}
	id := r.layout.Pack(r.idx, r.off)
	r.off++
	return id, nil
}

// TypeOf returns the type an identifier was allocated for.
func (r *Registry) TypeOf(id ComponentID) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[id]
	return t, ok
}

// Lookup resolves a name bound with Declare or DeclareTag.
func (r *Registry) Lookup(name string) (Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.kinds[name]
	if !ok {
		return Kind{}, eris.Wrapf(ErrUnknownComponent, "%q", name)
	}
	return k, nil
}

// Names returns the number of declared names.
func (r *Registry) Names() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.kinds)
}

func (r *Registry) lookup(t reflect.Type) (ComponentID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.ids[t]
	return id, ok
}

// IdentifierFor returns T's identifier in r. It panics with an error wrapping
// ErrCapacityExceeded when the layout has no room left; the panic value can be
// recovered and inspected with errors.Is.
func IdentifierFor[T any](r *Registry) ComponentID {
	id, err := r.Register(typeOf[T]())
	if err != nil {
		panic(err)
	}
	return id
}

// ID is IdentifierFor on the default registry.
func ID[T any]() ComponentID { return IdentifierFor[T](defaultRegistry) }

// Declare binds name to T so templates and scripts can refer to it. The
// identifier is allocated here if T has not been seen yet.
func Declare[T any](r *Registry, name string) (Kind, error) {
	k, err := comp(r, func() *T { return new(T) })
	if err != nil {
		return Kind{}, err
	}
	k.name = name

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.kinds[name]; ok {
		if prev.id == k.id {
			return prev, nil
		}
		return Kind{}, eris.Wrapf(ErrDuplicateName, "%q already bound to %s", name, prev.typ)
	}
	r.kinds[name] = k
	return k, nil
}

// DeclareTag allocates an identifier for a named payload-free component. Tags
// have no Go type of their own; every installed tag is a *Tag and is read
// back with GetByID.
func DeclareTag(r *Registry, name string) (Kind, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.kinds[name]; ok {
		if prev.typ == tagType {
			return prev, nil
		}
		return Kind{}, eris.Wrapf(ErrDuplicateName, "%q already bound to %s", name, prev.typ)
	}
	id, err := r.next()
	if err != nil {
		return Kind{}, eris.Wrapf(err, "declaring tag %q", name)
	}
	r.types[id] = tagType
	k := Kind{
		reg:   r,
		id:    id,
		typ:   tagType,
		name:  name,
		newFn: func() any { return &Tag{Name: name} },
	}
	r.kinds[name] = k
	return k, nil
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
