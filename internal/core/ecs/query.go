package ecs

import "github.com/rotisserie/eris"

// HasID tests membership with one index and one AND.
func HasID(e *Entity, id ComponentID) bool {
	if e.mask == nil {
		return false
	}
	l := e.Registry().Layout()
	return e.mask[id.Index(l)]&id.Bit(l) != 0
}

// Has reports whether a T is installed on e. Types never registered are
// never installed, so querying them allocates nothing.
func Has[T any](e *Entity) bool {
	if e.mask == nil {
		return false
	}
	id, ok := e.Registry().lookup(typeOf[T]())
	return ok && HasID(e, id)
}

// Get returns e's T, or false if none is installed.
func Get[T any](e *Entity) (*T, bool) {
	c, err := GetChecked[T](e)
	return c, err == nil
}

// GetChecked is Get with the reason for a miss.
func GetChecked[T any](e *Entity) (*T, error) {
	id, ok := e.Registry().lookup(typeOf[T]())
	if !ok {
		return nil, eris.Wrapf(ErrNotInstalled, "%s was never registered", typeOf[T]())
	}
	return GetByID[T](e, id)
}

// GetByID fetches the component stored under id and checks that it is a T.
func GetByID[T any](e *Entity, id ComponentID) (*T, error) {
	if !HasID(e, id) {
		return nil, eris.Wrapf(ErrNotInstalled, "%s", typeOf[T]())
	}
	c, ok := e.comps[id].(*T)
	if !ok {
		return nil, eris.Wrapf(ErrTypeMismatch, "want %s, have %T", typeOf[T](), e.comps[id])
	}
	return c, nil
}
