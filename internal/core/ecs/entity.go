package ecs

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Entity owns a mask array and the component values it tags. mask and comps
// are either both nil (nothing installed) or both set, and a mask bit is set
// iff comps holds a value under that identifier.
//
// The zero Entity is ready to use with the default registry. Embed it in
// entity types, call Install from their constructor and Close when done.
type Entity struct {
	reg   *Registry
	log   *zap.Logger
	mask  []uint64
	comps map[ComponentID]any
}

// NewEntity returns an empty entity bound to r. A nil log discards output.
func NewEntity(r *Registry, log *zap.Logger) *Entity {
	return &Entity{reg: r, log: log}
}

// Bind attaches a registry and logger to an embedded entity. Installed
// entities cannot be rebound; FreeAll them first.
func (e *Entity) Bind(r *Registry, log *zap.Logger) error {
	if e.mask != nil {
		return eris.Wrap(ErrAlreadyInstalled, "bind")
	}
	e.reg = r
	e.log = log
	return nil
}

func (e *Entity) Registry() *Registry {
	if e.reg == nil {
		return defaultRegistry
	}
	return e.reg
}

func (e *Entity) logger() *zap.Logger {
	if e.log == nil {
		return zap.NewNop()
	}
	return e.log
}

// Installed reports whether the entity currently holds a component set.
func (e *Entity) Installed() bool { return e.mask != nil }

// Len returns the number of owned components.
func (e *Entity) Len() int { return len(e.comps) }

// Install replaces the entity's component set with one fresh instance of
// each kind. Previously owned components are released first, whether or not
// they are listed again. Installing no kinds leaves an empty, installed set.
//
// The call is all-or-nothing: a kind listed twice or bound to another
// registry is rejected before any state changes.
func (e *Entity) Install(kinds ...Kind) error {
	reg := e.Registry()
	layout := reg.Layout()

	seen := make(map[ComponentID]struct{}, len(kinds))
	for _, k := range kinds {
		if k.IsZero() {
			return eris.Wrap(ErrInvalidKind, "install")
		}
		if k.reg != reg {
			e.logger().Warn("rejected install", zap.String("component", k.Name()),
				zap.Error(ErrForeignRegistry))
			return eris.Wrapf(ErrForeignRegistry, "install %s", k.Name())
		}
		if _, dup := seen[k.id]; dup {
			e.logger().Warn("rejected install", zap.String("component", k.Name()),
				zap.Error(ErrDuplicateComponent))
			return eris.Wrapf(ErrDuplicateComponent, "install %s", k.Name())
		}
		seen[k.id] = struct{}{}
	}

	mask := make([]uint64, layout.Words())
	comps := make(map[ComponentID]any, len(kinds))
	for _, k := range kinds {
		mask[k.id.Index(layout)] |= k.id.Bit(layout)
		comps[k.id] = k.newFn()
	}

	if e.mask != nil {
		e.release()
	}
	e.mask = mask
	e.comps = comps
	e.logger().Debug("installed components", zap.Int("count", len(kinds)))
	return nil
}

// FreeAll releases every owned component, whatever its mask state, and
// returns the entity to the uninstalled state. Calling it again is a no-op.
func (e *Entity) FreeAll() {
	if e.mask == nil && e.comps == nil {
		return
	}
	n := len(e.comps)
	e.release()
	e.logger().Debug("freed components", zap.Int("count", n))
}

// Close calls FreeAll so entities can be torn down with defer.
func (e *Entity) Close() error {
	e.FreeAll()
	return nil
}

func (e *Entity) release() {
	for _, c := range e.comps {
		if r, ok := c.(Releaser); ok {
			r.Release()
		}
	}
	e.comps = nil
	e.mask = nil
}
