package ecs

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// World owns a set of entities and tears each one down when it is
// destroyed, so callers never call FreeAll themselves. Destruction can be
// immediate (Destroy) or deferred to FlushDestroyQueue.
type World struct {
	reg          *Registry
	log          *zap.Logger
	pool         *EntityPool
	entities     map[EntityID]*Entity
	destroyQueue []EntityID
}

// NewWorld returns a world whose entities are bound to r. A nil log
// discards output.
func NewWorld(r *Registry, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		reg:          r,
		log:          log,
		pool:         NewEntityPool(),
		entities:     make(map[EntityID]*Entity, 64),
		destroyQueue: make([]EntityID, 0, 16),
	}
}

func (w *World) Registry() *Registry { return w.reg }
func (w *World) Len() int            { return len(w.entities) }

// Spawn creates an entity and installs kinds on it. On error no id is
// consumed.
func (w *World) Spawn(kinds ...Kind) (EntityID, error) {
	e := NewEntity(w.reg, w.log)
	if err := e.Install(kinds...); err != nil {
		return 0, err
	}
	id := w.pool.Create()
	w.entities[id] = e
	w.log.Debug("spawned entity", zap.Uint64("entity", uint64(id)), zap.Int("components", len(kinds)))
	return id, nil
}

// Entity resolves a live id.
func (w *World) Entity(id EntityID) (*Entity, bool) {
	if !w.pool.Alive(id) {
		return nil, false
	}
	e, ok := w.entities[id]
	return e, ok
}

// Alive reports whether id names a live entity.
func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Reinstall replaces the component set of a live entity.
func (w *World) Reinstall(id EntityID, kinds ...Kind) error {
	e, ok := w.Entity(id)
	if !ok {
		return eris.Wrapf(ErrEntityDoesNotExist, "entity %d", id)
	}
	return e.Install(kinds...)
}

// Destroy tears the entity down immediately. Stale ids are ignored.
func (w *World) Destroy(id EntityID) {
	e, ok := w.Entity(id)
	if !ok {
		return
	}
	e.FreeAll()
	delete(w.entities, id)
	w.pool.Destroy(id)
	w.log.Debug("destroyed entity", zap.Uint64("entity", uint64(id)))
}

// MarkForDestruction queues an entity for the next FlushDestroyQueue.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys every queued entity, including ones queued by
// Release hooks while the flush runs. Ids queued twice are destroyed once.
func (w *World) FlushDestroyQueue() {
	for i := 0; i < len(w.destroyQueue); i++ {
		w.Destroy(w.destroyQueue[i])
	}
	w.destroyQueue = w.destroyQueue[:0]
}

// Close destroys every live entity.
func (w *World) Close() error {
	for id, e := range w.entities {
		e.FreeAll()
		w.pool.Destroy(id)
	}
	clear(w.entities)
	w.destroyQueue = w.destroyQueue[:0]
	return nil
}
