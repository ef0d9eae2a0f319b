package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/fourbecs/becs/internal/core/ecs"
)

type (
	burning struct{}
	wet     struct{}
)

func setup(t *testing.T) (*Engine, *ecs.World, ecs.Kind, ecs.Kind) {
	t.Helper()
	r := ecs.NewRegistry(ecs.DefaultLayout())
	b, err := ecs.Declare[burning](r, "burning")
	require.NoError(t, err)
	w2, err := ecs.Declare[wet](r, "wet")
	require.NoError(t, err)
	w := ecs.NewWorld(r, nil)
	e := NewEngine(w, zaptest.NewLogger(t))
	t.Cleanup(func() {
		e.Close()
		w.Close()
	})
	return e, w, b, w2
}

func TestCheck(t *testing.T) {
	e, w, burn, wt := setup(t)
	require.NoError(t, e.DoString(`
function takes_fire_damage(id)
  return has(id, "burning") and not has(id, "wet")
end
`))

	dry, err := w.Spawn(burn)
	require.NoError(t, err)
	soaked, err := w.Spawn(burn, wt)
	require.NoError(t, err)

	ok, err := e.Check("takes_fire_damage", dry)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.Check("takes_fire_damage", soaked)
	require.NoError(t, err)
	assert.False(t, ok)

	w.Destroy(dry)
	ok, err = e.Check("takes_fire_damage", dry)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAlive(t *testing.T) {
	e, w, burn, _ := setup(t)
	require.NoError(t, e.DoString(`function is_alive(id) return alive(id) end`))
	id, err := w.Spawn(burn)
	require.NoError(t, err)

	ok, err := e.Check("is_alive", id)
	require.NoError(t, err)
	assert.True(t, ok)

	w.Destroy(id)
	ok, err = e.Check("is_alive", id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckErrors(t *testing.T) {
	e, w, burn, _ := setup(t)
	id, err := w.Spawn(burn)
	require.NoError(t, err)

	_, err = e.Check("missing", id)
	assert.ErrorIs(t, err, ErrNoSuchFunction)

	require.NoError(t, e.DoString(`function bad(id) return has(id, "frozen") end`))
	_, err = e.Check("bad", id)
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	e, w, burn, _ := setup(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules.lua"),
		[]byte(`function on_fire(id) return has(id, "burning") end`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not lua"), 0o644))
	require.NoError(t, e.LoadDir(dir))
	require.NoError(t, e.LoadDir(filepath.Join(dir, "absent")))

	id, err := w.Spawn(burn)
	require.NoError(t, err)
	ok, err := e.Check("on_fire", id)
	require.NoError(t, err)
	assert.True(t, ok)
}
