package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetChecked(t *testing.T) {
	r := newTestRegistry(t, 2)
	e := NewEntity(r, nil)
	require.NoError(t, e.Install(Comp[compA](r)))

	a, err := GetChecked[compA](e)
	require.NoError(t, err)
	assert.NotNil(t, a)

	_, err = GetChecked[compB](e)
	assert.ErrorIs(t, err, ErrNotInstalled)

	IdentifierFor[compB](r)
	_, err = GetChecked[compB](e)
	assert.ErrorIs(t, err, ErrNotInstalled)
}

func TestGetByIDTypeMismatch(t *testing.T) {
	r := newTestRegistry(t, 2)
	a := Comp[compA](r)
	e := NewEntity(r, nil)
	require.NoError(t, e.Install(a))

	_, err := GetByID[compB](e, a.ID())
	assert.ErrorIs(t, err, ErrTypeMismatch)

	got, err := GetByID[compA](e, a.ID())
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestQueriesOnEmptyEntity(t *testing.T) {
	var e Entity
	assert.False(t, Has[compA](&e))
	assert.False(t, HasID(&e, ID[compA]()))
	_, ok := Get[compA](&e)
	assert.False(t, ok)
}
