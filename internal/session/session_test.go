package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGet(t *testing.T) {
	m := NewManager()
	s := m.Create(3, "seller", "seller")

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.NotNil(t, got.Cart)

	_, err = m.Get(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionsHaveSeparateCarts(t *testing.T) {
	m := NewManager()
	a := m.Create(1, "manager", "manager")
	b := m.Create(1, "manager", "manager")

	require.NoError(t, a.Cart.AddLine(1, 2))
	assert.Equal(t, 1, a.Cart.Len())
	assert.Equal(t, 0, b.Cart.Len())
}

func TestResetCarts(t *testing.T) {
	m := NewManager()
	a := m.Create(1, "manager", "manager")
	b := m.Create(2, "seller", "seller")
	require.NoError(t, a.Cart.AddLine(1, 1))
	require.NoError(t, b.Cart.AddLine(2, 1))

	m.ResetCarts()

	assert.Equal(t, 0, a.Cart.Len())
	assert.Equal(t, 0, b.Cart.Len())
	assert.Equal(t, 2, m.Count())
}

func TestDeleteUser(t *testing.T) {
	m := NewManager()
	m.Create(2, "seller", "seller")
	m.Create(2, "seller", "seller")
	keep := m.Create(1, "manager", "manager")

	assert.Equal(t, 2, m.DeleteUser(2))
	assert.Equal(t, 1, m.Count())

	m.Delete(keep.ID)
	assert.Equal(t, 0, m.Count())
}
