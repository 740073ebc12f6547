// Package session keeps the logged-in operators of this process, each with
// their own cart. Sessions live in memory and vanish on restart.
package session

import (
	"errors"
	"sync"
	"time"

	"go-pos-backend/internal/cart"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found or expired")

// Session is the explicit context passed to core calls in place of global
// "current user" state.
type Session struct {
	ID        uuid.UUID
	UserID    uint
	Username  string
	Role      string
	Cart      *cart.Cart
	CreatedAt time.Time
}

type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[uuid.UUID]*Session)}
}

func (m *Manager) Create(userID uint, username, role string) *Session {
	s := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		Username:  username,
		Role:      role,
		Cart:      cart.New(),
		CreatedAt: time.Now(),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *Manager) Delete(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// DeleteUser ends every session of userID, e.g. after the account is removed.
func (m *Manager) DeleteUser(userID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// ResetCarts empties every cart. Called after a restore, when staged lines may
// point at products that no longer exist.
func (m *Manager) ResetCarts() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.sessions {
		s.Cart.Clear()
	}
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
