package notify

import (
	"context"
	"sync"
)

// MemorySurface keeps notifications in process. It records every Show so
// callers can count emissions after the fact.
type MemorySurface struct {
	mu      sync.Mutex
	visible map[string]Notification
	order   []string
	shown   []Notification
}

// NewMemorySurface returns an empty surface.
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{visible: make(map[string]Notification)}
}

func (m *MemorySurface) Show(_ context.Context, n Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.visible[n.ID]; !ok {
		m.order = append(m.order, n.ID)
	}
	m.visible[n.ID] = n
	m.shown = append(m.shown, n)
	return nil
}

func (m *MemorySurface) Hide(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.visible[id]; !ok {
		return nil
	}
	delete(m.visible, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Visible returns the notifications currently shown, oldest first.
func (m *MemorySurface) Visible() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notification, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.visible[id])
	}
	return out
}

// Shown returns every notification ever shown, including removed ones.
func (m *MemorySurface) Shown() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notification, len(m.shown))
	copy(out, m.shown)
	return out
}
