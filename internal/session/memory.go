package session

import (
	"sync"

	"github.com/shopease/go_shop/internal/domain"
)

// Memory is an in-process Store with no persistence at all. Useful where
// even an in-memory BadgerDB is more than a test needs.
type Memory struct {
	mu      sync.RWMutex
	session *domain.UserSession
	search  *domain.LastSearch
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Current() (domain.UserSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return domain.UserSession{}, false
	}
	return *m.session, true
}

func (m *Memory) SetSession(s domain.UserSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &s
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

func (m *Memory) LastSearch() (domain.LastSearch, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.search == nil {
		return domain.LastSearch{}, false
	}
	return *m.search, true
}

func (m *Memory) SetLastSearch(ls domain.LastSearch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.search = &ls
	return nil
}

func (m *Memory) Close() error { return nil }
