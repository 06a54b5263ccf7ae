package storefront

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultSessionTTL  = 30 * time.Minute
	DefaultMaxSessions = 10000
)

// Manager хранит сессии посетителей и удаляет простаивающие.
// Число живых сессий ограничено maxSessions.
type Manager struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	deps        Deps
	ttl         time.Duration
	maxSessions int
	clock       func() time.Time
	logger      *zap.Logger
}

// ManagerOption настраивает Manager
type ManagerOption func(*Manager)

// WithMaxSessions задает предел числа живых сессий
func WithMaxSessions(n int) ManagerOption {
	return func(m *Manager) {
		if n > 0 {
			m.maxSessions = n
		}
	}
}

// NewManager создает новый Manager
func NewManager(deps Deps, ttl time.Duration, logger *zap.Logger, opts ...ManagerOption) *Manager {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	m := &Manager{
		sessions:    make(map[string]*Session),
		deps:        deps,
		ttl:         ttl,
		maxSessions: DefaultMaxSessions,
		clock:       time.Now,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get возвращает существующую сессию
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	return s, ok
}

// GetOrCreate возвращает сессию id или создает новую с новым идентификатором
func (m *Manager) GetOrCreate(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if s, ok := m.sessions[id]; ok {
			return s, false
		}
	}

	if len(m.sessions) >= m.maxSessions {
		m.makeRoom()
	}

	s := NewSession(uuid.NewString(), m.deps)
	m.sessions[s.ID()] = s
	m.logger.Debug("storefront session created", zap.String("session_id", s.ID()))
	return s, true
}

// Len возвращает количество активных сессий
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep удаляет сессии, к которым не обращались дольше ttl
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweep()
}

// makeRoom освобождает место под новую сессию: сначала удаляет
// простаивающие, затем ту, к которой дольше всех не обращались
func (m *Manager) makeRoom() {
	m.sweep()
	if len(m.sessions) < m.maxSessions {
		return
	}

	var oldestID string
	var oldest time.Time
	for id, s := range m.sessions {
		if seen := s.LastSeen(); oldestID == "" || seen.Before(oldest) {
			oldestID, oldest = id, seen
		}
	}
	if oldestID == "" {
		return
	}
	m.sessions[oldestID].Close()
	delete(m.sessions, oldestID)
	m.logger.Warn("storefront session limit reached, least recent session evicted",
		zap.Int("limit", m.maxSessions),
		zap.String("session_id", oldestID),
	)
}

func (m *Manager) sweep() int {
	deadline := m.clock().Add(-m.ttl)
	removed := 0
	for id, s := range m.sessions {
		if s.LastSeen().Before(deadline) {
			s.Close()
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("idle storefront sessions evicted", zap.Int("count", removed))
	}
	return removed
}

// RunJanitor периодически вызывает Sweep до отмены контекста
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = m.ttl / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("session janitor stopped")
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}
