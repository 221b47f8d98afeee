package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrSessionNotFound возвращается для неизвестного или истекшего идентификатора
	ErrSessionNotFound = errors.New("session not found")

	// ErrTooManySessions возвращается при достижении лимита сессий
	ErrTooManySessions = errors.New("too many active sessions")
)

// SessionManager хранит активные сессии в памяти процесса
type SessionManager struct {
	mu          sync.RWMutex
	sessions    map[uuid.UUID]*Session
	env         *sessionEnv
	maxSessions int
	logger      *zap.Logger
}

// NewSessionManager создает менеджер сессий. maxSessions <= 0 снимает ограничение.
func NewSessionManager(env *sessionEnv, maxSessions int, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		sessions:    make(map[uuid.UUID]*Session),
		env:         env,
		maxSessions: maxSessions,
		logger:      logger,
	}
}

// Create opens a new empty session.
func (m *SessionManager) Create() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		m.logger.Warn("Session limit reached", zap.Int("max_sessions", m.maxSessions))
		return nil, ErrTooManySessions
	}

	id := uuid.New()
	session := newSession(id, m.env, m.logger)
	m.sessions[id] = session
	m.env.metrics.SetActiveSessions(len(m.sessions))

	m.logger.Debug("Session created", zap.String("session_id", id.String()))
	return session, nil
}

// Get returns an active session.
func (m *SessionManager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete closes a session.
func (m *SessionManager) Delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	m.env.metrics.SetActiveSessions(len(m.sessions))

	m.logger.Debug("Session deleted", zap.String("session_id", id.String()))
	return nil
}

// Count returns the number of active sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ExpireIdle removes sessions not accessed since cutoff and returns their ids.
func (m *SessionManager) ExpireIdle(cutoff time.Time) []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expired []uuid.UUID
	for id, session := range m.sessions {
		if session.LastAccess().Before(cutoff) {
			delete(m.sessions, id)
			expired = append(expired, id)
		}
	}
	if len(expired) > 0 {
		m.env.metrics.SetActiveSessions(len(m.sessions))
	}
	return expired
}
