package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SessionCleanupService отвечает за удаление неактивных сессий
type SessionCleanupService struct {
	sessions *SessionManager
	logger   *zap.Logger
	config   CleanupConfig
	now      func() time.Time
}

// CleanupConfig конфигурация для сервиса очистки
type CleanupConfig struct {
	// IdleTimeout время неактивности, после которого сессия удаляется
	IdleTimeout time.Duration
	// CleanupInterval интервал запуска очистки
	CleanupInterval time.Duration
}

// NewSessionCleanupService создает новый сервис очистки
func NewSessionCleanupService(
	sessions *SessionManager,
	logger *zap.Logger,
	config CleanupConfig,
) *SessionCleanupService {
	return &SessionCleanupService{
		sessions: sessions,
		logger:   logger,
		config:   config,
		now:      time.Now,
	}
}

// Start запускает фоновый процесс очистки
func (s *SessionCleanupService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.config.CleanupInterval)
	defer ticker.Stop()

	s.logger.Info("Starting session cleanup service",
		zap.Duration("interval", s.config.CleanupInterval),
		zap.Duration("idle_timeout", s.config.IdleTimeout))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Stopping session cleanup service")
			return
		case <-ticker.C:
			s.runCleanup()
		}
	}
}

// runCleanup выполняет одну итерацию очистки и возвращает число удаленных сессий
func (s *SessionCleanupService) runCleanup() int {
	startTime := s.now()
	cutoffTime := startTime.Add(-s.config.IdleTimeout)

	s.logger.Debug("Starting session cleanup run", zap.Time("cutoff_time", cutoffTime))

	expired := s.sessions.ExpireIdle(cutoffTime)
	if len(expired) == 0 {
		s.logger.Debug("No idle sessions found")
		return 0
	}

	for _, id := range expired {
		s.logger.Info("Expired idle session", zap.String("session_id", id.String()))
	}

	s.logger.Info("Session cleanup run completed",
		zap.Int("expired_count", len(expired)),
		zap.Int("active_sessions", s.sessions.Count()),
		zap.Duration("duration", time.Since(startTime)))

	return len(expired)
}

// GetDefaultCleanupConfig возвращает конфигурацию по умолчанию
func GetDefaultCleanupConfig() CleanupConfig {
	return CleanupConfig{
		IdleTimeout:     30 * time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}
