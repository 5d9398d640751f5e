package services

import (
	"sync"
	"time"

	"github.com/google/logger"

	"wordraffle/internal/models"
)

// RaffleService manages the form sessions of all connected browsers.
type RaffleService struct {
	mu       sync.RWMutex
	sessions map[string]*Session // Key: session cookie ID
	engine   *RaffleEngine
	now      func() time.Time
}

// NewRaffleService creates and initializes a new RaffleService.
func NewRaffleService(engine *RaffleEngine) *RaffleService {
	return &RaffleService{
		sessions: make(map[string]*Session),
		engine:   engine,
		now:      time.Now,
	}
}

// getSession returns a session, creating one if it doesn't exist.
// The caller must hold s.mu for writing.
func (s *RaffleService) getSession(sessionID string) *Session {
	session, exists := s.sessions[sessionID]
	if !exists {
		session = &Session{Form: NewForm()}
		s.sessions[sessionID] = session
	}
	session.LastActivity = s.now()
	return session
}

// Snapshot returns a copy of a session's form and result.
func (s *RaffleService) Snapshot(sessionID string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.getSession(sessionID)
}

// Validate runs field validation for a session without drawing.
func (s *RaffleService) Validate(sessionID, raw string) Form {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.getSession(sessionID)
	session.Blur(raw)
	return session.Form
}

// Submit validates raw for a session and draws a new result when it is valid.
// On a validation error the session's previous result is kept.
func (s *RaffleService) Submit(sessionID, raw string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.getSession(sessionID)
	if err := session.Submit(raw, s.engine); err != nil {
		return *session, err
	}
	r := session.Result
	logger.Infof("Raffle for session %s: words %d-%d, pages %d-%d, %s→%s",
		sessionID, r.StartNumber, r.EndNumber, r.StartPage, r.EndPage, r.Direction.Source, r.Direction.Target)
	return *session, nil
}

// Draw runs a raffle that is not tied to any session.
func (s *RaffleService) Draw(numberOfWords int) (*models.RaffleResult, error) {
	return s.engine.Draw(numberOfWords)
}

// CleanUpInactiveSessions removes sessions idle for longer than ttl and
// returns how many were removed.
func (s *RaffleService) CleanUpInactiveSessions(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for sessionID, session := range s.sessions {
		if s.now().Sub(session.LastActivity) > ttl {
			delete(s.sessions, sessionID)
			removed++
		}
	}
	return removed
}

// ClearSession removes all data associated with a session.
func (s *RaffleService) ClearSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	logger.Infof("Cleared session: %s", sessionID)
}

// SessionCount returns the number of live sessions.
func (s *RaffleService) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
