package state

import (
	"sync"

	"dashboard-go/internal/source"
)

// Connection describes the active row source without its credentials.
type Connection struct {
	Driver string `json:"driver"`
	Target string `json:"target"`
}

// AppState holds the server's mutable state.
type AppState struct {
	mu sync.RWMutex

	// Active row source
	Source source.DataSource
	Conn   *Connection
}

// New returns an empty state with no row source.
func New() *AppState {
	return &AppState{}
}

// SetSource replaces the active row source, closing the previous one.
func (s *AppState) SetSource(ds source.DataSource, config source.Config) error {
	s.mu.Lock()
	prev := s.Source
	s.Source = ds
	s.Conn = &Connection{Driver: config.Driver, Target: describeTarget(config)}
	s.mu.Unlock()

	if prev != nil {
		return prev.Close()
	}
	return nil
}

// GetSource returns the active row source, or nil.
func (s *AppState) GetSource() source.DataSource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Source
}

// GetConnection returns a copy of the active connection info, or nil.
func (s *AppState) GetConnection() *Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Conn == nil {
		return nil
	}
	c := *s.Conn
	return &c
}

// Close releases the active row source.
func (s *AppState) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Source == nil {
		return nil
	}
	err := s.Source.Close()
	s.Source = nil
	s.Conn = nil
	return err
}

func describeTarget(c source.Config) string {
	switch {
	case c.Driver == "sqlite" && c.Path != "":
		return c.Path
	case c.DSN != "":
		return "dsn"
	default:
		return c.Host + "/" + c.DBName
	}
}
