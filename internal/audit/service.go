package audit

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"clinic/kit/broker"
	"clinic/kit/observability"
)

// Entry is one line of the audit trail.
type Entry struct {
	At      time.Time       `json:"at"`
	Event   string          `json:"event"`
	Key     string          `json:"key,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

type keyed interface {
	PartitionKey() string
}

// Service appends every event it sees to a jsonl trail. Without a file the
// trail only goes to the logger.
type Service struct {
	logger *observability.Logger
	now    func() time.Time

	mu      sync.Mutex
	f       *os.File
	written int
}

func NewService(logger *observability.Logger) *Service {
	return &Service{logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

func Open(logger *observability.Logger, path string) (*Service, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Error("audit error", "layer", "service", "component", "audit", "method", "Open", "path", path, "error", err.Error())
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Error("audit error", "layer", "service", "component", "audit", "method", "Open", "path", path, "error", err.Error())
		return nil, err
	}
	s := NewService(logger)
	s.f = f
	return s, nil
}

func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	if err != nil {
		s.logger.Error("audit error", "layer", "service", "component", "audit", "method", "Close", "error", err.Error())
	}
	s.f = nil
	return err
}

// Record writes evt to the trail.
func (s *Service) Record(ctx context.Context, evt broker.Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		s.logger.Error("audit error", "layer", "service", "component", "audit", "method", "Record", "event", evt.Name(), "error", err.Error())
		return err
	}
	e := Entry{At: s.now(), Event: evt.Name(), Payload: payload}
	if k, ok := evt.(keyed); ok {
		e.Key = k.PartitionKey()
	}
	s.logger.Info("audit", "event", e.Event, "key", e.Key)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		s.written++
		return nil
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := s.f.Write(append(b, '\n')); err != nil {
		s.logger.Error("audit error", "layer", "service", "component", "audit", "method", "Record", "event", e.Event, "error", err.Error())
		return err
	}
	s.written++
	return nil
}

// Written reports how many entries were recorded since start.
func (s *Service) Written() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written
}
