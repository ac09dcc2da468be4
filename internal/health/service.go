package health

import (
	"context"
	"sync"
	"time"
)

type CheckFunc func(ctx context.Context) error

// Service runs named checks concurrently. Each check gets its own timeout and
// the combined result is cached for ttl.
type Service struct {
	checks  map[string]CheckFunc
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time

	mu          sync.Mutex
	nextCheckAt time.Time
	lastResult  Result
}

type Result struct {
	At     time.Time         `json:"at"`
	OK     bool              `json:"ok"`
	Checks map[string]string `json:"checks"`
}

func NewService(ttl, timeout time.Duration, checks map[string]CheckFunc) *Service {
	return &Service{
		ttl:        ttl,
		timeout:    timeout,
		checks:     checks,
		now:        time.Now,
		lastResult: Result{Checks: map[string]string{}},
	}
}

func (s *Service) Check(ctx context.Context) Result {
	s.mu.Lock()
	if s.now().Before(s.nextCheckAt) {
		res := s.lastResult
		s.mu.Unlock()
		return res
	}
	s.mu.Unlock()

	res := Result{At: s.now().UTC(), OK: true, Checks: make(map[string]string, len(s.checks))}
	var (
		wg  sync.WaitGroup
		rmu sync.Mutex
	)
	for name, fn := range s.checks {
		wg.Add(1)
		go func(name string, fn CheckFunc) {
			defer wg.Done()
			status := s.run(ctx, fn)
			rmu.Lock()
			defer rmu.Unlock()
			if status != "ok" {
				res.OK = false
			}
			res.Checks[name] = status
		}(name, fn)
	}
	wg.Wait()

	s.mu.Lock()
	s.lastResult = res
	s.nextCheckAt = s.now().Add(s.ttl)
	s.mu.Unlock()

	return res
}

func (s *Service) run(ctx context.Context, fn CheckFunc) string {
	if fn == nil {
		return "invalid check"
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	done := make(chan error, 1)
	go func() { done <- fn(ctx) }()
	select {
	case err := <-done:
		if err != nil {
			return err.Error()
		}
		return "ok"
	case <-ctx.Done():
		return ctx.Err().Error()
	}
}
